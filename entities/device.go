package entities

import "time"

// Device belongs to exactly one user. Serial numbers are unique across
// all devices, not per owner.
type Device struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	SerialNumber string    `gorm:"uniqueIndex;not null" json:"serial_number"`
	OwnerID      uint      `gorm:"index;not null" json:"owner_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
