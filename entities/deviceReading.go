package entities

import "time"

// DeviceReading is a timestamped numeric sample recorded against a device.
// It is only reachable through its parent device.
type DeviceReading struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DeviceID    uint      `gorm:"index;not null" json:"device_id"`
	ReadingDate time.Time `gorm:"not null" json:"reading_date"`
	Value       float64   `gorm:"not null" json:"value"`
	CreatedAt   time.Time `json:"created_at"`
}
