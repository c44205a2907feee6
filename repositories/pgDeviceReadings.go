package repositories

import (
	"device-hub/db"
	"device-hub/entities"
)

// ownedDeviceFilter restricts a readings query to devices the caller owns.
// Keeping it in the statement itself means scoping and the operation are a
// single atomic store access.
const ownedDeviceFilter = "device_id IN (SELECT id FROM devices WHERE owner_id = ?)"

type deviceReadingPgRepository struct {
	db db.Database
}

func NewDeviceReadingPgRepository(database db.Database) DeviceReadingRepository {
	return &deviceReadingPgRepository{db: database}
}

func (r *deviceReadingPgRepository) Create(reading *entities.DeviceReading) error {
	return translate(r.db.GetDB().Create(reading).Error)
}

func (r *deviceReadingPgRepository) GetByID(id, ownerID uint) (*entities.DeviceReading, error) {
	var reading entities.DeviceReading
	err := r.db.GetDB().Where("id = ? AND "+ownedDeviceFilter, id, ownerID).First(&reading).Error
	if err != nil {
		return nil, translate(err)
	}
	return &reading, nil
}

func (r *deviceReadingPgRepository) ListByDevice(deviceID, ownerID uint, skip, limit int) ([]entities.DeviceReading, error) {
	var readings []entities.DeviceReading
	err := r.db.GetDB().
		Where("device_id = ? AND "+ownedDeviceFilter, deviceID, ownerID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Find(&readings).Error
	return readings, translate(err)
}

// Update persists a previously fetched reading, keeping the parent-device
// ownership condition in the statement itself so a concurrent delete makes
// it report ErrNotFound rather than succeed over zero rows.
func (r *deviceReadingPgRepository) Update(reading *entities.DeviceReading, ownerID uint) error {
	res := r.db.GetDB().Model(reading).
		Where(ownedDeviceFilter, ownerID).
		Select("*").
		Updates(reading)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *deviceReadingPgRepository) Delete(id, ownerID uint) error {
	res := r.db.GetDB().Where("id = ? AND "+ownedDeviceFilter, id, ownerID).Delete(&entities.DeviceReading{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
