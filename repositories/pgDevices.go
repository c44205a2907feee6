package repositories

import (
	"device-hub/db"
	"device-hub/entities"
)

type devicePgRepository struct {
	db db.Database
}

func NewDevicePgRepository(database db.Database) DeviceRepository {
	return &devicePgRepository{db: database}
}

func (r *devicePgRepository) Create(device *entities.Device) error {
	return translate(r.db.GetDB().Create(device).Error)
}

func (r *devicePgRepository) GetByID(id, ownerID uint) (*entities.Device, error) {
	var device entities.Device
	err := r.db.GetDB().Where("id = ? AND owner_id = ?", id, ownerID).First(&device).Error
	if err != nil {
		return nil, translate(err)
	}
	return &device, nil
}

// GetBySerialNumber is deliberately unscoped: it backs the global
// serial-number uniqueness pre-check, never a caller-facing read.
func (r *devicePgRepository) GetBySerialNumber(serialNumber string) (*entities.Device, error) {
	var device entities.Device
	err := r.db.GetDB().Where("serial_number = ?", serialNumber).First(&device).Error
	if err != nil {
		return nil, translate(err)
	}
	return &device, nil
}

func (r *devicePgRepository) ListByOwner(ownerID uint, skip, limit int) ([]entities.Device, error) {
	var devices []entities.Device
	err := r.db.GetDB().Where("owner_id = ?", ownerID).Order("id ASC").Offset(skip).Limit(limit).Find(&devices).Error
	return devices, translate(err)
}

func (r *devicePgRepository) CountByOwner(ownerID uint) (int64, error) {
	var count int64
	err := r.db.GetDB().Model(&entities.Device{}).Where("owner_id = ?", ownerID).Count(&count).Error
	return count, translate(err)
}

// Update persists a previously fetched device, re-asserting ownership in the
// same statement so a row deleted in between surfaces as ErrNotFound instead
// of a silent no-op.
func (r *devicePgRepository) Update(device *entities.Device) error {
	res := r.db.GetDB().Model(device).
		Where("owner_id = ?", device.OwnerID).
		Select("*").
		Updates(device)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *devicePgRepository) Delete(id, ownerID uint) error {
	res := r.db.GetDB().Where("id = ? AND owner_id = ?", id, ownerID).Delete(&entities.Device{})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
