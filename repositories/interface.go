package repositories

import "device-hub/entities"

type UserRepository interface {
	Create(user *entities.User) error
	GetByID(id uint) (*entities.User, error)
	GetByUsername(username string) (*entities.User, error)
	List(skip, limit int) ([]entities.User, error)
	Update(user *entities.User) error
	Delete(id uint) error
}

// DeviceRepository scopes every lookup and mutation by owner id inside the
// query itself, so "absent" and "not owned" are indistinguishable and there
// is no check-then-act window at this boundary.
type DeviceRepository interface {
	Create(device *entities.Device) error
	GetByID(id, ownerID uint) (*entities.Device, error)
	GetBySerialNumber(serialNumber string) (*entities.Device, error)
	ListByOwner(ownerID uint, skip, limit int) ([]entities.Device, error)
	CountByOwner(ownerID uint) (int64, error)
	Update(device *entities.Device) error
	Delete(id, ownerID uint) error
}

// DeviceReadingRepository scopes access through the parent device's owner.
type DeviceReadingRepository interface {
	Create(reading *entities.DeviceReading) error
	GetByID(id, ownerID uint) (*entities.DeviceReading, error)
	ListByDevice(deviceID, ownerID uint, skip, limit int) ([]entities.DeviceReading, error)
	Update(reading *entities.DeviceReading, ownerID uint) error
	Delete(id, ownerID uint) error
}
