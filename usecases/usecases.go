package usecases

import (
	"errors"
	"fmt"
	"time"

	"device-hub/entities"
	"device-hub/repositories"
)

// DeviceUseCase implements every device and reading operation with the
// caller's user id as a mandatory scope. A device another user owns behaves
// exactly like a device that does not exist.
type DeviceUseCase struct {
	DeviceRepo  repositories.DeviceRepository
	ReadingRepo repositories.DeviceReadingRepository
}

func NewDeviceUseCase(deviceRepo repositories.DeviceRepository, readingRepo repositories.DeviceReadingRepository) *DeviceUseCase {
	return &DeviceUseCase{
		DeviceRepo:  deviceRepo,
		ReadingRepo: readingRepo,
	}
}

// DeviceUpdate carries a partial device update; nil fields keep their prior value.
type DeviceUpdate struct {
	Name         *string `json:"name"`
	SerialNumber *string `json:"serial_number"`
}

// ReadingUpdate carries a partial reading update.
type ReadingUpdate struct {
	ReadingDate *time.Time `json:"reading_date"`
	Value       *float64   `json:"value"`
}

// ============= Device operations =============

// CreateDevice registers a device owned by the caller. Serial numbers are
// unique across the whole fleet; the pre-check returns a friendly early
// conflict and the unique index backstops concurrent creates.
func (uc *DeviceUseCase) CreateDevice(callerID uint, name, serialNumber string) (*entities.Device, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: device name is required", ErrValidation)
	}
	if serialNumber == "" {
		return nil, fmt.Errorf("%w: serial number is required", ErrValidation)
	}

	if _, err := uc.DeviceRepo.GetBySerialNumber(serialNumber); err == nil {
		return nil, fmt.Errorf("%w: serial number already registered", repositories.ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	device := &entities.Device{
		Name:         name,
		SerialNumber: serialNumber,
		OwnerID:      callerID,
	}
	if err := uc.DeviceRepo.Create(device); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, fmt.Errorf("%w: serial number already registered", repositories.ErrConflict)
		}
		return nil, err
	}
	return device, nil
}

func (uc *DeviceUseCase) GetDevice(id, callerID uint) (*entities.Device, error) {
	return uc.DeviceRepo.GetByID(id, callerID)
}

func (uc *DeviceUseCase) ListDevices(callerID uint, skip, limit int) ([]entities.Device, error) {
	skip, limit = normalizePage(skip, limit, DefaultPageSize)
	return uc.DeviceRepo.ListByOwner(callerID, skip, limit)
}

// UpdateDevice applies only the fields present in the update. Changing the
// serial number re-checks global uniqueness.
func (uc *DeviceUseCase) UpdateDevice(id, callerID uint, update DeviceUpdate) (*entities.Device, error) {
	device, err := uc.DeviceRepo.GetByID(id, callerID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		if *update.Name == "" {
			return nil, fmt.Errorf("%w: device name must not be empty", ErrValidation)
		}
		device.Name = *update.Name
	}

	if update.SerialNumber != nil {
		if *update.SerialNumber == "" {
			return nil, fmt.Errorf("%w: serial number must not be empty", ErrValidation)
		}
		if *update.SerialNumber != device.SerialNumber {
			if _, err := uc.DeviceRepo.GetBySerialNumber(*update.SerialNumber); err == nil {
				return nil, fmt.Errorf("%w: serial number already registered", repositories.ErrConflict)
			} else if !errors.Is(err, repositories.ErrNotFound) {
				return nil, err
			}
			device.SerialNumber = *update.SerialNumber
		}
	}

	if err := uc.DeviceRepo.Update(device); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, fmt.Errorf("%w: serial number already registered", repositories.ErrConflict)
		}
		return nil, err
	}
	return device, nil
}

func (uc *DeviceUseCase) DeleteDevice(id, callerID uint) error {
	return uc.DeviceRepo.Delete(id, callerID)
}

// ============= Reading operations =============

// CreateReading records a sample against a device the caller owns. The
// device id always comes from the route, never the payload.
func (uc *DeviceUseCase) CreateReading(deviceID, callerID uint, readingDate time.Time, value float64) (*entities.DeviceReading, error) {
	if readingDate.IsZero() {
		return nil, fmt.Errorf("%w: reading date is required", ErrValidation)
	}

	if _, err := uc.DeviceRepo.GetByID(deviceID, callerID); err != nil {
		return nil, err
	}

	reading := &entities.DeviceReading{
		DeviceID:    deviceID,
		ReadingDate: readingDate,
		Value:       value,
	}
	if err := uc.ReadingRepo.Create(reading); err != nil {
		return nil, err
	}
	return reading, nil
}

func (uc *DeviceUseCase) GetReading(id, callerID uint) (*entities.DeviceReading, error) {
	return uc.ReadingRepo.GetByID(id, callerID)
}

// ListReadings returns a page of a device's readings ordered by id
// ascending. A device the caller does not own is reported absent, not as
// an empty page.
func (uc *DeviceUseCase) ListReadings(deviceID, callerID uint, skip, limit int) ([]entities.DeviceReading, error) {
	if _, err := uc.DeviceRepo.GetByID(deviceID, callerID); err != nil {
		return nil, err
	}

	skip, limit = normalizePage(skip, limit, DefaultReadingPageSize)
	return uc.ReadingRepo.ListByDevice(deviceID, callerID, skip, limit)
}

func (uc *DeviceUseCase) UpdateReading(id, callerID uint, update ReadingUpdate) (*entities.DeviceReading, error) {
	reading, err := uc.ReadingRepo.GetByID(id, callerID)
	if err != nil {
		return nil, err
	}

	if update.ReadingDate != nil {
		if update.ReadingDate.IsZero() {
			return nil, fmt.Errorf("%w: reading date must not be empty", ErrValidation)
		}
		reading.ReadingDate = *update.ReadingDate
	}
	if update.Value != nil {
		reading.Value = *update.Value
	}

	if err := uc.ReadingRepo.Update(reading, callerID); err != nil {
		return nil, err
	}
	return reading, nil
}

func (uc *DeviceUseCase) DeleteReading(id, callerID uint) error {
	return uc.ReadingRepo.Delete(id, callerID)
}
