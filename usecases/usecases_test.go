package usecases

import (
	"fmt"
	"testing"
	"time"

	"device-hub/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDeviceRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	created := env.createDevice(t, alice.ID, "sensor1", "SN-001")
	assert.NotZero(t, created.ID)

	fetched, err := env.devices.GetDevice(created.ID, alice.ID)
	require.NoError(t, err)

	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "sensor1", fetched.Name)
	assert.Equal(t, "SN-001", fetched.SerialNumber)
	assert.Equal(t, alice.ID, fetched.OwnerID)
}

func TestCreateDeviceValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")

	_, err := env.devices.CreateDevice(alice.ID, "", "SN-001")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.devices.CreateDevice(alice.ID, "sensor1", "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateDeviceDuplicateSerial(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")
	env.createDevice(t, alice.ID, "sensor1", "SN-001")

	// Serial numbers are unique across owners, not per owner.
	_, err := env.devices.CreateDevice(bob.ID, "other", "SN-001")
	assert.ErrorIs(t, err, repositories.ErrConflict)
}

func TestCrossTenantDeviceLooksAbsent(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	// Read, update and delete by a non-owner must be indistinguishable from
	// a nonexistent device id.
	_, errGet := env.devices.GetDevice(device.ID, bob.ID)
	assert.ErrorIs(t, errGet, repositories.ErrNotFound)

	name := "hijacked"
	_, errUpdate := env.devices.UpdateDevice(device.ID, bob.ID, DeviceUpdate{Name: &name})
	assert.ErrorIs(t, errUpdate, repositories.ErrNotFound)

	errDelete := env.devices.DeleteDevice(device.ID, bob.ID)
	assert.ErrorIs(t, errDelete, repositories.ErrNotFound)

	_, errMissing := env.devices.GetDevice(99999, bob.ID)
	assert.Equal(t, errMissing, errGet, "not-owned and nonexistent must yield the same outcome")

	// The owner still sees the untouched device.
	fetched, err := env.devices.GetDevice(device.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "sensor1", fetched.Name)
}

func TestUpdateDevicePartial(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	newName := "sensor1b"
	updated, err := env.devices.UpdateDevice(device.ID, alice.ID, DeviceUpdate{Name: &newName})
	require.NoError(t, err)

	assert.Equal(t, "sensor1b", updated.Name)
	assert.Equal(t, "SN-001", updated.SerialNumber, "serial must survive a name-only update")
}

func TestUpdateDeviceSerialConflict(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	env.createDevice(t, alice.ID, "sensor1", "SN-001")
	second := env.createDevice(t, alice.ID, "sensor2", "SN-002")

	taken := "SN-001"
	_, err := env.devices.UpdateDevice(second.ID, alice.ID, DeviceUpdate{SerialNumber: &taken})
	assert.ErrorIs(t, err, repositories.ErrConflict)

	// Re-submitting the device's own serial is not a conflict.
	same := "SN-002"
	updated, err := env.devices.UpdateDevice(second.ID, alice.ID, DeviceUpdate{SerialNumber: &same})
	require.NoError(t, err)
	assert.Equal(t, "SN-002", updated.SerialNumber)
}

func TestDeleteDeviceIdempotentNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	require.NoError(t, env.devices.DeleteDevice(device.ID, alice.ID))

	// Deleting again reports the same not-found outcome every time.
	assert.ErrorIs(t, env.devices.DeleteDevice(device.ID, alice.ID), repositories.ErrNotFound)
	assert.ErrorIs(t, env.devices.DeleteDevice(device.ID, alice.ID), repositories.ErrNotFound)
}

func TestListDevicesScopedAndPaged(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")

	for i := 0; i < 12; i++ {
		env.createDevice(t, alice.ID, fmt.Sprintf("sensor%d", i), fmt.Sprintf("SN-%03d", i))
	}

	page, err := env.devices.ListDevices(alice.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, page, DefaultPageSize)

	bobDevices, err := env.devices.ListDevices(bob.ID, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, bobDevices)
}

func TestCreateReading(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reading, err := env.devices.CreateReading(device.ID, alice.ID, when, 21.5)
	require.NoError(t, err)

	assert.NotZero(t, reading.ID)
	assert.Equal(t, device.ID, reading.DeviceID)
	assert.Equal(t, 21.5, reading.Value)
	assert.True(t, when.Equal(reading.ReadingDate))
}

func TestCreateReadingValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	_, err := env.devices.CreateReading(device.ID, alice.ID, time.Time{}, 21.5)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateReadingOnForeignDevice(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	_, err := env.devices.CreateReading(device.ID, bob.ID, time.Now(), 21.5)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestReadingInvisibleToNonOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	bob := env.registerUser(t, "bob")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	reading, err := env.devices.CreateReading(device.ID, alice.ID, time.Now(), 21.5)
	require.NoError(t, err)

	_, err = env.devices.GetReading(reading.ID, bob.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	value := 99.0
	_, err = env.devices.UpdateReading(reading.ID, bob.ID, ReadingUpdate{Value: &value})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, env.devices.DeleteReading(reading.ID, bob.ID), repositories.ErrNotFound)

	// Listing a foreign device's readings reports the device absent, not an
	// empty page.
	_, err = env.devices.ListReadings(device.ID, bob.ID, 0, 0)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	kept, err := env.devices.GetReading(reading.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 21.5, kept.Value)
}

func TestUpdateReadingPartial(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	when := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	reading, err := env.devices.CreateReading(device.ID, alice.ID, when, 21.5)
	require.NoError(t, err)

	value := 22.75
	updated, err := env.devices.UpdateReading(reading.ID, alice.ID, ReadingUpdate{Value: &value})
	require.NoError(t, err)

	assert.Equal(t, 22.75, updated.Value)
	assert.True(t, when.Equal(updated.ReadingDate), "reading date must survive a value-only update")
}

func TestListReadingsOrderAndPaging(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := env.devices.CreateReading(device.ID, alice.ID, base.Add(time.Duration(i)*time.Hour), float64(i))
		require.NoError(t, err)
	}

	readings, err := env.devices.ListReadings(device.ID, alice.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, readings, 5)

	for i := 1; i < len(readings); i++ {
		assert.Greater(t, readings[i].ID, readings[i-1].ID, "readings must come back ordered by id ascending")
	}

	page, err := env.devices.ListReadings(device.ID, alice.ID, 2, 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, readings[2].ID, page[0].ID)
}

func TestDeleteReadingIdempotentNotFound(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerUser(t, "alice")
	device := env.createDevice(t, alice.ID, "sensor1", "SN-001")

	reading, err := env.devices.CreateReading(device.ID, alice.ID, time.Now(), 21.5)
	require.NoError(t, err)

	require.NoError(t, env.devices.DeleteReading(reading.ID, alice.ID))
	assert.ErrorIs(t, env.devices.DeleteReading(reading.ID, alice.ID), repositories.ErrNotFound)
	assert.ErrorIs(t, env.devices.DeleteReading(reading.ID, alice.ID), repositories.ErrNotFound)
}
