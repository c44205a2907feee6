package usecases

import (
	"testing"

	"device-hub/db"
	"device-hub/entities"
	"device-hub/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory sqlite database. TranslateError is on
// so unique-index violations surface as gorm.ErrDuplicatedKey, the same
// path the postgres store takes.
func newTestDB(t *testing.T) db.Database {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// A second connection to ":memory:" would be a different database.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return &db.GormDatabase{DB: gdb}
}

type testEnv struct {
	users   *UserUseCase
	devices *DeviceUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database := newTestDB(t)
	userRepo := repositories.NewUserPgRepository(database)
	deviceRepo := repositories.NewDevicePgRepository(database)
	readingRepo := repositories.NewDeviceReadingPgRepository(database)

	return &testEnv{
		users:   NewUserUseCase(userRepo, deviceRepo),
		devices: NewDeviceUseCase(deviceRepo, readingRepo),
	}
}

func (e *testEnv) registerUser(t *testing.T, username string) *entities.User {
	t.Helper()
	user, err := e.users.Register(username, "p@ss1")
	require.NoError(t, err)
	return user
}

func (e *testEnv) createDevice(t *testing.T, ownerID uint, name, serial string) *entities.Device {
	t.Helper()
	device, err := e.devices.CreateDevice(ownerID, name, serial)
	require.NoError(t, err)
	return device
}
