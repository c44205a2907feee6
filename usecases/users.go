package usecases

import (
	"errors"
	"fmt"

	"device-hub/auth"
	"device-hub/entities"
	"device-hub/repositories"
)

type UserUseCase struct {
	UserRepo   repositories.UserRepository
	DeviceRepo repositories.DeviceRepository
}

func NewUserUseCase(userRepo repositories.UserRepository, deviceRepo repositories.DeviceRepository) *UserUseCase {
	return &UserUseCase{
		UserRepo:   userRepo,
		DeviceRepo: deviceRepo,
	}
}

// UserUpdate carries a partial user update; nil fields keep their prior value.
type UserUpdate struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Register creates a new active account with a hashed password. The
// username pre-check gives a friendly early conflict; the unique index on
// users.username stays authoritative for concurrent registrations.
func (uc *UserUseCase) Register(username, password string) (*entities.User, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrValidation)
	}

	if _, err := uc.UserRepo.GetByUsername(username); err == nil {
		return nil, fmt.Errorf("%w: username already registered", repositories.ErrConflict)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		PasswordHash: hash,
		IsActive:     true,
	}
	if err := uc.UserRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, fmt.Errorf("%w: username already registered", repositories.ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) GetUser(id uint) (*entities.User, error) {
	return uc.UserRepo.GetByID(id)
}

func (uc *UserUseCase) ListUsers(skip, limit int) ([]entities.User, error) {
	skip, limit = normalizePage(skip, limit, DefaultPageSize)
	return uc.UserRepo.List(skip, limit)
}

// UpdateUser applies only the fields present in the update. A new password
// is re-hashed; a new username re-checks uniqueness.
func (uc *UserUseCase) UpdateUser(id uint, update UserUpdate) (*entities.User, error) {
	user, err := uc.UserRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Username != nil {
		if *update.Username == "" {
			return nil, fmt.Errorf("%w: username must not be empty", ErrValidation)
		}
		if *update.Username != user.Username {
			if _, err := uc.UserRepo.GetByUsername(*update.Username); err == nil {
				return nil, fmt.Errorf("%w: username already registered", repositories.ErrConflict)
			} else if !errors.Is(err, repositories.ErrNotFound) {
				return nil, err
			}
			user.Username = *update.Username
		}
	}

	if update.Password != nil {
		if *update.Password == "" {
			return nil, fmt.Errorf("%w: password must not be empty", ErrValidation)
		}
		hash, err := auth.HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := uc.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Deletion is blocked while the account
// still owns devices so readings are never orphaned silently.
func (uc *UserUseCase) DeleteUser(id uint) error {
	if _, err := uc.UserRepo.GetByID(id); err != nil {
		return err
	}

	count, err := uc.DeviceRepo.CountByOwner(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: account still owns devices", repositories.ErrConflict)
	}

	return uc.UserRepo.Delete(id)
}
