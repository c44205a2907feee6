package repositories

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound covers both truly absent records and records owned by
	// someone else. Collapsing the two prevents existence leakage and must
	// not be undone at any layer above.
	ErrNotFound = errors.New("not found")

	// ErrConflict is a uniqueness violation (username or serial number).
	ErrConflict = errors.New("already exists")
)

// translate maps store-level errors onto the repository error taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	default:
		return err
	}
}
