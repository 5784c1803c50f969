package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound means the requested record does not exist or is soft-deleted.
	ErrNotFound = errors.New("repository: record not found")
	// ErrDuplicateEntry means a write violated a uniqueness constraint.
	ErrDuplicateEntry = errors.New("repository: duplicate entry")
)

// translate maps gorm errors to repository sentinel errors.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// notDeleted is the uniform soft-delete predicate. Every read in this package
// goes through it; call sites never filter is_deleted themselves.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}
