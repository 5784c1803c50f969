package repository

import (
	"strings"

	"github.com/finman-2025/finman-backend/internal/models"

	"gorm.io/gorm"
)

// UserRepository owns persisted user accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns a single non-deleted user.
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := notDeleted(r.db).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FindByUsername matches usernames case-insensitively.
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := notDeleted(r.db).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		First(&user).Error
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *UserRepository) Create(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return ErrDuplicateEntry
		}
		return err
	}
	return nil
}

// Update applies only the supplied fields to a non-deleted user.
func (r *UserRepository) Update(id uint, fields map[string]interface{}) error {
	res := notDeleted(r.db.Model(&models.User{})).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flips the is_deleted flag; the row is retained.
func (r *UserRepository) SoftDelete(id uint) error {
	res := notDeleted(r.db.Model(&models.User{})).
		Where("id = ?", id).
		Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
