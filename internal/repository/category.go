package repository

import (
	"github.com/finman-2025/finman-backend/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository owns persisted category records. The virtual "Other"
// category is synthesized by the service layer, never here.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// ListByUser returns the user's non-deleted categories ordered by id.
func (r *CategoryRepository) ListByUser(userID uint) ([]models.Category, error) {
	var categories []models.Category
	err := notDeleted(r.db.Model(&models.Category{})).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&categories).Error
	return categories, err
}

// FindByID returns a single non-deleted category.
func (r *CategoryRepository) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := notDeleted(r.db).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, translate(err)
	}
	return &category, nil
}

// NameExists reports whether the user already has a non-deleted category with
// this (normalized) name.
func (r *CategoryRepository) NameExists(userID uint, name string) (bool, error) {
	var count int64
	err := notDeleted(r.db.Model(&models.Category{})).
		Where("user_id = ? AND name = ?", userID, name).
		Count(&count).Error
	return count > 0, err
}

func (r *CategoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

// Update applies only the supplied fields to a non-deleted category.
func (r *CategoryRepository) Update(id uint, fields map[string]interface{}) error {
	res := notDeleted(r.db.Model(&models.Category{})).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flips the is_deleted flag; the row is retained.
func (r *CategoryRepository) SoftDelete(id uint) error {
	res := notDeleted(r.db.Model(&models.Category{})).
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
