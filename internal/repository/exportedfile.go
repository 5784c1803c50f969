package repository

import (
	"github.com/finman-2025/finman-backend/internal/models"

	"gorm.io/gorm"
)

// ExportedFileRepository owns records of generated expense exports.
type ExportedFileRepository struct {
	db *gorm.DB
}

func NewExportedFileRepository(db *gorm.DB) *ExportedFileRepository {
	return &ExportedFileRepository{db: db}
}

func (r *ExportedFileRepository) ListByUser(userID uint) ([]models.ExportedFile, error) {
	var files []models.ExportedFile
	err := notDeleted(r.db.Model(&models.ExportedFile{})).
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&files).Error
	return files, err
}

func (r *ExportedFileRepository) FindByName(userID uint, fileName string) (*models.ExportedFile, error) {
	var file models.ExportedFile
	err := notDeleted(r.db).
		Where("user_id = ? AND file_name = ?", userID, fileName).
		First(&file).Error
	if err != nil {
		return nil, translate(err)
	}
	return &file, nil
}

func (r *ExportedFileRepository) Create(file *models.ExportedFile) error {
	return r.db.Create(file).Error
}

func (r *ExportedFileRepository) SoftDelete(id uint) error {
	res := notDeleted(r.db.Model(&models.ExportedFile{})).
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
