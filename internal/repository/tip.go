package repository

import (
	"github.com/finman-2025/finman-backend/internal/models"

	"gorm.io/gorm"
)

// TipRepository owns persisted financial tips.
type TipRepository struct {
	db *gorm.DB
}

func NewTipRepository(db *gorm.DB) *TipRepository {
	return &TipRepository{db: db}
}

// List returns non-deleted tips, optionally filtered by type.
func (r *TipRepository) List(tipType string) ([]models.FinancialTip, error) {
	var tips []models.FinancialTip
	q := notDeleted(r.db.Model(&models.FinancialTip{}))
	if tipType != "" {
		q = q.Where("type = ?", tipType)
	}
	err := q.Order("id ASC").Find(&tips).Error
	return tips, err
}

func (r *TipRepository) FindByID(id uint) (*models.FinancialTip, error) {
	var tip models.FinancialTip
	if err := notDeleted(r.db).Where("id = ?", id).First(&tip).Error; err != nil {
		return nil, translate(err)
	}
	return &tip, nil
}

func (r *TipRepository) Create(tip *models.FinancialTip) error {
	return r.db.Create(tip).Error
}

func (r *TipRepository) Update(id uint, fields map[string]interface{}) error {
	res := notDeleted(r.db.Model(&models.FinancialTip{})).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *TipRepository) SoftDelete(id uint) error {
	res := notDeleted(r.db.Model(&models.FinancialTip{})).
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
