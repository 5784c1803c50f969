package repository

import (
	"time"

	"github.com/finman-2025/finman-backend/internal/models"

	"gorm.io/gorm"
)

// ExpenseRepository owns persisted expense records.
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// byCategory narrows a query to one category. A categoryID of 0 means the
// virtual "Other" bucket, i.e. rows with no category at all.
func byCategory(db *gorm.DB, categoryID *uint) *gorm.DB {
	if categoryID == nil {
		return db
	}
	if *categoryID == models.OtherCategoryID {
		return db.Where("category_id IS NULL")
	}
	return db.Where("category_id = ?", *categoryID)
}

func byDateRange(db *gorm.DB, start, end *time.Time) *gorm.DB {
	if start != nil {
		db = db.Where("date >= ?", *start)
	}
	if end != nil {
		db = db.Where("date <= ?", *end)
	}
	return db
}

// List returns the user's non-deleted expenses, newest first, optionally
// narrowed to one category and/or an inclusive date window.
func (r *ExpenseRepository) List(userID uint, categoryID *uint, start, end *time.Time) ([]models.Expense, error) {
	var expenses []models.Expense
	q := notDeleted(r.db.Model(&models.Expense{})).Where("user_id = ?", userID)
	q = byCategory(q, categoryID)
	q = byDateRange(q, start, end)
	err := q.Preload("Category", "is_deleted = ?", false).
		Order("date DESC").
		Find(&expenses).Error
	return expenses, err
}

// FindByID returns a single non-deleted expense with its category loaded.
func (r *ExpenseRepository) FindByID(id uint) (*models.Expense, error) {
	var expense models.Expense
	err := notDeleted(r.db).
		Preload("Category", "is_deleted = ?", false).
		Where("id = ?", id).
		First(&expense).Error
	if err != nil {
		return nil, translate(err)
	}
	return &expense, nil
}

func (r *ExpenseRepository) Create(expense *models.Expense) error {
	return r.db.Create(expense).Error
}

// Update applies only the supplied fields to a non-deleted expense.
func (r *ExpenseRepository) Update(id uint, fields map[string]interface{}) error {
	res := notDeleted(r.db.Model(&models.Expense{})).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete flips the is_deleted flag; the row is retained.
func (r *ExpenseRepository) SoftDelete(id uint) error {
	res := notDeleted(r.db.Model(&models.Expense{})).
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

// SoftDeleteByCategory bulk-flags every expense of a category. Matching zero
// rows is not an error.
func (r *ExpenseRepository) SoftDeleteByCategory(categoryID uint) error {
	return r.db.Model(&models.Expense{}).
		Where("category_id = ?", categoryID).
		Update("is_deleted", true).Error
}

// SumByType aggregates non-deleted expense values per type over the filter.
func (r *ExpenseRepository) SumByType(userID uint, categoryID *uint, start, end *time.Time) (map[string]int64, error) {
	type row struct {
		Type  string
		Total int64
	}
	var rows []row

	q := notDeleted(r.db.Model(&models.Expense{})).Where("user_id = ?", userID)
	q = byCategory(q, categoryID)
	q = byDateRange(q, start, end)
	err := q.Select("type, COALESCE(SUM(value), 0) AS total").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64, len(rows))
	for _, r := range rows {
		totals[r.Type] = r.Total
	}
	return totals, nil
}
