package models

import "time"

// Expense type values shared by Category and Expense.
const (
	TypeIncome  = "INCOME"
	TypeOutcome = "OUTCOME"
)

// OtherCategoryID is the id of the virtual "Other" category. It is never
// persisted; expenses with no category belong to it.
const OtherCategoryID uint = 0

// OtherCategoryName is the display name of the virtual category.
const OtherCategoryName = "Other"

// Category represents a user-defined income/expense bucket.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Name      string `gorm:"size:64;not null"`
	Type      string `gorm:"size:16;index;not null"` // INCOME / OUTCOME
	Limit     *int64 // monthly spending ceiling, OUTCOME categories only
	Image     string `gorm:"size:512"`
	IsDeleted bool   `gorm:"index;not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
