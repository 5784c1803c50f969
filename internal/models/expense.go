package models

import "time"

// Expense represents a single dated income or outcome record.
// Value is stored in the smallest currency unit to avoid float error.
type Expense struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	CategoryID  *uint  `gorm:"index"` // nil means the virtual "Other" bucket
	Type        string `gorm:"size:16;index;not null"` // INCOME / OUTCOME
	Value       int64  `gorm:"not null"`
	Description string `gorm:"size:255"`
	Date        time.Time `gorm:"index;not null"`
	IsDeleted   bool      `gorm:"index;not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"constraint:OnDelete:SET NULL"`
}
