package models

import "time"

// FinancialTip is an editorial money-management tip shown to users.
type FinancialTip struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Content     string `gorm:"type:text;not null"`
	Author      string `gorm:"size:128"`
	AuthorImage string `gorm:"size:512"`
	Type        string `gorm:"size:32;index"`
	IsDeleted   bool   `gorm:"index;not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
