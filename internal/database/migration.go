package database

import (
	"fmt"

	"github.com/finman-2025/finman-backend/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Expense{},
		&models.FinancialTip{},
		&models.ExportedFile{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
