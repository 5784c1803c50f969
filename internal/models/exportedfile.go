package models

import "time"

// ExportedFile records an expense export stored in object storage.
type ExportedFile struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	FileName  string `gorm:"size:255;not null"`
	FileType  string `gorm:"size:64;not null"` // MIME type
	URL       string `gorm:"size:512"`
	IsDeleted bool   `gorm:"index;not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
