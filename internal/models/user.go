package models

import "time"

// User represents application user.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Name         string `gorm:"size:64"`
	Email        string `gorm:"size:128"`
	PhoneNumber  string `gorm:"size:32"`
	Sex          string `gorm:"size:16"`
	DateOfBirth  *time.Time
	Address      string `gorm:"size:255"`
	Avatar       string `gorm:"size:512"` // public URL of the uploaded avatar
	RefreshToken string `gorm:"size:512"` // current refresh token, cleared on logout
	IsDeleted    bool   `gorm:"index;not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
