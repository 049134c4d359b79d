package models

import (
	"time"

	"gorm.io/gorm"
)

// OTP stores a bcrypt hash of the one-time code sent to a phone.
// The plaintext code never touches the database.
type OTP struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Phone      string         `gorm:"size:20;not null;index" json:"phone"`
	CodeHash   string         `gorm:"size:255;not null" json:"-"`
	ExpiresAt  time.Time      `gorm:"not null" json:"expires_at"`
	Attempts   int            `gorm:"default:0" json:"attempts"`
	VerifiedAt *time.Time     `json:"verified_at"`
	CreatedAt  time.Time      `json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (OTP) TableName() string {
	return "otps"
}
