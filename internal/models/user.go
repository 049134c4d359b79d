package models

import (
	"time"

	"nakshatra/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Phone         string          `gorm:"uniqueIndex;size:20;not null" json:"phone"`
	Email         string          `gorm:"size:255" json:"email,omitempty"`
	Name          string          `gorm:"size:128" json:"name"`
	PasswordHash  string          `gorm:"size:255" json:"-"` // only set for seeded admin accounts
	Role          string          `gorm:"size:20;not null;index;default:'USER'" json:"role"`
	WalletBalance decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"wallet_balance"`
	AvatarURL     string          `gorm:"size:512" json:"avatar_url"`
	FCMToken      string          `gorm:"size:512" json:"-"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (u *User) IsAdmin() bool      { return u.Role == domain.RoleAdmin }
func (u *User) IsAstrologer() bool { return u.Role == domain.RoleAstrologer }
