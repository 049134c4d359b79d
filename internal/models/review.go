package models

import (
	"time"

	"gorm.io/gorm"
)

// Review is one-to-one with a completed session and feeds the
// astrologer's recomputed average rating.
type Review struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SessionID    uint           `gorm:"uniqueIndex;not null" json:"session_id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	AstrologerID uint           `gorm:"not null;index" json:"astrologer_id"`
	Rating       int            `gorm:"not null" json:"rating"` // 1-5
	Comment      string         `gorm:"type:text" json:"comment"`
	Tags         string         `gorm:"size:255" json:"tags"`
	Status       string         `gorm:"size:20;not null;index;default:'APPROVED'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Session    ChatSession `gorm:"foreignKey:SessionID" json:"-"`
	User       User        `gorm:"foreignKey:UserID" json:"-"`
	Astrologer Astrologer  `gorm:"foreignKey:AstrologerID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}
