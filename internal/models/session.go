package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ChatSession is one billed consultation (chat, call or video).
// PricePerMinute is snapshotted at creation so later price changes by
// the astrologer never affect a running session.
//
// ActiveUserID carries the single-active-session-per-user invariant:
// it holds UserID while the session is ACTIVE and is nulled on
// completion, so the unique index rejects a second concurrent insert.
type ChatSession struct {
	ID             uint             `gorm:"primaryKey" json:"id"`
	UserID         uint             `gorm:"not null;index" json:"user_id"`
	AstrologerID   uint             `gorm:"not null;index" json:"astrologer_id"`
	SessionType    string           `gorm:"size:10;not null" json:"session_type"`
	StartTime      time.Time        `gorm:"not null" json:"start_time"`
	EndTime        *time.Time       `json:"end_time"`
	PricePerMinute decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"price_per_minute"`
	Duration       *decimal.Decimal `gorm:"type:decimal(10,2)" json:"duration"`   // minutes, fractional
	TotalCost      *decimal.Decimal `gorm:"type:decimal(10,2)" json:"total_cost"` // settled at end
	Status         string           `gorm:"size:20;not null;index" json:"status"`
	EndReason      string           `gorm:"size:64" json:"end_reason,omitempty"`
	ActiveUserID   *uint            `gorm:"uniqueIndex" json:"-"`
	Rating         *int             `json:"rating,omitempty"`
	Review         string           `gorm:"type:text" json:"review,omitempty"`
	Tags           string           `gorm:"size:255" json:"tags,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
	DeletedAt      gorm.DeletedAt   `gorm:"index" json:"-"`

	User       User       `gorm:"foreignKey:UserID" json:"-"`
	Astrologer Astrologer `gorm:"foreignKey:AstrologerID" json:"-"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

type ChatMessage struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	SessionID uint           `gorm:"not null;index" json:"session_id"`
	SenderID  uint           `gorm:"not null;index" json:"sender_id"`
	Content   string         `gorm:"type:text" json:"content"`
	MediaURL  string         `gorm:"size:512" json:"media_url"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Session ChatSession `gorm:"foreignKey:SessionID" json:"-"`
	Sender  User        `gorm:"foreignKey:SenderID" json:"-"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
