package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is an immutable ledger row recording a single balance
// mutation. Amount is signed: positive for recharges and refunds,
// negative for debits. Rows are created once and never updated.
type Transaction struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	UserID          uint             `gorm:"not null;index" json:"user_id"`
	Type            string           `gorm:"size:20;not null;index" json:"type"`
	Amount          decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"amount"`
	BalanceBefore   decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"balance_before"`
	BalanceAfter    decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"balance_after"`
	Description     string           `gorm:"size:255" json:"description"`
	Reference       string           `gorm:"uniqueIndex;size:64;not null" json:"reference"`
	AstrologerID    *uint            `gorm:"index" json:"astrologer_id,omitempty"`
	SessionID       *uint            `gorm:"index" json:"session_id,omitempty"`
	DurationMinutes *decimal.Decimal `gorm:"type:decimal(10,2)" json:"duration_minutes,omitempty"`
	PaymentMethod   string           `gorm:"size:32" json:"payment_method,omitempty"`
	PaymentID       string           `gorm:"size:128;index" json:"payment_id,omitempty"`
	Status          string           `gorm:"size:20;not null" json:"status"`
	CreatedAt       time.Time        `json:"created_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Transaction) TableName() string {
	return "transactions"
}
