package models

import (
	"time"

	"nakshatra/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Astrologer struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	UserID             uint            `gorm:"uniqueIndex;not null" json:"user_id"`
	DisplayName        string          `gorm:"size:128;not null" json:"display_name"`
	Bio                string          `gorm:"type:text" json:"bio"`
	ImageURL           string          `gorm:"size:512" json:"image_url"`
	Languages          string          `gorm:"size:255" json:"languages"`   // comma-separated, e.g. "hindi,english"
	Specialties        string          `gorm:"size:255" json:"specialties"` // comma-separated category slugs
	ExperienceYears    int             `json:"experience_years"`
	ChatPricePerMinute decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"chat_price_per_minute"`
	CallPricePerMinute decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"call_price_per_minute"`
	IsAvailable        bool            `gorm:"default:false;index" json:"is_available"`
	IsLive             bool            `gorm:"default:false" json:"is_live"`
	Status             string          `gorm:"size:20;not null;index;default:'PENDING'" json:"status"`
	Rating             decimal.Decimal `gorm:"type:decimal(2,1);not null;default:0" json:"rating"`
	TotalCalls         int             `gorm:"default:0" json:"total_calls"`
	TotalReviews       int             `gorm:"default:0" json:"total_reviews"`
	LastHeartbeatAt    *time.Time      `json:"last_heartbeat_at"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	DeletedAt          gorm.DeletedAt  `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Astrologer) TableName() string {
	return "astrologers"
}

// SessionEligible reports whether new paid sessions may be started
// against this astrologer.
func (a *Astrologer) SessionEligible() bool {
	return a.Status == domain.AstrologerStatusApproved && a.IsAvailable
}

// PriceFor returns the snapshotted per-minute price for a session type.
// Video calls share the voice call price.
func (a *Astrologer) PriceFor(sessionType string) decimal.Decimal {
	if sessionType == domain.SessionTypeChat {
		return a.ChatPricePerMinute
	}
	return a.CallPricePerMinute
}
