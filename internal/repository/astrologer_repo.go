package repository

import (
	"time"

	"nakshatra/internal/domain"
	"nakshatra/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AstrologerRepository struct {
	db *gorm.DB
}

func NewAstrologerRepository(db *gorm.DB) *AstrologerRepository {
	return &AstrologerRepository{db: db}
}

func (r *AstrologerRepository) Create(a *models.Astrologer) error {
	return r.db.Create(a).Error
}

func (r *AstrologerRepository) GetByID(id uint) (*models.Astrologer, error) {
	var a models.Astrologer
	err := r.db.First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AstrologerRepository) GetByUserID(userID uint) (*models.Astrologer, error) {
	var a models.Astrologer
	err := r.db.Where("user_id = ?", userID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListFilters narrows the public astrologer listing.
type ListFilters struct {
	Specialty  string
	Language   string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	OnlineOnly bool
	SortBy     string // rating, price_low, price_high, experience
	Limit      int
	Offset     int
}

// List returns approved astrologers matching the filters plus the
// total count for pagination.
func (r *AstrologerRepository) List(f ListFilters) ([]models.Astrologer, int64, error) {
	if f.Limit <= 0 {
		f.Limit = 20
	}
	query := r.db.Model(&models.Astrologer{}).Where("status = ?", domain.AstrologerStatusApproved)
	if f.Specialty != "" {
		query = query.Where("CONCAT(',', specialties, ',') LIKE ?", "%,"+f.Specialty+",%")
	}
	if f.Language != "" {
		query = query.Where("CONCAT(',', languages, ',') LIKE ?", "%,"+f.Language+",%")
	}
	if f.MinPrice != nil {
		query = query.Where("chat_price_per_minute >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("chat_price_per_minute <= ?", *f.MaxPrice)
	}
	if f.OnlineOnly {
		query = query.Where("is_available = ?", true)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	switch f.SortBy {
	case "price_low":
		query = query.Order("chat_price_per_minute ASC")
	case "price_high":
		query = query.Order("chat_price_per_minute DESC")
	case "experience":
		query = query.Order("experience_years DESC")
	default:
		query = query.Order("rating DESC, total_reviews DESC")
	}
	var list []models.Astrologer
	err := query.Limit(f.Limit).Offset(f.Offset).Find(&list).Error
	return list, total, err
}

// AstrologerUpdate carries optional profile fields; nil means "leave unchanged".
// Status, rating and review counters are not settable here.
type AstrologerUpdate struct {
	DisplayName        *string
	Bio                *string
	ImageURL           *string
	Languages          *string
	Specialties        *string
	ExperienceYears    *int
	ChatPricePerMinute *decimal.Decimal
	CallPricePerMinute *decimal.Decimal
	IsAvailable        *bool
	IsLive             *bool
}

func (r *AstrologerRepository) UpdateProfile(id uint, upd AstrologerUpdate) error {
	fields := map[string]interface{}{}
	if upd.DisplayName != nil {
		fields["display_name"] = *upd.DisplayName
	}
	if upd.Bio != nil {
		fields["bio"] = *upd.Bio
	}
	if upd.ImageURL != nil {
		fields["image_url"] = *upd.ImageURL
	}
	if upd.Languages != nil {
		fields["languages"] = *upd.Languages
	}
	if upd.Specialties != nil {
		fields["specialties"] = *upd.Specialties
	}
	if upd.ExperienceYears != nil {
		fields["experience_years"] = *upd.ExperienceYears
	}
	if upd.ChatPricePerMinute != nil {
		fields["chat_price_per_minute"] = *upd.ChatPricePerMinute
	}
	if upd.CallPricePerMinute != nil {
		fields["call_price_per_minute"] = *upd.CallPricePerMinute
	}
	if upd.IsAvailable != nil {
		fields["is_available"] = *upd.IsAvailable
	}
	if upd.IsLive != nil {
		fields["is_live"] = *upd.IsLive
	}
	if len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.Astrologer{}).Where("id = ?", id).Updates(fields).Error
}

func (r *AstrologerRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Astrologer{}).Where("id = ?", id).Update("status", status).Error
}

// IncrementTotalCalls bumps the completed-session counter.
func (r *AstrologerRepository) IncrementTotalCalls(id uint) error {
	return r.db.Model(&models.Astrologer{}).Where("id = ?", id).
		UpdateColumn("total_calls", gorm.Expr("total_calls + ?", 1)).Error
}

// SetRating stores the recomputed aggregate rating and review count.
func (r *AstrologerRepository) SetRating(id uint, rating decimal.Decimal, totalReviews int) error {
	return r.db.Model(&models.Astrologer{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating":        rating,
		"total_reviews": totalReviews,
	}).Error
}

// TouchHeartbeat records a presence heartbeat and marks the astrologer available.
func (r *AstrologerRepository) TouchHeartbeat(userID uint, at time.Time) error {
	return r.db.Model(&models.Astrologer{}).Where("user_id = ?", userID).Updates(map[string]interface{}{
		"last_heartbeat_at": at,
		"is_available":      true,
	}).Error
}

// MarkStaleOffline flips astrologers offline whose last heartbeat is
// older than cutoff. Returns the number of rows changed.
func (r *AstrologerRepository) MarkStaleOffline(cutoff time.Time) (int64, error) {
	res := r.db.Model(&models.Astrologer{}).
		Where("is_available = ? AND (last_heartbeat_at IS NULL OR last_heartbeat_at < ?)", true, cutoff).
		Updates(map[string]interface{}{"is_available": false, "is_live": false})
	return res.RowsAffected, res.Error
}
