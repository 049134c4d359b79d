package repository

import (
	"time"

	"nakshatra/internal/models"

	"gorm.io/gorm"
)

type OTPRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

func (r *OTPRepository) Create(o *models.OTP) error {
	return r.db.Create(o).Error
}

// GetLatestPending returns the newest unverified, unexpired OTP for a phone.
func (r *OTPRepository) GetLatestPending(phone string, now time.Time) (*models.OTP, error) {
	var o models.OTP
	err := r.db.Where("phone = ? AND verified_at IS NULL AND expires_at > ?", phone, now).
		Order("created_at DESC").First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OTPRepository) IncrementAttempts(id uint) error {
	return r.db.Model(&models.OTP{}).Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + ?", 1)).Error
}

func (r *OTPRepository) MarkVerified(id uint, at time.Time) error {
	return r.db.Model(&models.OTP{}).Where("id = ?", id).Update("verified_at", at).Error
}
