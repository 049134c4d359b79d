package repository

import (
	"errors"

	"nakshatra/internal/domain"
	"nakshatra/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Upsert creates the session's review or overwrites an existing one
// (reviews are one-to-one with sessions).
func (r *ReviewRepository) Upsert(review *models.Review) error {
	var existing models.Review
	err := r.db.Where("session_id = ?", review.SessionID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(review).Error
	}
	if err != nil {
		return err
	}
	existing.Rating = review.Rating
	existing.Comment = review.Comment
	existing.Tags = review.Tags
	existing.Status = review.Status
	if err := r.db.Save(&existing).Error; err != nil {
		return err
	}
	review.ID = existing.ID
	return nil
}

func (r *ReviewRepository) GetByID(id uint) (*models.Review, error) {
	var rev models.Review
	err := r.db.First(&rev, id).Error
	if err != nil {
		return nil, err
	}
	return &rev, nil
}

func (r *ReviewRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Review{}).Where("id = ?", id).Update("status", status).Error
}

// ApprovedRatings returns all approved rating values for an astrologer,
// the input to the aggregate recomputation.
func (r *ReviewRepository) ApprovedRatings(astrologerID uint) ([]int, error) {
	var ratings []int
	err := r.db.Model(&models.Review{}).
		Where("astrologer_id = ? AND status = ?", astrologerID, domain.ReviewStatusApproved).
		Pluck("rating", &ratings).Error
	return ratings, err
}

func (r *ReviewRepository) ListByAstrologerID(astrologerID uint, limit, offset int) ([]models.Review, int64, error) {
	var total int64
	query := r.db.Model(&models.Review{}).
		Where("astrologer_id = ? AND status = ?", astrologerID, domain.ReviewStatusApproved)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Review
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}
