package repository

import (
	"errors"
	"time"

	"nakshatra/internal/domain"
	"nakshatra/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(s *models.ChatSession) error {
	return r.db.Create(s).Error
}

func (r *SessionRepository) GetByID(id uint) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.db.First(&s, id).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActiveByUserID returns the user's currently running session, or
// nil when there is none.
func (r *SessionRepository) GetActiveByUserID(userID uint) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.db.Where("user_id = ? AND status = ?", userID, domain.SessionStatusActive).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActiveOwned returns the ACTIVE session matching both id and owner.
func (r *SessionRepository) GetActiveOwned(id, userID uint) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.db.Where("id = ? AND user_id = ? AND status = ?", id, userID, domain.SessionStatusActive).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetCompletedOwned returns the COMPLETED session matching both id and owner.
func (r *SessionRepository) GetCompletedOwned(id, userID uint) (*models.ChatSession, error) {
	var s models.ChatSession
	err := r.db.Where("id = ? AND user_id = ? AND status = ?", id, userID, domain.SessionStatusCompleted).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Complete settles the row: end time, duration, cost, terminal status,
// and clears active_user_id so the unique index frees the slot.
func (r *SessionRepository) Complete(id uint, endTime time.Time, duration, totalCost decimal.Decimal, reason string) error {
	return r.db.Model(&models.ChatSession{}).Where("id = ?", id).Updates(map[string]interface{}{
		"end_time":       endTime,
		"duration":       duration,
		"total_cost":     totalCost,
		"status":         domain.SessionStatusCompleted,
		"end_reason":     reason,
		"active_user_id": nil,
	}).Error
}

// SetRating overwrites the rating fields on a completed session.
func (r *SessionRepository) SetRating(id uint, rating int, review, tags string) error {
	return r.db.Model(&models.ChatSession{}).Where("id = ?", id).Updates(map[string]interface{}{
		"rating": rating,
		"review": review,
		"tags":   tags,
	}).Error
}

func (r *SessionRepository) ListByUserID(userID uint, limit, offset int) ([]models.ChatSession, int64, error) {
	var total int64
	query := r.db.Model(&models.ChatSession{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.ChatSession
	err := query.Order("start_time DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}
