package repository

import (
	"nakshatra/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(m *models.ChatMessage) error {
	return r.db.Create(m).Error
}

func (r *MessageRepository) ListBySessionID(sessionID uint, limit, offset int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	var list []models.ChatMessage
	err := r.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}
