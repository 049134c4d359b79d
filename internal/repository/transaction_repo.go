package repository

import (
	"nakshatra/internal/models"

	"gorm.io/gorm"
)

// TransactionRepository reads ledger history. Writes happen inside the
// wallet ledger's unit of work, never here.
type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) ListByUserID(userID uint, limit, offset int) ([]models.Transaction, int64, error) {
	var total int64
	query := r.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []models.Transaction
	err := query.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, total, err
}

func (r *TransactionRepository) GetByReference(ref string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.Where("reference = ?", ref).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
