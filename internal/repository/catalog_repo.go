package repository

import (
	"time"

	"nakshatra/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(c *models.Category) error {
	return r.db.Create(c).Error
}

func (r *CategoryRepository) GetByID(id uint) (*models.Category, error) {
	var c models.Category
	err := r.db.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) ListActive() ([]models.Category, error) {
	var list []models.Category
	err := r.db.Where("is_active = ?", true).Order("sort_order ASC, name ASC").Find(&list).Error
	return list, err
}

func (r *CategoryRepository) Update(c *models.Category) error {
	return r.db.Save(c).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

type BannerRepository struct {
	db *gorm.DB
}

func NewBannerRepository(db *gorm.DB) *BannerRepository {
	return &BannerRepository{db: db}
}

func (r *BannerRepository) Create(b *models.Banner) error {
	return r.db.Create(b).Error
}

func (r *BannerRepository) GetByID(id uint) (*models.Banner, error) {
	var b models.Banner
	err := r.db.First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ListLive returns active banners inside their scheduling window.
func (r *BannerRepository) ListLive(now time.Time) ([]models.Banner, error) {
	var list []models.Banner
	err := r.db.Where("is_active = ?", true).
		Where("starts_at IS NULL OR starts_at <= ?", now).
		Where("ends_at IS NULL OR ends_at >= ?", now).
		Order("sort_order ASC").Find(&list).Error
	return list, err
}

func (r *BannerRepository) Update(b *models.Banner) error {
	return r.db.Save(b).Error
}

func (r *BannerRepository) Delete(id uint) error {
	return r.db.Delete(&models.Banner{}, id).Error
}
