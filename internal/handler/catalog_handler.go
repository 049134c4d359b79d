package handler

import (
	"net/http"
	"time"

	"nakshatra/internal/models"
	"nakshatra/internal/repository"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	categoryRepo *repository.CategoryRepository
	bannerRepo   *repository.BannerRepository
}

func NewCatalogHandler(categoryRepo *repository.CategoryRepository, bannerRepo *repository.BannerRepository) *CatalogHandler {
	return &CatalogHandler{categoryRepo: categoryRepo, bannerRepo: bannerRepo}
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list, err := h.categoryRepo.ListActive()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", list)
}

func (h *CatalogHandler) ListBanners(c *gin.Context) {
	list, err := h.bannerRepo.ListLive(time.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", list)
}

// Admin CRUD below.

func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name      string `json:"name" binding:"required"`
		Slug      string `json:"slug" binding:"required"`
		ImageURL  string `json:"image_url"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	cat := &models.Category{
		Name:      req.Name,
		Slug:      req.Slug,
		ImageURL:  req.ImageURL,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}
	if err := h.categoryRepo.Create(cat); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "category created", cat)
}

func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	cat, err := h.categoryRepo.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req struct {
		Name      *string `json:"name"`
		ImageURL  *string `json:"image_url"`
		SortOrder *int    `json:"sort_order"`
		IsActive  *bool   `json:"is_active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if req.Name != nil {
		cat.Name = *req.Name
	}
	if req.ImageURL != nil {
		cat.ImageURL = *req.ImageURL
	}
	if req.SortOrder != nil {
		cat.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}
	if err := h.categoryRepo.Update(cat); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "category updated", cat)
}

func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	if err := h.categoryRepo.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "category deleted", nil)
}

func (h *CatalogHandler) CreateBanner(c *gin.Context) {
	var req struct {
		Title     string     `json:"title"`
		ImageURL  string     `json:"image_url" binding:"required"`
		TargetURL string     `json:"target_url"`
		SortOrder int        `json:"sort_order"`
		StartsAt  *time.Time `json:"starts_at"`
		EndsAt    *time.Time `json:"ends_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	b := &models.Banner{
		Title:     req.Title,
		ImageURL:  req.ImageURL,
		TargetURL: req.TargetURL,
		SortOrder: req.SortOrder,
		IsActive:  true,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
	}
	if err := h.bannerRepo.Create(b); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "banner created", b)
}

func (h *CatalogHandler) UpdateBanner(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	b, err := h.bannerRepo.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	var req struct {
		Title     *string    `json:"title"`
		ImageURL  *string    `json:"image_url"`
		TargetURL *string    `json:"target_url"`
		SortOrder *int       `json:"sort_order"`
		IsActive  *bool      `json:"is_active"`
		StartsAt  *time.Time `json:"starts_at"`
		EndsAt    *time.Time `json:"ends_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.ImageURL != nil {
		b.ImageURL = *req.ImageURL
	}
	if req.TargetURL != nil {
		b.TargetURL = *req.TargetURL
	}
	if req.SortOrder != nil {
		b.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
	if req.StartsAt != nil {
		b.StartsAt = req.StartsAt
	}
	if req.EndsAt != nil {
		b.EndsAt = req.EndsAt
	}
	if err := h.bannerRepo.Update(b); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "banner updated", b)
}

func (h *CatalogHandler) DeleteBanner(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	if err := h.bannerRepo.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "banner deleted", nil)
}
