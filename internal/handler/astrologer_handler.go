package handler

import (
	"net/http"
	"strings"

	"nakshatra/internal/middleware"
	"nakshatra/internal/repository"
	"nakshatra/internal/service"
	"nakshatra/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AstrologerHandler struct {
	astroRepo   *repository.AstrologerRepository
	reviewRepo  *repository.ReviewRepository
	presenceSvc *service.PresenceService
	cloud       cloudinary.Client
}

func NewAstrologerHandler(astroRepo *repository.AstrologerRepository, reviewRepo *repository.ReviewRepository, presenceSvc *service.PresenceService, cloud cloudinary.Client) *AstrologerHandler {
	return &AstrologerHandler{
		astroRepo:   astroRepo,
		reviewRepo:  reviewRepo,
		presenceSvc: presenceSvc,
		cloud:       cloud,
	}
}

// List is the public astrologer directory with filters and pagination.
func (h *AstrologerHandler) List(c *gin.Context) {
	page, limit, offset := pageParams(c)
	filters := repository.ListFilters{
		Specialty:  c.Query("specialty"),
		Language:   c.Query("language"),
		OnlineOnly: c.Query("online") == "true",
		SortBy:     c.Query("sort"),
		Limit:      limit,
		Offset:     offset,
	}
	if v := c.Query("min_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filters.MinPrice = &d
		}
	}
	if v := c.Query("max_price"); v != "" {
		if d, err := decimal.NewFromString(v); err == nil {
			filters.MaxPrice = &d
		}
	}
	list, total, err := h.astroRepo.List(filters)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, list, NewPagination(page, limit, total))
}

func (h *AstrologerHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	astrologer, err := h.astroRepo.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", astrologer)
}

func (h *AstrologerHandler) Reviews(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	page, limit, offset := pageParams(c)
	reviews, total, err := h.reviewRepo.ListByAstrologerID(id, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, reviews, NewPagination(page, limit, total))
}

// UpdateProfile lets an astrologer edit their own listing.
func (h *AstrologerHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	profile, err := h.astroRepo.GetByUserID(userID)
	if err != nil {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "astrologer profile required")
		return
	}
	var req struct {
		DisplayName        *string          `json:"display_name"`
		Bio                *string          `json:"bio"`
		Languages          *string          `json:"languages"`
		Specialties        *string          `json:"specialties"`
		ExperienceYears    *int             `json:"experience_years" binding:"omitempty,min=0"`
		ChatPricePerMinute *decimal.Decimal `json:"chat_price_per_minute"`
		CallPricePerMinute *decimal.Decimal `json:"call_price_per_minute"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if req.ChatPricePerMinute != nil && req.ChatPricePerMinute.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "chat price must not be negative")
		return
	}
	if req.CallPricePerMinute != nil && req.CallPricePerMinute.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "call price must not be negative")
		return
	}
	upd := repository.AstrologerUpdate{
		DisplayName:        req.DisplayName,
		Bio:                req.Bio,
		Languages:          req.Languages,
		Specialties:        req.Specialties,
		ExperienceYears:    req.ExperienceYears,
		ChatPricePerMinute: req.ChatPricePerMinute,
		CallPricePerMinute: req.CallPricePerMinute,
	}
	if err := h.astroRepo.UpdateProfile(profile.ID, upd); err != nil {
		respondServiceError(c, err)
		return
	}
	updated, err := h.astroRepo.GetByID(profile.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "profile updated", updated)
}

// SetAvailability toggles is_available / is_live for the caller.
func (h *AstrologerHandler) SetAvailability(c *gin.Context) {
	userID := middleware.GetUserID(c)
	profile, err := h.astroRepo.GetByUserID(userID)
	if err != nil {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "astrologer profile required")
		return
	}
	var req struct {
		IsAvailable *bool `json:"is_available"`
		IsLive      *bool `json:"is_live"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	upd := repository.AstrologerUpdate{IsAvailable: req.IsAvailable, IsLive: req.IsLive}
	if err := h.astroRepo.UpdateProfile(profile.ID, upd); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "availability updated", nil)
}

// Heartbeat keeps the astrologer marked online; the background sweep
// flips them offline when heartbeats stop.
func (h *AstrologerHandler) Heartbeat(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.presenceSvc.Heartbeat(userID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", nil)
}

// UploadMedia uploads a profile image to Cloudinary and stores its URL.
func (h *AstrologerHandler) UploadMedia(c *gin.Context) {
	userID := middleware.GetUserID(c)
	profile, err := h.astroRepo.GetByUserID(userID)
	if err != nil {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "astrologer profile required")
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "file required")
		return
	}
	f, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "could not read file")
		return
	}
	defer f.Close()

	publicID := "img_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	url, _, err := h.cloud.UploadImage(c.Request.Context(), f, "nakshatra/astrologers", publicID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "SERVER_ERROR", "upload failed")
		return
	}
	if err := h.astroRepo.UpdateProfile(profile.ID, repository.AstrologerUpdate{ImageURL: &url}); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "image uploaded", gin.H{"url": url})
}
