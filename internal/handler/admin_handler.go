package handler

import (
	"net/http"

	"nakshatra/internal/domain"
	"nakshatra/internal/models"
	"nakshatra/internal/repository"
	"nakshatra/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	astroRepo *repository.AstrologerRepository
	userRepo  *repository.UserRepository
	reviewSvc *service.ReviewService
	notifSvc  *service.NotificationService
}

func NewAdminHandler(astroRepo *repository.AstrologerRepository, userRepo *repository.UserRepository, reviewSvc *service.ReviewService, notifSvc *service.NotificationService) *AdminHandler {
	return &AdminHandler{
		astroRepo: astroRepo,
		userRepo:  userRepo,
		reviewSvc: reviewSvc,
		notifSvc:  notifSvc,
	}
}

// CreateAstrologer onboards an astrologer profile for an existing user
// and flips their role. New profiles start PENDING.
func (h *AdminHandler) CreateAstrologer(c *gin.Context) {
	var req struct {
		UserID             uint            `json:"user_id" binding:"required"`
		DisplayName        string          `json:"display_name" binding:"required"`
		Bio                string          `json:"bio"`
		Languages          string          `json:"languages"`
		Specialties        string          `json:"specialties"`
		ExperienceYears    int             `json:"experience_years"`
		ChatPricePerMinute decimal.Decimal `json:"chat_price_per_minute"`
		CallPricePerMinute decimal.Decimal `json:"call_price_per_minute"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if req.ChatPricePerMinute.IsNegative() || req.CallPricePerMinute.IsNegative() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "prices must not be negative")
		return
	}
	if _, err := h.userRepo.GetByID(req.UserID); err != nil {
		respondServiceError(c, err)
		return
	}
	astrologer := &models.Astrologer{
		UserID:             req.UserID,
		DisplayName:        req.DisplayName,
		Bio:                req.Bio,
		Languages:          req.Languages,
		Specialties:        req.Specialties,
		ExperienceYears:    req.ExperienceYears,
		ChatPricePerMinute: req.ChatPricePerMinute,
		CallPricePerMinute: req.CallPricePerMinute,
		Status:             domain.AstrologerStatusPending,
	}
	if err := h.astroRepo.Create(astrologer); err != nil {
		respondServiceError(c, err)
		return
	}
	if err := h.userRepo.UpdateRole(req.UserID, domain.RoleAstrologer); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "astrologer created", astrologer)
}

// SetAstrologerStatus approves, rejects or deactivates a profile.
func (h *AdminHandler) SetAstrologerStatus(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED INACTIVE"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	astrologer, err := h.astroRepo.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if err := h.astroRepo.UpdateStatus(id, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	if req.Status == domain.AstrologerStatusApproved && h.notifSvc != nil {
		_ = h.notifSvc.NotifyAstrologerApproved(astrologer.UserID)
	}
	respondOK(c, http.StatusOK, "status updated", nil)
}

// ModerateReview approves or rejects a review; the astrologer's
// aggregate rating is recomputed either way.
func (h *AdminHandler) ModerateReview(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	var req struct {
		Status string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if err := h.reviewSvc.Moderate(id, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "review moderated", nil)
}

// Broadcast stores an announcement notification for every user.
func (h *AdminHandler) Broadcast(c *gin.Context) {
	var req struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	sent, err := h.notifSvc.Broadcast("ANNOUNCEMENT", req.Title, req.Body)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "broadcast sent", gin.H{"recipients": sent})
}
