package handler

import (
	"net/http"
	"strconv"

	"nakshatra/internal/middleware"
	"nakshatra/internal/models"
	"nakshatra/internal/repository"
	"nakshatra/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionSvc  *service.SessionService
	sessionRepo *repository.SessionRepository
	astroRepo   *repository.AstrologerRepository
	messageRepo *repository.MessageRepository
	notifSvc    *service.NotificationService
}

func NewSessionHandler(sessionSvc *service.SessionService, sessionRepo *repository.SessionRepository, astroRepo *repository.AstrologerRepository, messageRepo *repository.MessageRepository, notifSvc *service.NotificationService) *SessionHandler {
	return &SessionHandler{
		sessionSvc:  sessionSvc,
		sessionRepo: sessionRepo,
		astroRepo:   astroRepo,
		messageRepo: messageRepo,
		notifSvc:    notifSvc,
	}
}

// isParticipant reports whether userID is the client or the astrologer
// of the session. Both sides of a consultation share its room and its
// message history.
func isParticipant(session *models.ChatSession, astrologer *models.Astrologer, userID uint) bool {
	if userID == session.UserID {
		return true
	}
	return astrologer != nil && userID == astrologer.UserID
}

// Start creates a chat/call/video session against an astrologer.
func (h *SessionHandler) Start(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		AstrologerID uint   `json:"astrologer_id" binding:"required"`
		SessionType  string `json:"session_type" binding:"required,oneof=CHAT CALL VIDEO"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	session, err := h.sessionSvc.Start(userID, req.AstrologerID, req.SessionType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, "session started", session)
}

// End settles the session cost and completes it.
func (h *SessionHandler) End(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req) // body is optional

	receipt, err := h.sessionSvc.End(sessionID, userID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if h.notifSvc != nil {
		_ = h.notifSvc.NotifySessionEnded(userID, receipt.SessionID, receipt.TotalCost)
	}
	respondOK(c, http.StatusOK, "session ended", receipt)
}

// Rate adds feedback to a completed session.
func (h *SessionHandler) Rate(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	var req struct {
		Rating int    `json:"rating" binding:"required,min=1,max=5"`
		Review string `json:"review"`
		Tags   string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	if err := h.sessionSvc.Rate(sessionID, userID, req.Rating, req.Review, req.Tags); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "rating saved", nil)
}

// ValidateBalance is the read-only affordability pre-check.
func (h *SessionHandler) ValidateBalance(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req struct {
		AstrologerID uint   `json:"astrologer_id" binding:"required"`
		SessionType  string `json:"session_type" binding:"required,oneof=CHAT CALL VIDEO"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidation(c, err)
		return
	}
	check, err := h.sessionSvc.ValidateBalance(userID, req.AstrologerID, req.SessionType)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", check)
}

// List returns the caller's session history.
func (h *SessionHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit, offset := pageParams(c)
	sessions, total, err := h.sessionRepo.ListByUserID(userID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, sessions, NewPagination(page, limit, total))
}

// Messages returns persisted in-session chat messages; only session
// participants may read them.
func (h *SessionHandler) Messages(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sessionID, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	session, err := h.sessionRepo.GetByID(sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	astrologer, err := h.astroRepo.GetByID(session.AstrologerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !isParticipant(session, astrologer, userID) {
		respondError(c, http.StatusForbidden, "FORBIDDEN", "not part of this session")
		return
	}
	_, limit, offset := pageParams(c)
	messages, err := h.messageRepo.ListBySessionID(sessionID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "", messages)
}

func pathID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
