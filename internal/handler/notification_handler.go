package handler

import (
	"net/http"

	"nakshatra/internal/middleware"
	"nakshatra/internal/repository"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	repo *repository.NotificationRepository
}

func NewNotificationHandler(repo *repository.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{repo: repo}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)
	page, limit, offset := pageParams(c)
	list, total, err := h.repo.ListByUserID(userID, limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, list, NewPagination(page, limit, total))
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := middleware.GetUserID(c)
	id, err := pathID(c, "id")
	if err != nil {
		respondValidation(c, err)
		return
	}
	if err := h.repo.MarkRead(id, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "marked read", nil)
}
