package service

import (
	"context"
	"encoding/json"

	"nakshatra/internal/models"
	"nakshatra/internal/repository"

	"github.com/shopspring/decimal"
)

type NotificationService struct {
	repo     *repository.NotificationRepository
	userRepo *repository.UserRepository
	fcm      *FCMService
}

func NewNotificationService(repo *repository.NotificationRepository, userRepo *repository.UserRepository, fcm *FCMService) *NotificationService {
	return &NotificationService{repo: repo, userRepo: userRepo, fcm: fcm}
}

func (s *NotificationService) Notify(userID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		return err
	}
	s.sendPush(userID, notifType, title, body, data)
	return nil
}

func (s *NotificationService) sendPush(userID uint, notifType, title, body string, data map[string]interface{}) {
	if s.fcm == nil || s.userRepo == nil {
		return
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil || u == nil || u.FCMToken == "" {
		return
	}
	_ = s.fcm.SendToToken(context.Background(), u.FCMToken, notifType, title, body, data)
}

func (s *NotificationService) NotifyRechargeConfirmed(userID uint, amount decimal.Decimal, reference string) error {
	return s.Notify(userID, "RECHARGE_CONFIRMED", "Recharge successful",
		"Your wallet was credited with ₹"+amount.StringFixed(2),
		map[string]interface{}{"amount": amount.StringFixed(2), "reference": reference})
}

func (s *NotificationService) NotifySessionEnded(userID uint, sessionID uint, cost decimal.Decimal) error {
	return s.Notify(userID, "SESSION_ENDED", "Session ended",
		"Your session cost ₹"+cost.StringFixed(2),
		map[string]interface{}{"session_id": sessionID, "total_cost": cost.StringFixed(2)})
}

func (s *NotificationService) NotifyAstrologerApproved(userID uint) error {
	return s.Notify(userID, "PROFILE_APPROVED", "Profile approved",
		"Your astrologer profile has been approved. You can now take sessions.", nil)
}

// Broadcast stores a notification for every user (admin announcements).
// Per-user failures are skipped so one bad row never aborts the batch.
func (s *NotificationService) Broadcast(notifType, title, body string) (int, error) {
	ids, err := s.repo.AllUserIDs()
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, id := range ids {
		if err := s.Notify(id, notifType, title, body, nil); err == nil {
			sent++
		}
	}
	return sent, nil
}
