// Package notify records per-user notification entries for chat-request
// transitions and new messages. Recording is idempotent per (user, event):
// re-delivering the same underlying event never creates a duplicate.
package notify

import (
	"fmt"
	"log"

	"pawlink/backend/internal/models"
	"pawlink/backend/internal/storage"
)

// Service handles notification fan-out.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new notification service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// RequestEvent records one entry per affected user for a request transition.
// Failures are logged and swallowed: notifications are a side channel and must
// never fail the transition that produced them.
func (s *Service) RequestEvent(userIDs []uint, notifType string, requestID uint) {
	link := fmt.Sprintf("/chat-requests/%d", requestID)
	eventKey := fmt.Sprintf("request:%d:%s", requestID, notifType)
	s.record(userIDs, notifType, link, eventKey)
}

// MessageEvent records one entry per room participant for a new message.
func (s *Service) MessageEvent(userIDs []uint, roomID string, messageID uint) {
	link := fmt.Sprintf("/rooms/%s", roomID)
	eventKey := fmt.Sprintf("message:%d", messageID)
	s.record(userIDs, models.NotificationNewMessage, link, eventKey)
}

func (s *Service) record(userIDs []uint, notifType, link, eventKey string) {
	for _, uid := range userIDs {
		n := models.Notification{
			UserID:     uid,
			EventKey:   eventKey,
			Type:       notifType,
			LinkTarget: link,
		}
		if err := s.Storage.RecordNotification(&n); err != nil {
			log.Printf("ERROR: Failed to record %s notification for user %d: %v", notifType, uid, err)
		}
	}
}
