package storage

import (
	"encoding/json"
	"log"
	"time"

	"pawlink/backend/internal/apperr"
	"pawlink/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RecordNotification inserts one unread entry keyed by (user, event). A second
// delivery of the same underlying event finds the existing row and is a no-op.
func (s *Service) RecordNotification(n *models.Notification) error {
	return s.DB.
		Where("user_id = ? AND event_key = ?", n.UserID, n.EventKey).
		FirstOrCreate(n).Error
}

func (s *Service) ListNotifications(userID uint) ([]models.Notification, error) {
	var items []models.Notification
	if err := s.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&items).Error; err != nil {
		log.Printf("ERROR: Failed to list notifications for user %d: %v", userID, err)
		return nil, err
	}
	return items, nil
}

func (s *Service) MarkNotificationRead(id, userID uint) error {
	res := s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_at", time.Now())
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// --- Realtime ---

const roomChannelPrefix = "room:"

// PublishEvent публікує подію кімнати в Redis Pub/Sub.
func (s *Service) PublishEvent(roomID string, ev models.RoomEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return s.Redis.Publish(s.Ctx, roomChannelPrefix+roomID, payload).Err()
}

// SubscribeRoomEvents subscribes to every room channel. The hub consumes the
// returned PubSub and fans messages out to its connected clients.
func (s *Service) SubscribeRoomEvents() *redis.PubSub {
	return s.Redis.PSubscribe(s.Ctx, roomChannelPrefix+"*")
}
