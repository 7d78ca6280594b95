package storage

import (
	"errors"
	"log"
	"time"

	"pawlink/backend/internal/apperr"
	"pawlink/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) GetRoomByID(roomID string) (*models.ChatRoom, error) {
	var room models.ChatRoom
	err := s.DB.Where("room_id = ?", roomID).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get room %s: %v", roomID, err)
		return nil, err
	}
	return &room, nil
}

func (s *Service) ListRoomsForUser(userID uint) ([]models.ChatRoom, error) {
	var rooms []models.ChatRoom
	err := s.DB.
		Joins("JOIN room_participants ON room_participants.room_id = chat_rooms.room_id").
		Where("room_participants.user_id = ?", userID).
		Order("chat_rooms.created_at desc").
		Find(&rooms).Error
	if err != nil {
		log.Printf("ERROR: Failed to list rooms for user %d: %v", userID, err)
		return nil, err
	}
	return rooms, nil
}

func (s *Service) ListParticipants(roomID string) ([]models.RoomParticipant, error) {
	var parts []models.RoomParticipant
	if err := s.DB.Where("room_id = ?", roomID).Find(&parts).Error; err != nil {
		log.Printf("ERROR: Failed to list participants for room %s: %v", roomID, err)
		return nil, err
	}
	return parts, nil
}

// AddParticipant додає користувача в кімнату. Повторне додавання — no-op.
func (s *Service) AddParticipant(roomID string, userID uint) error {
	return addParticipant(s.DB, roomID, userID)
}

// addParticipant inserts the (room, user) pair unless it already exists. Also
// used inside the TransitionWithRoom transaction.
func addParticipant(tx *gorm.DB, roomID string, userID uint) error {
	p := models.RoomParticipant{RoomID: roomID, UserID: userID}
	return tx.
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Attrs(models.RoomParticipant{JoinedAt: time.Now()}).
		FirstOrCreate(&p).Error
}

func (s *Service) IsParticipant(roomID string, userID uint) (bool, error) {
	var count int64
	err := s.DB.Model(&models.RoomParticipant{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// --- Messages ---

// SaveMessage appends a message. The database-assigned ID is the canonical
// position in the room's sequence.
func (s *Service) SaveMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message for room %s: %v", msg.RoomID, err)
		return err
	}
	return nil
}

// GetMessages returns the room's messages in append order. Soft-deleted image
// messages keep their slot in the sequence.
func (s *Service) GetMessages(roomID string) ([]models.Message, error) {
	var msgs []models.Message
	if err := s.DB.Where("room_id = ?", roomID).Order("id asc").Find(&msgs).Error; err != nil {
		log.Printf("ERROR: Failed to get messages for room %s: %v", roomID, err)
		return nil, err
	}
	return msgs, nil
}

func (s *Service) GetMessageByID(id uint) (*models.Message, error) {
	var msg models.Message
	err := s.DB.First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

func (s *Service) UpdateMessage(msg *models.Message) error {
	// Select forces zero-valued columns (cleared image URL) to be written.
	return s.DB.Model(msg).
		Select("content", "image_url", "is_deleted").
		Updates(map[string]interface{}{
			"content":    msg.Content,
			"image_url":  msg.ImageURL,
			"is_deleted": msg.IsDeleted,
		}).Error
}
