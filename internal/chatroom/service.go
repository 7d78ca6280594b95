// Package chatroom enforces room membership and owns the append-only message
// sequence. Only current participants can read or write a room; everyone else
// gets a not-found answer so membership itself is not leaked.
package chatroom

import (
	"fmt"
	"log"

	"pawlink/backend/internal/apperr"
	"pawlink/backend/internal/config"
	"pawlink/backend/internal/models"
	"pawlink/backend/internal/notify"
	"pawlink/backend/internal/storage"
)

// Service handles room access and message append/list/soft-delete.
type Service struct {
	Storage storage.Storage
	Notify  *notify.Service
}

// NewService creates a new chatroom service.
func NewService(s storage.Storage, n *notify.Service) *Service {
	return &Service{Storage: s, Notify: n}
}

// ListRooms returns the rooms the actor participates in.
func (s *Service) ListRooms(actor models.Identity) ([]models.ChatRoom, error) {
	return s.Storage.ListRoomsForUser(actor.ID)
}

// GetRoom returns one room the actor participates in.
func (s *Service) GetRoom(actor models.Identity, roomID string) (*models.ChatRoom, error) {
	if err := s.requireMembership(actor, roomID); err != nil {
		return nil, err
	}
	return s.Storage.GetRoomByID(roomID)
}

// ListMessages returns the room's messages in append order. The sequence is
// never reordered and soft-deleted slots are preserved.
func (s *Service) ListMessages(actor models.Identity, roomID string) ([]models.Message, error) {
	if err := s.requireMembership(actor, roomID); err != nil {
		return nil, err
	}
	return s.Storage.GetMessages(roomID)
}

// SendMessage appends one message and returns the canonical stored record.
// The database-assigned ID is the message's position in the room sequence;
// after commit the event is published for push delivery to connected
// participants (at-least-once — receivers de-duplicate by message ID).
func (s *Service) SendMessage(actor models.Identity, roomID, content, msgType, imageURL string) (*models.Message, error) {
	if err := s.requireMembership(actor, roomID); err != nil {
		return nil, err
	}
	if msgType == "" {
		msgType = models.MessageTypeText
	}
	switch msgType {
	case models.MessageTypeText:
		if content == "" {
			return nil, apperr.Validationf("text message requires content")
		}
	case models.MessageTypeImage:
		if imageURL == "" {
			return nil, apperr.Validationf("image message requires image_url")
		}
		if len(imageURL) > config.MaxImageURLLength {
			return nil, apperr.Validationf("image_url too long")
		}
	default:
		return nil, apperr.Validationf("unknown message type %q", msgType)
	}
	if len(content) > config.MaxMessageLength {
		return nil, apperr.Validationf("message exceeds %d characters", config.MaxMessageLength)
	}

	msg := &models.Message{
		RoomID:   roomID,
		SenderID: actor.ID,
		Content:  content,
		Type:     msgType,
		ImageURL: imageURL,
	}
	if err := s.Storage.SaveMessage(msg); err != nil {
		return nil, err
	}

	// Push delivery is best-effort: the synchronous response above is the
	// canonical record, so a failed publish must not roll back the append.
	if err := s.Storage.PublishEvent(roomID, models.EventFromMessage(msg)); err != nil {
		log.Printf("ERROR: Failed to publish message %d to room %s: %v", msg.ID, roomID, err)
	}

	s.notifyParticipants(actor.ID, roomID, msg.ID)
	return msg, nil
}

// SoftDeleteImage removes the image from a sent message while preserving the
// message's ID and its slot in the sequence. Only the sender may do this and
// only for image messages; text content, if any, is left untouched.
func (s *Service) SoftDeleteImage(actor models.Identity, roomID string, msgID uint) (*models.Message, error) {
	if err := s.requireMembership(actor, roomID); err != nil {
		return nil, err
	}
	msg, err := s.Storage.GetMessageByID(msgID)
	if err != nil {
		return nil, err
	}
	if msg.RoomID != roomID {
		return nil, apperr.ErrNotFound
	}
	if msg.SenderID != actor.ID {
		return nil, fmt.Errorf("%w: only the sender can delete a message", apperr.ErrForbidden)
	}
	if msg.Type != models.MessageTypeImage {
		return nil, apperr.Validationf("only image messages can be soft-deleted")
	}
	if msg.IsDeleted {
		return msg, nil
	}

	msg.ImageURL = ""
	msg.IsDeleted = true
	if err := s.Storage.UpdateMessage(msg); err != nil {
		return nil, err
	}

	if err := s.Storage.PublishEvent(roomID, models.EventFromMessage(msg)); err != nil {
		log.Printf("ERROR: Failed to publish deletion of message %d: %v", msg.ID, err)
	}
	return msg, nil
}

// RequireMembership verifies the actor participates in the room. Used by the
// push endpoints before attaching a client.
func (s *Service) RequireMembership(actor models.Identity, roomID string) error {
	return s.requireMembership(actor, roomID)
}

func (s *Service) requireMembership(actor models.Identity, roomID string) error {
	ok, err := s.Storage.IsParticipant(roomID, actor.ID)
	if err != nil {
		return err
	}
	if !ok {
		// Same answer as a missing room: no existence leak.
		return apperr.ErrNotFound
	}
	return nil
}

func (s *Service) notifyParticipants(senderID uint, roomID string, messageID uint) {
	parts, err := s.Storage.ListParticipants(roomID)
	if err != nil {
		log.Printf("ERROR: Failed to list participants of room %s: %v", roomID, err)
		return
	}
	var others []uint
	for _, p := range parts {
		if p.UserID != senderID {
			others = append(others, p.UserID)
		}
	}
	s.Notify.MessageEvent(others, roomID, messageID)
}
