package models

import "time"

// RoomEvent is the payload published to Redis pub/sub and pushed to connected
// clients. The same message can reach a client both as the response to its own
// POST and over the push channel; consumers de-duplicate by MessageID.
type RoomEvent struct {
	MessageID uint      `json:"message_id"`
	RoomID    string    `json:"room_id"`
	SenderID  uint      `json:"sender_id"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	ImageURL  string    `json:"image_url,omitempty"`
	IsDeleted bool      `json:"is_deleted,omitempty"`
	SentAt    time.Time `json:"sent_at"`
}

// EventFromMessage builds the push payload for a stored message.
func EventFromMessage(m *Message) RoomEvent {
	return RoomEvent{
		MessageID: m.ID,
		RoomID:    m.RoomID,
		SenderID:  m.SenderID,
		Content:   m.Content,
		Type:      m.Type,
		ImageURL:  m.ImageURL,
		IsDeleted: m.IsDeleted,
		SentAt:    m.CreatedAt,
	}
}
