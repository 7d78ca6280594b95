package models

import "gorm.io/gorm"

const (
	MessageTypeText  = "text"
	MessageTypeImage = "image"
)

// Message is an appended chat message. The embedded gorm.Model provides ID,
// CreatedAt, UpdatedAt, and DeletedAt; the database-assigned ID is the
// canonical delivery order within a room — client timestamps are ignored.
type Message struct {
	gorm.Model
	// RoomID is the identifier of the chat room where the message was sent.
	RoomID string `gorm:"type:uuid;not null;index:idx_room_msg" json:"room_id"`
	// SenderID is the user who sent the message.
	SenderID uint `gorm:"not null;index:idx_room_msg" json:"sender_id"`
	// Content is the text body. Optional for image messages.
	Content string `gorm:"type:text" json:"content"`
	// Type is "text" or "image".
	Type string `gorm:"type:text;not null" json:"type"`
	// ImageURL references the attached image. Cleared on soft delete.
	ImageURL string `gorm:"type:text" json:"image_url,omitempty"`
	// IsDeleted marks a soft-deleted image message. The row keeps its ID and
	// position in the sequence; only the image reference is removed.
	IsDeleted bool `gorm:"not null;default:false" json:"is_deleted"`
}
