package models

import "time"

const (
	// RoomPurposeVerification rooms hold the admin and the requester while the
	// requester's identity is being checked.
	RoomPurposeVerification = "verification"
	// RoomPurposeFinal rooms connect the requester with the protected party
	// after the target has accepted.
	RoomPurposeFinal = "final"
)

// ChatRoom is a persistent message thread. Rooms are created only by the room
// manager in response to chat-request transitions, never by direct user action.
type ChatRoom struct {
	// RoomID is a UUID string, referenced from URLs and from the owning
	// ChatRequest's verification/final room slots.
	RoomID    string    `gorm:"primaryKey" json:"room_id"`
	Purpose   string    `gorm:"type:text;not null" json:"purpose"`
	RequestID uint      `gorm:"not null;index" json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RoomParticipant links a user into a room. The (room, user) pair is unique;
// adding an existing participant is a no-op.
type RoomParticipant struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	RoomID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_room_user" json:"room_id"`
	UserID   uint      `gorm:"not null;uniqueIndex:idx_room_user" json:"user_id"`
	JoinedAt time.Time `json:"joined_at"`
}
