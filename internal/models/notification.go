package models

import (
	"time"

	"gorm.io/gorm"
)

// Notification types recorded by the fan-out service.
const (
	NotificationRequestCreated   = "request_created"
	NotificationRequestVerifying = "request_verifying"
	NotificationRequestApproved  = "request_approved"
	NotificationRequestActive    = "request_active"
	NotificationRequestRejected  = "request_rejected"
	NotificationNewMessage       = "new_message"
)

// Notification is one unread entry for one user. EventKey identifies the
// underlying event; the (UserID, EventKey) pair is unique so re-delivery of
// the same event never produces a duplicate entry.
type Notification struct {
	gorm.Model
	UserID     uint       `gorm:"not null;uniqueIndex:idx_user_event" json:"user_id"`
	EventKey   string     `gorm:"type:text;not null;uniqueIndex:idx_user_event" json:"-"`
	Type       string     `gorm:"type:text;not null" json:"type"`
	LinkTarget string     `gorm:"type:text" json:"link_target"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
}
