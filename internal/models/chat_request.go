package models

import "gorm.io/gorm"

const (
	RequestTypeClaim    = "claim"
	RequestTypeAdoption = "adoption"
	RequestTypeGeneral  = "general"
)

// ChatRequest statuses. The only forward path is
// pending -> admin_verifying -> admin_approved -> active; rejected is terminal
// and reachable from any non-terminal status.
const (
	StatusPending        = "pending"
	StatusAdminVerifying = "admin_verifying"
	StatusAdminApproved  = "admin_approved"
	StatusActive         = "active"
	StatusRejected       = "rejected"
)

// ChatRequest is a requester's attempt to contact the protected party behind a
// pet listing. Status transitions are owned by chatflow.Service; the storage
// layer applies them as compare-and-swap updates on Status.
type ChatRequest struct {
	gorm.Model
	Type        string `gorm:"type:text;not null" json:"type"`
	RequesterID uint   `gorm:"not null;index" json:"requester_id"`
	Requester   User   `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	// TargetID is nil until the admin resolves the protected party during
	// verification. It must be set before the request can become active.
	TargetID *uint  `gorm:"index" json:"target_id,omitempty"`
	PetID    uint   `gorm:"not null;index" json:"pet_id"`
	Status   string `gorm:"type:text;not null;index" json:"status"`
	// Message is the requester's free-text motivation, shown to the admin.
	Message string `gorm:"type:text" json:"message"`
	// AdminNotes accumulates across transitions; never overwritten.
	AdminNotes         string  `gorm:"type:text" json:"admin_notes"`
	VerificationRoomID *string `gorm:"type:uuid" json:"verification_room_id,omitempty"`
	FinalRoomID        *string `gorm:"type:uuid" json:"final_room_id,omitempty"`
}

// Terminal reports whether no further transitions are permitted.
func (r *ChatRequest) Terminal() bool {
	return r.Status == StatusActive || r.Status == StatusRejected
}

func ValidRequestType(t string) bool {
	switch t {
	case RequestTypeClaim, RequestTypeAdoption, RequestTypeGeneral:
		return true
	}
	return false
}
