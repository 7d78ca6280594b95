// Package chatflow owns the chat-request state machine. The only forward path
// is pending -> admin_verifying -> admin_approved -> active; rejected is a
// terminal state reachable from any non-terminal one. Every transition is a
// compare-and-swap against the stored status, so two racing actors cannot both
// win: the loser gets a conflict error and must reload.
package chatflow

import (
	"errors"
	"fmt"
	"log"

	"pawlink/backend/internal/apperr"
	"pawlink/backend/internal/models"
	"pawlink/backend/internal/notify"
	"pawlink/backend/internal/storage"

	"github.com/google/uuid"
)

// Alerter pushes out-of-band moderator alerts. Implementations must not block.
type Alerter interface {
	NewRequestAlert(req *models.ChatRequest, pet *models.Pet)
}

// Service handles the business logic for chat requests.
type Service struct {
	Storage storage.Storage
	Notify  *notify.Service
	Alerter Alerter // optional
}

// NewService creates a new chatflow service.
func NewService(s storage.Storage, n *notify.Service) *Service {
	return &Service{Storage: s, Notify: n}
}

// Create opens a new request in the pending state. Guards: the pet must exist,
// the request type must be valid, and the actor cannot request contact about
// their own listing.
func (s *Service) Create(actor models.Identity, reqType string, petID uint, message string) (*models.ChatRequest, error) {
	if !models.ValidRequestType(reqType) {
		return nil, apperr.Validationf("unknown request type %q", reqType)
	}
	pet, err := s.Storage.GetPetByID(petID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validationf("pet %d does not exist", petID)
		}
		return nil, err
	}
	if pet.ReporterID == actor.ID {
		return nil, fmt.Errorf("%w: cannot open a request about your own listing", apperr.ErrForbidden)
	}

	req := &models.ChatRequest{
		Type:        reqType,
		RequesterID: actor.ID,
		PetID:       petID,
		Status:      models.StatusPending,
		Message:     message,
	}
	if err := s.Storage.CreateRequest(req); err != nil {
		return nil, err
	}

	s.Notify.RequestEvent([]uint{actor.ID}, models.NotificationRequestCreated, req.ID)
	s.notifyModerators(req)
	if s.Alerter != nil {
		s.Alerter.NewRequestAlert(req, pet)
	}
	return req, nil
}

// StartVerification moves pending -> admin_verifying and opens the
// verification room holding the admin and the requester. Calling it again for
// a request already under verification returns the existing room instead of
// creating a second one.
func (s *Service) StartVerification(actor models.Identity, id uint) (*models.ChatRequest, error) {
	if !actor.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	req, err := s.Storage.GetRequestByID(id)
	if err != nil {
		return nil, err
	}
	if req.Status == models.StatusAdminVerifying && req.VerificationRoomID != nil {
		// Інший адмін міг уже відкрити кімнату; актор приєднується до неї.
		if err := s.Storage.AddParticipant(*req.VerificationRoomID, actor.ID); err != nil {
			return nil, err
		}
		return req, nil
	}
	if req.Status != models.StatusPending {
		return nil, fmt.Errorf("%w: cannot start verification from %s", apperr.ErrIllegalTransition, req.Status)
	}

	roomID := uuid.New().String()
	room := &models.ChatRoom{
		RoomID:    roomID,
		Purpose:   models.RoomPurposeVerification,
		RequestID: req.ID,
	}
	err = s.Storage.TransitionWithRoom(id, models.StatusPending, map[string]interface{}{
		"status":               models.StatusAdminVerifying,
		"verification_room_id": roomID,
	}, room, []uint{actor.ID, req.RequesterID})
	if err != nil {
		return nil, err
	}

	s.Notify.RequestEvent([]uint{req.RequesterID}, models.NotificationRequestVerifying, req.ID)
	return s.Storage.GetRequestByID(id)
}

// CompleteVerification moves admin_verifying -> admin_approved. The target
// identity is resolved in strict order: the explicit targetUserID argument,
// then the request's stored target, then the "Target user ID: N" pattern in
// the accumulated admin notes. The notes fallback is a documented workaround
// for admins who recorded the target in free text; when nothing resolves the
// transition fails with a validation error and the status is left unchanged.
func (s *Service) CompleteVerification(actor models.Identity, id uint, targetUserID uint, notes string) (*models.ChatRequest, error) {
	if !actor.IsAdmin() {
		return nil, apperr.ErrForbidden
	}
	req, err := s.Storage.GetRequestByID(id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusAdminVerifying {
		return nil, fmt.Errorf("%w: cannot complete verification from %s", apperr.ErrIllegalTransition, req.Status)
	}

	accumulated := appendNotes(req.AdminNotes, notes)

	var resolved uint
	switch {
	case targetUserID != 0:
		resolved = targetUserID
	case req.TargetID != nil && *req.TargetID != 0:
		resolved = *req.TargetID
	default:
		fromNotes, ok := ParseTargetFromNotes(accumulated)
		if !ok {
			return nil, apperr.ErrMissingTarget
		}
		resolved = fromNotes
	}

	if _, err := s.Storage.GetUserByID(resolved); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Validationf("target user %d does not exist", resolved)
		}
		return nil, err
	}
	if resolved == req.RequesterID {
		return nil, apperr.Validationf("requester cannot be their own target")
	}

	updates := map[string]interface{}{
		"status":    models.StatusAdminApproved,
		"target_id": resolved,
	}
	if notes != "" {
		updates["admin_notes"] = storage.NoteAppendExpr(notes)
	}
	err = s.Storage.TransitionStatus(id, models.StatusAdminVerifying, updates)
	if err != nil {
		return nil, err
	}

	s.Notify.RequestEvent([]uint{req.RequesterID, resolved}, models.NotificationRequestApproved, req.ID)
	return s.Storage.GetRequestByID(id)
}

// Reject moves any non-terminal request to the terminal rejected state. Admins
// may reject at any non-terminal stage; the resolved target may reject only
// while the request is admin_approved.
func (s *Service) Reject(actor models.Identity, id uint, notes string) (*models.ChatRequest, error) {
	req, err := s.Storage.GetRequestByID(id)
	if err != nil {
		return nil, err
	}
	if req.Terminal() {
		return nil, fmt.Errorf("%w: request is already %s", apperr.ErrIllegalTransition, req.Status)
	}

	isTarget := req.TargetID != nil && *req.TargetID == actor.ID
	switch {
	case actor.IsAdmin():
	case isTarget && req.Status == models.StatusAdminApproved:
	default:
		return nil, apperr.ErrForbidden
	}

	updates := map[string]interface{}{"status": models.StatusRejected}
	if notes != "" {
		updates["admin_notes"] = storage.NoteAppendExpr(notes)
	}
	err = s.Storage.TransitionStatus(id, req.Status, updates)
	if err != nil {
		return nil, err
	}

	affected := []uint{req.RequesterID}
	if req.TargetID != nil {
		affected = append(affected, *req.TargetID)
	}
	s.Notify.RequestEvent(affected, models.NotificationRequestRejected, req.ID)
	return s.Storage.GetRequestByID(id)
}

// Respond is the target's accept/reject at admin_approved. Accepting creates
// the final room holding the requester and the target; the admin is dropped
// at handoff and is not a member of the final room.
func (s *Service) Respond(actor models.Identity, id uint, approve bool) (*models.ChatRequest, error) {
	req, err := s.Storage.GetRequestByID(id)
	if err != nil {
		return nil, err
	}
	if req.Status != models.StatusAdminApproved {
		return nil, fmt.Errorf("%w: cannot respond while request is %s", apperr.ErrIllegalTransition, req.Status)
	}
	if req.TargetID == nil || *req.TargetID != actor.ID {
		return nil, apperr.ErrForbidden
	}

	if !approve {
		return s.Reject(actor, id, "")
	}

	roomID := uuid.New().String()
	room := &models.ChatRoom{
		RoomID:    roomID,
		Purpose:   models.RoomPurposeFinal,
		RequestID: req.ID,
	}
	err = s.Storage.TransitionWithRoom(id, models.StatusAdminApproved, map[string]interface{}{
		"status":        models.StatusActive,
		"final_room_id": roomID,
	}, room, []uint{req.RequesterID, *req.TargetID})
	if err != nil {
		return nil, err
	}

	s.Notify.RequestEvent([]uint{req.RequesterID, *req.TargetID}, models.NotificationRequestActive, req.ID)
	return s.Storage.GetRequestByID(id)
}

func (s *Service) notifyModerators(req *models.ChatRequest) {
	mods, err := s.Storage.ListModerators()
	if err != nil {
		log.Printf("ERROR: Failed to list moderators for request %d: %v", req.ID, err)
		return
	}
	ids := make([]uint, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	s.Notify.RequestEvent(ids, models.NotificationRequestCreated, req.ID)
}

// appendNotes merges freshly supplied notes onto the stored ones for the
// read-side target lookup; the store itself appends via NoteAppendExpr.
func appendNotes(existing, added string) string {
	if added == "" {
		return existing
	}
	if existing == "" {
		return added
	}
	return existing + "\n" + added
}
