package storage

import (
	"errors"
	"log"
	"time"

	"pawlink/backend/internal/apperr"
	"pawlink/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NoteAppendExpr appends to admin_notes inside the UPDATE statement itself,
// so a note recorded by a concurrent admin between the caller's read and its
// write is never overwritten.
func NoteAppendExpr(added string) clause.Expr {
	return gorm.Expr(
		"CASE WHEN admin_notes = '' THEN ? ELSE admin_notes || chr(10) || ? END",
		added, added,
	)
}

func (s *Service) CreateRequest(req *models.ChatRequest) error {
	if req.Status == "" {
		req.Status = models.StatusPending
	}
	if err := s.DB.Create(req).Error; err != nil {
		log.Printf("ERROR: Failed to create chat request for pet %d: %v", req.PetID, err)
		return err
	}
	return nil
}

func (s *Service) GetRequestByID(id uint) (*models.ChatRequest, error) {
	var req models.ChatRequest
	err := s.DB.First(&req, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		log.Printf("ERROR: Failed to get chat request %d: %v", id, err)
		return nil, err
	}
	return &req, nil
}

// ListRequests returns requests visible to the user under the given scope:
// "outgoing" (requester), "incoming" (resolved target), or "all" (both).
func (s *Service) ListRequests(userID uint, scope string) ([]models.ChatRequest, error) {
	var reqs []models.ChatRequest
	q := s.DB.Order("created_at desc")
	switch scope {
	case "outgoing":
		q = q.Where("requester_id = ?", userID)
	case "incoming":
		q = q.Where("target_id = ?", userID)
	default:
		q = q.Where("requester_id = ? OR target_id = ?", userID, userID)
	}
	if err := q.Find(&reqs).Error; err != nil {
		log.Printf("ERROR: Failed to list chat requests for user %d: %v", userID, err)
		return nil, err
	}
	return reqs, nil
}

func (s *Service) ListRequestsByStatus(status string) ([]models.ChatRequest, error) {
	var reqs []models.ChatRequest
	if err := s.DB.Where("status = ?", status).Order("created_at asc").Find(&reqs).Error; err != nil {
		log.Printf("ERROR: Failed to list chat requests with status %s: %v", status, err)
		return nil, err
	}
	return reqs, nil
}

// TransitionStatus applies a compare-and-swap status update: the row is only
// touched while its stored status still equals from. A lost race surfaces as
// apperr.ErrConflict so the caller reloads before retrying.
func (s *Service) TransitionStatus(id uint, from string, updates map[string]interface{}) error {
	return s.transition(s.DB, id, from, updates)
}

// TransitionWithRoom performs the CAS status update and the creation of the
// room (with its participants) in a single transaction, so a request never
// points at a room that was not persisted.
func (s *Service) TransitionWithRoom(id uint, from string, updates map[string]interface{}, room *models.ChatRoom, participantIDs []uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.transition(tx, id, from, updates); err != nil {
			return err
		}
		if room.CreatedAt.IsZero() {
			room.CreatedAt = time.Now()
		}
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		for _, uid := range participantIDs {
			if err := addParticipant(tx, room.RoomID, uid); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Service) transition(tx *gorm.DB, id uint, from string, updates map[string]interface{}) error {
	res := tx.Model(&models.ChatRequest{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		log.Printf("ERROR: Failed to transition request %d from %s: %v", id, from, res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the request does not exist or another transition won.
		var count int64
		if err := tx.Model(&models.ChatRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.ErrNotFound
		}
		return apperr.ErrConflict
	}
	return nil
}
