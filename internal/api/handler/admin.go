package handler

import (
	"net/http"

	"pawlink/backend/internal/api/middleware"
	"pawlink/backend/internal/models"

	"github.com/gin-gonic/gin"
)

type completeVerificationRequest struct {
	TargetUserID uint   `json:"target_user_id"`
	AdminNotes   string `json:"admin_notes"`
}

type rejectRequest struct {
	AdminNotes string `json:"admin_notes" binding:"required"`
}

// AdminListRequests returns requests by ?status= (default pending) for the
// moderation queue.
func (h *Handler) AdminListRequests(c *gin.Context) {
	status := c.DefaultQuery("status", models.StatusPending)
	reqs, err := h.Storage.ListRequestsByStatus(status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// AdminStartVerification moves pending -> admin_verifying and returns the
// request with its verification room id.
func (h *Handler) AdminStartVerification(c *gin.Context) {
	id, err := requestID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	actor := middleware.MustIdentity(c)
	updated, err := h.Flow.StartVerification(actor, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"request":           updated,
		"verification_room": updated.VerificationRoomID,
	})
}

// AdminCompleteVerification moves admin_verifying -> admin_approved, resolving
// the target identity.
func (h *Handler) AdminCompleteVerification(c *gin.Context) {
	id, err := requestID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req completeVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.MustIdentity(c)
	updated, err := h.Flow.CompleteVerification(actor, id, req.TargetUserID, req.AdminNotes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// AdminRejectRequest moves any non-terminal request to rejected.
func (h *Handler) AdminRejectRequest(c *gin.Context) {
	id, err := requestID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.MustIdentity(c)
	updated, err := h.Flow.Reject(actor, id, req.AdminNotes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
