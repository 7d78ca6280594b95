package handler

import (
	"net/http"
	"strconv"

	"pawlink/backend/internal/api/middleware"
	"pawlink/backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

type createChatRequest struct {
	Type    string `json:"type" binding:"required"`
	PetID   uint   `json:"pet_reference" binding:"required"`
	Message string `json:"message"`
}

type respondRequest struct {
	Approve *bool `json:"approve" binding:"required"`
}

// CreateChatRequest opens a new pending chat request.
func (h *Handler) CreateChatRequest(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.MustIdentity(c)
	created, err := h.Flow.Create(actor, req.Type, req.PetID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListChatRequests returns the actor's requests filtered by
// ?scope=incoming|outgoing|all (default all).
func (h *Handler) ListChatRequests(c *gin.Context) {
	scope := c.DefaultQuery("scope", "all")
	switch scope {
	case "incoming", "outgoing", "all":
	default:
		respondError(c, apperr.Validationf("unknown scope %q", scope))
		return
	}

	actor := middleware.MustIdentity(c)
	reqs, err := h.Storage.ListRequests(actor.ID, scope)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

// RespondChatRequest is the target's accept/reject at admin_approved.
func (h *Handler) RespondChatRequest(c *gin.Context) {
	id, err := requestID(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actor := middleware.MustIdentity(c)
	updated, err := h.Flow.Respond(actor, id, *req.Approve)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func requestID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperr.Validationf("invalid request id")
	}
	return uint(id), nil
}
