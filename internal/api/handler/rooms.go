package handler

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"pawlink/backend/internal/api/middleware"
	"pawlink/backend/internal/apperr"
	"pawlink/backend/internal/chathub"
	"pawlink/backend/internal/config"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	Content  string `json:"content"`
	Type     string `json:"message_type"`
	ImageURL string `json:"image"`
}

// ListRooms returns the rooms the actor participates in.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.Rooms.ListRooms(middleware.MustIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom returns one room the actor belongs to.
func (h *Handler) GetRoom(c *gin.Context) {
	room, err := h.Rooms.GetRoom(middleware.MustIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

// ListMessages returns the room's ordered message sequence.
func (h *Handler) ListMessages(c *gin.Context) {
	msgs, err := h.Rooms.ListMessages(middleware.MustIdentity(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// SendMessage appends one message; the response body is the canonical stored
// record, including the server-assigned id.
func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	msg, err := h.Rooms.SendMessage(middleware.MustIdentity(c), c.Param("id"), req.Content, req.Type, req.ImageURL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// DeleteMessage soft-deletes an image message sent by the actor.
func (h *Handler) DeleteMessage(c *gin.Context) {
	msgID, err := strconv.ParseUint(c.Param("msgID"), 10, 32)
	if err != nil {
		respondError(c, apperr.Validationf("invalid message id"))
		return
	}

	msg, err := h.Rooms.SoftDeleteImage(middleware.MustIdentity(c), c.Param("id"), uint(msgID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// StreamRoomEvents is the SSE push channel: it registers a hub client for the
// room and streams newly appended messages until the consumer disconnects.
func (h *Handler) StreamRoomEvents(c *gin.Context) {
	actor := middleware.MustIdentity(c)
	roomID := c.Param("id")
	if err := h.Rooms.RequireMembership(actor, roomID); err != nil {
		respondError(c, err)
		return
	}

	client := chathub.NewSSEClient(actor.ID, roomID)
	h.Hub.RegisterCh <- client
	defer func() {
		h.Hub.UnregisterCh <- client
	}()

	keepAlive := time.NewTicker(config.SSEKeepAliveInterval)
	defer keepAlive.Stop()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-client.Send:
			if !ok {
				return false
			}
			c.SSEvent("message", ev)
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
