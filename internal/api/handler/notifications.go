package handler

import (
	"net/http"
	"strconv"

	"pawlink/backend/internal/api/middleware"
	"pawlink/backend/internal/apperr"

	"github.com/gin-gonic/gin"
)

// ListNotifications returns the actor's notification entries, newest first.
func (h *Handler) ListNotifications(c *gin.Context) {
	actor := middleware.MustIdentity(c)
	items, err := h.Storage.ListNotifications(actor.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// MarkNotificationRead marks one of the actor's notifications as read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperr.Validationf("invalid notification id"))
		return
	}

	actor := middleware.MustIdentity(c)
	if err := h.Storage.MarkNotificationRead(uint(id), actor.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
