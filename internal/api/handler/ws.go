package handler

import (
	"net/http"

	"pawlink/backend/internal/api/middleware"
	"pawlink/backend/internal/chathub"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Дозволяє з'єднання з будь-якого домену. У продакшені налаштувати!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the connection and attaches it to the hub as an
// alternative push transport for one room (?room=<id>). Message writes still
// go through the REST endpoint.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	actor := middleware.MustIdentity(c)
	roomID := c.Query("room")
	if err := h.Rooms.RequireMembership(actor, roomID); err != nil {
		respondError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade connection"})
		return
	}

	client := chathub.NewWebSocketClient(h.Hub, conn, actor.ID, roomID)
	h.Hub.RegisterCh <- client
	client.Run()
}
