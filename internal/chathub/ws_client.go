package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"pawlink/backend/internal/config"
	"pawlink/backend/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// WebSocketClient реалізує інтерфейс chathub.Client. The socket is a push
// transport only: message writes go through the REST endpoint, so the read
// pump exists solely to notice a closed connection.
type WebSocketClient struct {
	ConnID string
	UserID uint
	RoomID string
	Conn   *websocket.Conn
	Hub    *ManagerService
	Send   chan models.RoomEvent

	closeOnce sync.Once
}

// NewWebSocketClient wraps an upgraded connection for one room subscription.
func NewWebSocketClient(hub *ManagerService, conn *websocket.Conn, userID uint, roomID string) *WebSocketClient {
	return &WebSocketClient{
		ConnID: uuid.New().String(),
		UserID: userID,
		RoomID: roomID,
		Conn:   conn,
		Hub:    hub,
		Send:   make(chan models.RoomEvent, config.ClientSendBuffer),
	}
}

func (c *WebSocketClient) GetConnID() string                       { return c.ConnID }
func (c *WebSocketClient) GetUserID() uint                         { return c.UserID }
func (c *WebSocketClient) GetRoomID() string                       { return c.RoomID }
func (c *WebSocketClient) GetSendChannel() chan<- models.RoomEvent { return c.Send }

// Run запускає 'pumps' для WebSocket.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close закриває Send канал (що зупинить writePump).
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() { close(c.Send) })
}

// readPump discards inbound frames and unregisters the client when the peer
// goes away.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Hub.UnregisterCh <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(config.WSMaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(config.WSPongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(config.WSPongWait))
		return nil
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}
	}
}

// writePump читає події з каналу Send і записує їх у WebSocket.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(config.WSPingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(config.WSWriteWait))
			if !ok {
				// Канал закрито хабом, закриваємо з'єднання WS.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(ev)
			if err != nil {
				log.Printf("Error encoding JSON for client %s: %v", c.ConnID, err)
				continue
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			// Ping для підтримки з'єднання активним.
			c.Conn.SetWriteDeadline(time.Now().Add(config.WSWriteWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
