package chathub

import (
	"sync"

	"pawlink/backend/internal/config"
	"pawlink/backend/internal/models"

	"github.com/google/uuid"
)

// SSEClient реалізує інтерфейс chathub.Client для server-sent events.
// The transport is write-only: the HTTP handler drains Send and streams each
// event to the response, so Run has nothing to start.
type SSEClient struct {
	ConnID string
	UserID uint
	RoomID string
	Send   chan models.RoomEvent

	closeOnce sync.Once
}

// NewSSEClient builds a client for one event-stream connection.
func NewSSEClient(userID uint, roomID string) *SSEClient {
	return &SSEClient{
		ConnID: uuid.New().String(),
		UserID: userID,
		RoomID: roomID,
		Send:   make(chan models.RoomEvent, config.ClientSendBuffer),
	}
}

func (c *SSEClient) GetConnID() string                       { return c.ConnID }
func (c *SSEClient) GetUserID() uint                         { return c.UserID }
func (c *SSEClient) GetRoomID() string                       { return c.RoomID }
func (c *SSEClient) GetSendChannel() chan<- models.RoomEvent { return c.Send }

// Run is a no-op: the HTTP handler owns the write loop.
func (c *SSEClient) Run() {}

// Close closes the Send channel, which ends the handler's stream loop.
func (c *SSEClient) Close() {
	c.closeOnce.Do(func() { close(c.Send) })
}
