package chathub

import "pawlink/backend/internal/models"

// Client is the interface for any type of connected push consumer (SSE,
// WebSocket). It abstracts the underlying transport, allowing the hub to
// manage different client types uniformly. One user may hold several
// connections, so clients are keyed by connection ID, not user ID.
type Client interface {
	// GetConnID returns the unique identifier of this connection.
	GetConnID() string
	// GetUserID returns the user behind the connection.
	GetUserID() uint
	// GetRoomID returns the room this connection is subscribed to.
	GetRoomID() string

	// GetSendChannel returns the channel through which the hub delivers
	// events to this connection. It is a send-only channel.
	GetSendChannel() chan<- models.RoomEvent

	// Run starts the transport's pumps, if any.
	Run()
	// Close shuts down the connection and its channels. Safe to call twice.
	Close()
}
