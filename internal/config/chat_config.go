package config

import "time"

const (
	// Messages
	MaxMessageLength  = 4000
	MaxImageURLLength = 2048

	// Client push channels
	ClientSendBuffer = 256

	// SSE
	SSEKeepAliveInterval = 25 * time.Second

	// WebSocket
	WSWriteWait      = 10 * time.Second
	WSPongWait       = 60 * time.Second
	WSPingPeriod     = (WSPongWait * 9) / 10
	WSMaxMessageSize = 8192
)
