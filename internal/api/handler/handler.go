package handler

import (
	"pawlink/backend/internal/apperr"
	"pawlink/backend/internal/chatflow"
	"pawlink/backend/internal/chathub"
	"pawlink/backend/internal/chatroom"
	"pawlink/backend/internal/config"
	"pawlink/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	Storage storage.Storage
	Flow    *chatflow.Service
	Rooms   *chatroom.Service
	Hub     *chathub.ManagerService
	Cfg     *config.Config
}

func NewHandler(s storage.Storage, flow *chatflow.Service, rooms *chatroom.Service, hub *chathub.ManagerService, cfg *config.Config) *Handler {
	return &Handler{Storage: s, Flow: flow, Rooms: rooms, Hub: hub, Cfg: cfg}
}

// respondError maps a service error to the HTTP status plus {"error": ...}
// body contract.
func respondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), gin.H{"error": err.Error()})
}
