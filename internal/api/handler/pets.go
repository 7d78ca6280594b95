package handler

import (
	"net/http"
	"strconv"

	"pawlink/backend/internal/api/middleware"
	"pawlink/backend/internal/apperr"
	"pawlink/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type createPetRequest struct {
	Name        string   `json:"name" binding:"required"`
	Species     string   `json:"species" binding:"required"`
	Status      string   `json:"status" binding:"required"`
	Description string   `json:"description"`
	Photos      []string `json:"photos"`
}

// CreatePet registers a lost/found/adoption listing reported by the actor.
func (h *Handler) CreatePet(c *gin.Context) {
	var req createPetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidPetStatus(req.Status) {
		respondError(c, apperr.Validationf("unknown pet status %q", req.Status))
		return
	}

	actor := middleware.MustIdentity(c)
	pet := &models.Pet{
		Name:        req.Name,
		Species:     req.Species,
		Status:      req.Status,
		Description: req.Description,
		ReporterID:  actor.ID,
		Photos:      pq.StringArray(req.Photos),
	}
	if err := h.Storage.SavePet(pet); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pet)
}

// ListPets returns listings, optionally filtered by ?status=.
func (h *Handler) ListPets(c *gin.Context) {
	status := c.Query("status")
	if status != "" && !models.ValidPetStatus(status) {
		respondError(c, apperr.Validationf("unknown pet status %q", status))
		return
	}
	pets, err := h.Storage.ListPets(status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pets)
}

// GetPet returns one listing.
func (h *Handler) GetPet(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, apperr.Validationf("invalid pet id"))
		return
	}
	pet, err := h.Storage.GetPetByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pet)
}
