package models

import (
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	PetStatusLost      = "lost"
	PetStatusFound     = "found"
	PetStatusAdoptable = "adoptable"
)

// Pet is a lost/found/adoption listing. The reporter (finder or owner) is the
// protected party: contact details are never exposed until an admin has
// verified the requester through the chat-request workflow.
type Pet struct {
	gorm.Model
	Name        string         `gorm:"type:text;not null" json:"name"`
	Species     string         `gorm:"type:text;not null" json:"species"`
	Status      string         `gorm:"type:text;not null;index" json:"status"`
	Description string         `gorm:"type:text" json:"description"`
	ReporterID  uint           `gorm:"not null;index" json:"reporter_id"`
	Photos      pq.StringArray `gorm:"type:text[]" json:"photos"`
}

func ValidPetStatus(s string) bool {
	switch s {
	case PetStatusLost, PetStatusFound, PetStatusAdoptable:
		return true
	}
	return false
}
