package storage

import (
	"context"
	"errors"
	"log"

	"pawlink/backend/internal/apperr"
	"pawlink/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Storage interface {
	// Users
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	ListModerators() ([]models.User, error)

	// Pets
	SavePet(pet *models.Pet) error
	GetPetByID(id uint) (*models.Pet, error)
	ListPets(status string) ([]models.Pet, error)

	// Chat requests
	CreateRequest(req *models.ChatRequest) error
	GetRequestByID(id uint) (*models.ChatRequest, error)
	ListRequests(userID uint, scope string) ([]models.ChatRequest, error)
	ListRequestsByStatus(status string) ([]models.ChatRequest, error)
	TransitionStatus(id uint, from string, updates map[string]interface{}) error
	TransitionWithRoom(id uint, from string, updates map[string]interface{}, room *models.ChatRoom, participantIDs []uint) error

	// Rooms
	GetRoomByID(roomID string) (*models.ChatRoom, error)
	ListRoomsForUser(userID uint) ([]models.ChatRoom, error)
	ListParticipants(roomID string) ([]models.RoomParticipant, error)
	AddParticipant(roomID string, userID uint) error
	IsParticipant(roomID string, userID uint) (bool, error)

	// Messages
	SaveMessage(msg *models.Message) error
	GetMessages(roomID string) ([]models.Message, error)
	GetMessageByID(id uint) (*models.Message, error)
	UpdateMessage(msg *models.Message) error

	// Notifications
	RecordNotification(n *models.Notification) error
	ListNotifications(userID uint) ([]models.Notification, error)
	MarkNotificationRead(id, userID uint) error

	// Realtime
	PublishEvent(roomID string, ev models.RoomEvent) error
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// --- Users ---

func (s *Service) CreateUser(user *models.User) error {
	err := s.DB.Create(user).Error
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.ErrEmailTaken
	}
	return err
}

func (s *Service) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := s.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) UpdateUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// ListModerators повертає всіх користувачів з роллю admin.
func (s *Service) ListModerators() ([]models.User, error) {
	var mods []models.User
	if err := s.DB.Where("role = ?", models.RoleAdmin).Find(&mods).Error; err != nil {
		log.Printf("ERROR: Failed to list moderators: %v", err)
		return nil, err
	}
	return mods, nil
}

// --- Pets ---

func (s *Service) SavePet(pet *models.Pet) error {
	return s.DB.Save(pet).Error
}

func (s *Service) GetPetByID(id uint) (*models.Pet, error) {
	var pet models.Pet
	err := s.DB.First(&pet, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

func (s *Service) ListPets(status string) ([]models.Pet, error) {
	var pets []models.Pet
	q := s.DB.Order("created_at desc")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&pets).Error; err != nil {
		log.Printf("ERROR: Failed to list pets: %v", err)
		return nil, err
	}
	return pets, nil
}
