package main

import (
	"context"
	"log"
	"net/http"

	"pawlink/backend/internal/api/handler"
	"pawlink/backend/internal/api/middleware"
	"pawlink/backend/internal/chatflow"
	"pawlink/backend/internal/chathub"
	"pawlink/backend/internal/chatroom"
	"pawlink/backend/internal/config"
	"pawlink/backend/internal/models"
	"pawlink/backend/internal/notify"
	"pawlink/backend/internal/storage"
	"pawlink/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies(cfg *config.Config) (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Міграції
	err = db.AutoMigrate(
		&models.User{},
		&models.Pet{},
		&models.ChatRequest{},
		&models.ChatRoom{},
		&models.RoomParticipant{},
		&models.Message{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting PawLink Backend...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 1. Ініціалізація залежностей
	db, rdb := setupDependencies(cfg)
	s := storage.NewStorageService(db, rdb)

	// 2. Сервіси
	notifySvc := notify.NewService(s)
	flow := chatflow.NewService(s, notifySvc)
	rooms := chatroom.NewService(s, notifySvc)

	if cfg.Telegram.BotToken != "" {
		alerter, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.ModeratorChatID)
		if err != nil {
			log.Printf("Warning: Telegram alerts disabled: %v", err)
		} else {
			flow.Alerter = alerter
		}
	}

	// 3. Chat Hub та Redis Pub/Sub
	hub := chathub.NewManagerService()
	go hub.Run()
	hub.StartPubSubListener(s.SubscribeRoomEvents())

	// 4. Налаштування Gin та роутингу
	r := gin.Default()
	h := handler.NewHandler(s, flow, rooms, hub, cfg)

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)

	auth := r.Group("/", middleware.Auth(cfg.JWT.Secret))
	{
		auth.POST("/pets", h.CreatePet)
		auth.GET("/pets", h.ListPets)
		auth.GET("/pets/:id", h.GetPet)

		auth.POST("/chat-requests", h.CreateChatRequest)
		auth.GET("/chat-requests", h.ListChatRequests)
		auth.POST("/chat-requests/:id/respond", h.RespondChatRequest)

		auth.GET("/rooms", h.ListRooms)
		auth.GET("/rooms/:id", h.GetRoom)
		auth.GET("/rooms/:id/messages", h.ListMessages)
		auth.POST("/rooms/:id/messages", h.SendMessage)
		auth.DELETE("/rooms/:id/messages/:msgID", h.DeleteMessage)
		auth.GET("/rooms/:id/events", h.StreamRoomEvents)
		auth.GET("/ws", h.ServeWebSocket)

		auth.GET("/notifications", h.ListNotifications)
		auth.POST("/notifications/:id/read", h.MarkNotificationRead)

		admin := auth.Group("/admin", middleware.AdminRequired())
		{
			admin.GET("/chat-requests", h.AdminListRequests)
			admin.POST("/chat-requests/:id/start-verification", h.AdminStartVerification)
			admin.POST("/chat-requests/:id/complete-verification", h.AdminCompleteVerification)
			admin.PATCH("/chat-requests/:id/reject", h.AdminRejectRequest)
		}
	}

	// 5. Запуск HTTP-сервера
	server := &http.Server{
		Addr:           cfg.Server.Addr,
		Handler:        r,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
