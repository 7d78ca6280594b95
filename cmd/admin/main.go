package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"pawlink/backend/internal/chatflow"
	"pawlink/backend/internal/models"
	"pawlink/backend/internal/notify"
	"pawlink/backend/internal/storage"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI
	flow := chatflow.NewService(storageSvc, notify.NewService(storageSvc))

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "promote":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin promote <user_id>")
			os.Exit(1)
		}
		userID := parseID(os.Args[2], "user")
		if err := promoteUser(storageSvc, userID); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %d is now a moderator.\n", userID)
	case "list-pending":
		reqs, err := storageSvc.ListRequestsByStatus(models.StatusPending)
		if err != nil {
			log.Fatalf("Error listing pending requests: %v", err)
		}
		for _, r := range reqs {
			fmt.Printf("#%d\t%s\tpet=%d\trequester=%d\t%s\n",
				r.ID, r.Type, r.PetID, r.RequesterID, r.CreatedAt.Format("2006-01-02 15:04"))
		}
		fmt.Printf("%d pending request(s).\n", len(reqs))
	case "reject":
		if len(os.Args) < 4 {
			fmt.Println("Usage: admin reject <request_id> <notes...>")
			os.Exit(1)
		}
		requestID := parseID(os.Args[2], "request")
		notes := strings.Join(os.Args[3:], " ")
		actor := models.Identity{ID: 0, Name: "cli", Role: models.RoleAdmin}
		if _, err := flow.Reject(actor, requestID, notes); err != nil {
			log.Fatalf("Error rejecting request: %v", err)
		}
		fmt.Printf("Request %d has been rejected.\n", requestID)
	default:
		fmt.Println("Unknown command")
		os.Exit(1)
	}
}

func parseID(raw, kind string) uint {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		fmt.Printf("Invalid %s ID. Please provide an integer.\n", kind)
		os.Exit(1)
	}
	return uint(id)
}

func promoteUser(s storage.Storage, userID uint) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}
	user.Role = models.RoleAdmin
	return s.UpdateUser(user)
}
