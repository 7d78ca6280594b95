// Package telegram pushes moderator alerts through the Telegram Bot API.
// Alerts are fire-and-forget: a Telegram outage must never affect the chat
// request workflow itself.
package telegram

import (
	"fmt"
	"log"

	"pawlink/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends new-request summaries to the configured moderators' chat.
type Notifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

// NewNotifier authorizes the bot. Returns an error when the token is invalid;
// callers treat an empty token as "alerts disabled" and skip construction.
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Printf("✅ Authorized on account %s", bot.Self.UserName)
	return &Notifier{BotAPI: bot, ChatID: chatID}, nil
}

// NewRequestAlert notifies moderators about a freshly created chat request.
// Sending happens on its own goroutine so the caller never blocks on Telegram.
func (n *Notifier) NewRequestAlert(req *models.ChatRequest, pet *models.Pet) {
	text := fmt.Sprintf(
		"New %s request #%d\nPet: %s (%s, %s)\nRequester: user %d\nAwaiting verification.",
		req.Type, req.ID, pet.Name, pet.Species, pet.Status, req.RequesterID,
	)
	go func() {
		msg := tgbotapi.NewMessage(n.ChatID, text)
		if _, err := n.BotAPI.Send(msg); err != nil {
			log.Printf("ERROR: Failed to send Telegram alert for request %d: %v", req.ID, err)
		}
	}()
}
