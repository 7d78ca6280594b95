package chathub

import (
	"encoding/json"
	"log"

	"pawlink/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// StartPubSubListener запускає Goroutine, яка слухає Redis Pub/Sub і передає
// події кімнат у головний цикл хаба.
func (m *ManagerService) StartPubSubListener(pubsub *redis.PubSub) {
	go func() {
		defer pubsub.Close()

		for msg := range pubsub.Channel() {
			var ev models.RoomEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Printf("Error unmarshalling Redis message: %v", err)
				continue
			}
			m.PubSubCh <- ev
		}
	}()
}
