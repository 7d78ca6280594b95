package chathub

import (
	"fmt"
	"log"

	"pawlink/backend/internal/config"
	"pawlink/backend/internal/models"
)

// deliveryLogSize bounds how many event keys each connection's de-dup window
// remembers. Redelivery of the same event only happens within the short
// overlap between the optimistic append and the pub/sub push, so matching the
// send buffer depth is enough; older keys can be forgotten.
const deliveryLogSize = config.ClientSendBuffer

// deliveryLog is a bounded first-in-first-out set of delivered event keys.
type deliveryLog struct {
	seen  map[string]bool
	order []string
}

func newDeliveryLog() *deliveryLog {
	return &deliveryLog{seen: make(map[string]bool)}
}

func (l *deliveryLog) has(key string) bool { return l.seen[key] }

func (l *deliveryLog) remember(key string) {
	if l.seen[key] {
		return
	}
	if len(l.order) >= deliveryLogSize {
		delete(l.seen, l.order[0])
		l.order = l.order[1:]
	}
	l.seen[key] = true
	l.order = append(l.order, key)
}

// ManagerService is the central dispatcher: it tracks connected clients and
// fans room events out to the connections subscribed to each room. Delivery
// from the pub/sub channel is at-least-once, so the hub de-duplicates per
// connection before writing to a transport.
type ManagerService struct {
	Clients map[string]Client

	RegisterCh   chan Client
	UnregisterCh chan Client
	// PubSubCh receives room events fanned in from Redis. Tests inject events
	// here directly.
	PubSubCh chan models.RoomEvent

	// delivered tracks which recent events each connection has already
	// received.
	delivered map[string]*deliveryLog
}

// NewManagerService ініціалізує хаб.
func NewManagerService() *ManagerService {
	return &ManagerService{
		Clients:      make(map[string]Client),
		RegisterCh:   make(chan Client),
		UnregisterCh: make(chan Client),
		PubSubCh:     make(chan models.RoomEvent),
		delivered:    make(map[string]*deliveryLog),
	}
}

// Run is the hub's main loop. All map access happens on this goroutine.
func (m *ManagerService) Run() {
	for {
		select {
		case client := <-m.RegisterCh:
			m.Clients[client.GetConnID()] = client
			m.delivered[client.GetConnID()] = newDeliveryLog()
			log.Printf("Client %s (user %d) joined room %s", client.GetConnID(), client.GetUserID(), client.GetRoomID())

		case client := <-m.UnregisterCh:
			m.remove(client.GetConnID())

		case ev := <-m.PubSubCh:
			m.fanOut(ev)
		}
	}
}

// fanOut delivers an event to every connection subscribed to its room,
// skipping connections that have already seen it.
func (m *ManagerService) fanOut(ev models.RoomEvent) {
	key := deliveryKey(ev)
	for connID, client := range m.Clients {
		if client.GetRoomID() != ev.RoomID {
			continue
		}
		if m.delivered[connID].has(key) {
			continue
		}
		select {
		case client.GetSendChannel() <- ev:
			m.delivered[connID].remember(key)
		default:
			// Slow consumer: drop the connection rather than block the hub.
			// Removing inline — re-sending to UnregisterCh from this
			// goroutine would deadlock.
			log.Printf("Dropping slow client %s (user %d)", connID, client.GetUserID())
			m.remove(connID)
		}
	}
}

func (m *ManagerService) remove(connID string) {
	client, ok := m.Clients[connID]
	if !ok {
		return
	}
	delete(m.Clients, connID)
	delete(m.delivered, connID)
	client.Close()
}

// deliveryKey distinguishes the original append from a later soft-delete of
// the same message, so the delete event is not swallowed by de-duplication.
func deliveryKey(ev models.RoomEvent) string {
	return fmt.Sprintf("%d:%t", ev.MessageID, ev.IsDeleted)
}
