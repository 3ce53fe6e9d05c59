package ws

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Client is one connected UI session, pinned to the garage it authenticated
// for. Events for other garages are never delivered to it.
type Client struct {
	Conn     *websocket.Conn
	GarageID uuid.UUID
}

// Event is a change notification for one table within one garage. The UI
// treats it as a refetch trigger, so a client receiving an event for its own
// write is expected and harmless.
type Event struct {
	GarageID uuid.UUID              `json:"garage_id"`
	Table    string                 `json:"table"`
	Action   string                 `json:"action"`
	Payload  map[string]interface{} `json:"payload,omitempty"`
}

type Hub struct {
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan Event
	mutex      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan Event, 64),
	}
}

// Notify queues a change event without blocking the caller; a full queue
// drops the event (clients refetch on the next one).
func (h *Hub) Notify(ev Event) {
	select {
	case h.Broadcast <- ev:
	default:
		log.WithFields(log.Fields{"table": ev.Table, "action": ev.Action}).
			Warn("ws broadcast queue full, dropping event")
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mutex.Lock()
			h.Clients[client] = true
			h.mutex.Unlock()
			log.WithField("garage_id", client.GarageID).Info("ws client connected")

		case client := <-h.Unregister:
			h.mutex.Lock()
			if _, ok := h.Clients[client]; ok {
				delete(h.Clients, client)
				client.Conn.Close()
			}
			h.mutex.Unlock()

		case ev := <-h.Broadcast:
			msg, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			h.mutex.Lock()
			for client := range h.Clients {
				if client.GarageID != ev.GarageID {
					continue
				}
				if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					client.Conn.Close()
					delete(h.Clients, client)
				}
			}
			h.mutex.Unlock()
		}
	}
}
