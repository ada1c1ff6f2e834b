package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// TopicAdmin receives every event
const TopicAdmin = "admin"

// StudentTopic is the topic of events concerning one student
func StudentTopic(studentID string) string {
	return "student:" + studentID
}

// Event is a state change pushed to connected clients
type Event struct {
	// Type of change, e.g. "student.assigned", "gatepass.decided"
	Type string `json:"type"`

	// Topics the event is delivered to; not sent over the wire
	Topics []string `json:"-"`

	// Data is the entity affected by the change
	Data interface{} `json:"data,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// Hub maintains the set of active clients and fans events out to them
type Hub struct {
	// Registered clients organized by topic
	clients map[string]map[*Client]bool

	// Channel of events to deliver
	broadcast chan *Event

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Closed when Run returns
	done chan struct{}

	// Mutex for concurrent access to clients map
	mu sync.RWMutex

	// Logger for Hub operations
	logger zerolog.Logger
}

// NewHub creates a new Hub instance
func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		broadcast:  make(chan *Event, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		clients:    make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

// Run handles registrations and deliveries until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case event := <-h.broadcast:
			h.deliver(event)
		}
	}
}

// add hands a client to the running hub; it reports false once the hub stopped
func (h *Hub) add(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// remove hands a disconnected client back to the hub
func (h *Hub) remove(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// registerClient registers a new client to the hub
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.topic]; !ok {
		h.clients[client.topic] = make(map[*Client]bool)
	}
	h.clients[client.topic][client] = true

	h.logger.Info().
		Str("topic", client.topic).
		Str("subject", client.subject).
		Msg("Client registered")
}

// unregisterClient unregisters a client from the hub
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(client)
}

func (h *Hub) removeLocked(client *Client) {
	clients, ok := h.clients[client.topic]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)

	// If no more clients on this topic, clean up
	if len(clients) == 0 {
		delete(h.clients, client.topic)
	}

	h.logger.Info().
		Str("topic", client.topic).
		Str("subject", client.subject).
		Msg("Client unregistered")
}

// deliver sends an event to every client subscribed to one of its topics
func (h *Hub) deliver(event *Event) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error().Err(err).Str("type", event.Type).Msg("Failed to marshal event")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for _, topic := range event.Topics {
		for client := range h.clients[topic] {
			select {
			case client.send <- data:
				delivered++
			default:
				// Client's send buffer is full; drop it
				h.removeLocked(client)
			}
		}
	}

	h.logger.Debug().
		Str("type", event.Type).
		Strs("topics", event.Topics).
		Int("clientCount", delivered).
		Msg("Event delivered")
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, clients := range h.clients {
		for client := range clients {
			h.removeLocked(client)
		}
	}
}

// Publish queues an event for delivery. It never blocks; when the queue is
// full the event is dropped and logged.
func (h *Hub) Publish(event Event) {
	if len(event.Topics) == 0 {
		event.Topics = []string{TopicAdmin}
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case h.broadcast <- &event:
	default:
		h.logger.Warn().Str("type", event.Type).Msg("Event queue full, dropping event")
	}
}

// GetClientsCount returns the number of connected clients for a topic
func (h *Hub) GetClientsCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[topic])
}
