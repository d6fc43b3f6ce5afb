package websocket

import (
	"context"
	"encoding/json"
	"sync"

	logger "github.com/sirupsen/logrus"
)

// Event types pushed to browsers
const (
	EventOrdersChanged    = "ORDERS_CHANGED"
	EventChecklistChanged = "CHECKLIST_CHANGED"
)

// Event tells connected pages that spreadsheet data changed
type Event struct {
	Type      string `json:"type"`
	Show      string `json:"show,omitempty"`
	Worksheet string `json:"worksheet,omitempty"`
	By        string `json:"by,omitempty"`
}

type outbound struct {
	show string
	data []byte
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients map: client ID -> Client
	clients map[string]*Client

	register   chan *Client
	unregister chan *Client
	broadcast  chan outbound
	done       chan struct{}

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 64),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop and closes every client when ctx ends
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for id, c := range h.clients {
				close(c.send)
				delete(h.clients, id)
			}
			h.mu.Unlock()
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			logger.Debugf("🔌 Client connected: %s (%s)", client.ID, client.Email)

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.send)
				logger.Debugf("📴 Client disconnected: %s", client.ID)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.mu.Lock()
			for id, c := range h.clients {
				if msg.show != "" && c.Show != "" && c.Show != msg.show {
					continue
				}
				select {
				case c.send <- msg.data:
				default:
					// slow consumer
					close(c.send)
					delete(h.clients, id)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast queues ev for every client watching ev.Show. It never blocks;
// events are dropped when the queue is full.
func (h *Hub) Broadcast(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		logger.Errorf("Error marshaling event: %v", err)
		return
	}
	select {
	case h.broadcast <- outbound{show: ev.Show, data: data}:
	default:
		logger.Warnf("⚠️ Broadcast queue full, dropped %s", ev.Type)
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
