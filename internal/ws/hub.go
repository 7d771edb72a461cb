package ws

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
)

type directMessage struct {
	userID  uuid.UUID
	message []byte
}

// Hub fans messages out to connected clients. All membership changes go
// through Run so the client set has a single writer.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	direct     chan directMessage
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, 1024),
		direct:     make(chan directMessage, 256),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.stopOnce.Do(func() { close(h.done) })
			h.mutex.Lock()
			for client := range h.clients {
				delete(h.clients, client)
				client.closeSend()
			}
			h.mutex.Unlock()
			h.drainRegister()
			h.logf("[WS] hub stopped")
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.logf("[WS] connected | user_id=%s total_clients=%d", client.userLabel(), total)

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.remove(client)
			h.logf("[WS] disconnected | user_id=%s total_clients=%d", client.userLabel(), h.ClientCount())

		case message := <-h.broadcast:
			sent := h.deliver(message, func(*Client) bool { return true })
			h.logf("[WS] broadcast | clients=%d", sent)

		case dm := <-h.direct:
			sent := h.deliver(dm.message, func(c *Client) bool { return c.userID == dm.userID })
			if sent > 0 {
				h.logf("[WS] direct | user_id=%s clients=%d", dm.userID, sent)
			}
		}
	}
}

// deliver queues message on every matching client. Clients whose buffer is
// full are dropped.
func (h *Hub) deliver(message []byte, match func(*Client) bool) int {
	h.mutex.RLock()
	snapshot := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if match(c) {
			snapshot = append(snapshot, c)
		}
	}
	h.mutex.RUnlock()

	sent := 0
	for _, client := range snapshot {
		if client.Send(message) {
			sent++
			continue
		}
		h.logf("[WS] slow client dropped | user_id=%s", client.userLabel())
		h.remove(client)
	}
	return sent
}

func (h *Hub) remove(client *Client) {
	h.mutex.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		client.closeSend()
	}
	h.mutex.Unlock()
}

func (h *Hub) drainRegister() {
	for {
		select {
		case client := <-h.register:
			if client != nil {
				client.closeSend()
			}
		default:
			return
		}
	}
}

// Register adds client. After the hub has stopped the client's send
// channel is closed instead.
func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case <-h.done:
		client.closeSend()
		return
	default:
	}
	select {
	case h.register <- client:
	case <-h.done:
		client.closeSend()
	}
}

// Unregister is a no-op once the hub has stopped; Run already closed every
// client on the way out.
func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

func (h *Hub) Broadcast(message []byte) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- message:
	default:
		h.logf("[WS] broadcast dropped | reason=buffer_full")
	}
}

// SendTo queues message for the connections authenticated as userID.
func (h *Hub) SendTo(userID uuid.UUID, message []byte) {
	if h == nil || userID == uuid.Nil {
		return
	}
	select {
	case h.direct <- directMessage{userID: userID, message: message}:
	default:
		h.logf("[WS] direct dropped | user_id=%s reason=buffer_full", userID)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) logf(format string, args ...any) {
	if h != nil && h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
