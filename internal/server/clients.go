package server

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// Client is one connected player. The write pump drains Send until Done is
// closed.
type Client struct {
	ID     uint64
	Player core.Player

	send   chan []byte
	done   chan struct{}
	mu     sync.Mutex
	closed bool
}

// NewClient creates a client with a send buffer of the given size
func NewClient(id uint64, buffer int) *Client {
	return &Client{
		ID:   id,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

// Send returns the outbound frame queue
func (c *Client) Send() <-chan []byte { return c.send }

// Done is closed once the client is closed
func (c *Client) Done() <-chan struct{} { return c.done }

// enqueue queues a frame without blocking. It fails when the client is closed
// or its buffer is full.
func (c *Client) enqueue(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Close stops the client. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.done)
	}
}

// ClientManager tracks the connected clients of the match
type ClientManager struct {
	clients   map[uint64]*Client
	clientsMu sync.RWMutex
	logger    zerolog.Logger
}

// NewClientManager creates a new client manager
func NewClientManager(logger zerolog.Logger) *ClientManager {
	return &ClientManager{
		clients: make(map[uint64]*Client),
		logger:  logger.With().Str("component", "ClientManager").Logger(),
	}
}

// Register adds a client
func (cm *ClientManager) Register(client *Client) {
	cm.clientsMu.Lock()
	defer cm.clientsMu.Unlock()

	cm.clients[client.ID] = client

	cm.logger.Debug().
		Uint64("client_id", client.ID).
		Str("player", client.Player.String()).
		Int("total_clients", len(cm.clients)).
		Msg("Client registered")
}

// Unregister removes and closes a client
func (cm *ClientManager) Unregister(clientID uint64) {
	cm.clientsMu.Lock()
	defer cm.clientsMu.Unlock()

	if client, exists := cm.clients[clientID]; exists {
		client.Close()
		delete(cm.clients, clientID)

		cm.logger.Debug().
			Uint64("client_id", clientID).
			Int("remaining_clients", len(cm.clients)).
			Msg("Client unregistered")
	}
}

// SendTo queues a frame for one client. It reports false when the client is
// unknown, closed or cannot keep up.
func (cm *ClientManager) SendTo(clientID uint64, frame []byte) bool {
	cm.clientsMu.RLock()
	client, exists := cm.clients[clientID]
	cm.clientsMu.RUnlock()

	if !exists {
		return false
	}
	return client.enqueue(frame)
}

// Broadcast queues a frame for every client and returns the ids of the
// clients that could not take it
func (cm *ClientManager) Broadcast(frame []byte) []uint64 {
	cm.clientsMu.RLock()
	defer cm.clientsMu.RUnlock()

	var slow []uint64
	for id, client := range cm.clients {
		if !client.enqueue(frame) {
			slow = append(slow, id)
		}
	}
	return slow
}

// Count returns the number of connected clients
func (cm *ClientManager) Count() int {
	cm.clientsMu.RLock()
	defer cm.clientsMu.RUnlock()
	return len(cm.clients)
}

// CloseAll closes and forgets every client
func (cm *ClientManager) CloseAll() {
	cm.clientsMu.Lock()
	defer cm.clientsMu.Unlock()

	for id, client := range cm.clients {
		client.Close()
		delete(cm.clients, id)
	}
}
