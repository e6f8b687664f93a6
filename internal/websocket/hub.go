package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"rollcall/internal/infrastructure"
)

// Message type constants
const (
	TypeConnection = "connection"
	TypeProgress   = "progress"
	TypeError      = "error"
	TypeStatus     = "status"
	TypeReportDone = "report:complete"

	// Message levels
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Inbound messages from the clients
	broadcast chan []byte

	// Register requests from the clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for thread-safe operations
	mu sync.RWMutex

	// Logger instance
	logger *slog.Logger

	// Counters
	totalConnections int64
	messagesSent     int64

	// Control
	quit    chan struct{}
	running bool
}

// NewHub creates a new Hub instance with dependency injection
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	logger = logger.With(slog.String("component", "websocket.hub"))

	return &Hub{
		broadcast:  make(chan []byte, 16),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		logger:     logger,
		quit:       make(chan struct{}),
	}
}

// Start starts the hub's main loop
func (h *Hub) Start() {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		return
	}
	h.running = true
	h.mu.Unlock()

	go h.Run()
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case <-h.quit:
			h.logger.Info("Hub shutting down")
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			count := len(h.clients)
			h.totalConnections++
			h.mu.Unlock()

			ctx := context.Background()
			if client.traceID != "" {
				ctx = infrastructure.WithTraceID(ctx, client.traceID)
			}

			h.logger.InfoContext(ctx, "Client registered",
				slog.Int("total_clients", count),
				slog.String("client_id", client.id),
				slog.String("remote_addr", client.remoteAddr))

			// Send connection success message to the newly connected client
			connMsg := map[string]interface{}{
				"type": TypeConnection,
				"data": map[string]interface{}{
					"status":    "connected",
					"message":   "Connected to attendance report service",
					"client_id": client.id,
				},
				"timestamp": time.Now().Format(time.RFC3339),
				"trace_id":  client.traceID,
			}

			jsonData, err := json.Marshal(connMsg)
			if err == nil {
				select {
				case client.send <- jsonData:
				default:
					h.logger.WarnContext(ctx, "Failed to send connection message - client buffer full",
						slog.String("client_id", client.id))
				}
			}

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				count := len(h.clients)
				h.mu.Unlock()

				ctx := context.Background()
				if client.traceID != "" {
					ctx = infrastructure.WithTraceID(ctx, client.traceID)
				}

				h.logger.InfoContext(ctx, "Client unregistered",
					slog.Int("total_clients", count),
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			// Copy clients to avoid holding lock during send
			clients := make([]*Client, 0, len(h.clients))
			for client := range h.clients {
				clients = append(clients, client)
			}
			h.mu.RUnlock()

			failCount := 0
			for _, client := range clients {
				select {
				case client.send <- message:
					h.messagesSent++
				default:
					failCount++
					// Client's send channel is full, close it
					h.mu.Lock()
					close(client.send)
					delete(h.clients, client)
					h.mu.Unlock()

					h.logger.Warn("Client send buffer full, disconnecting",
						slog.String("client_id", client.id))
				}
			}

			if failCount > 0 {
				h.logger.Warn("Some clients failed to receive broadcast",
					slog.Int("fail_count", failCount))
			}
		}
	}
}

// broadcastJSON is a helper method to send JSON messages
func (h *Hub) broadcastJSON(message map[string]interface{}) {
	jsonData, err := json.Marshal(message)
	if err != nil {
		h.logger.Error("Error marshaling message",
			slog.String("error", err.Error()))
		return
	}

	h.broadcast <- jsonData
}

// BroadcastProgress sends a progress update message
func (h *Hub) BroadcastProgress(step string, progress int, message string) {
	h.broadcastJSON(map[string]interface{}{
		"type": TypeProgress,
		"data": map[string]interface{}{
			"step":     step,
			"progress": progress,
			"message":  message,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// BroadcastStatus sends a status update message
func (h *Hub) BroadcastStatus(status, message string) {
	h.broadcastJSON(map[string]interface{}{
		"type": TypeStatus,
		"data": map[string]interface{}{
			"status":  status,
			"message": message,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// BroadcastError sends a structured error message
func (h *Hub) BroadcastError(code, message, step string) {
	h.broadcastJSON(map[string]interface{}{
		"type": TypeError,
		"data": map[string]interface{}{
			"code":    code,
			"message": message,
			"step":    step,
		},
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// BroadcastReportComplete announces a finished report run with its artifacts.
func (h *Hub) BroadcastReportComplete(data interface{}) {
	h.broadcastJSON(map[string]interface{}{
		"type":      TypeReportDone,
		"data":      data,
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stop gracefully stops the hub
func (h *Hub) Stop() {
	h.mu.Lock()
	if !h.running {
		h.mu.Unlock()
		return
	}
	h.running = false
	h.mu.Unlock()

	close(h.quit)

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	h.register <- client
}
