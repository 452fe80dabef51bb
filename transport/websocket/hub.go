package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

// Hub keeps the open connections and delivers notifications to them.
type Hub struct {
	logger *slog.Logger

	mu          sync.RWMutex
	connections map[string]*connection
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger.With("component", "hub"),
		connections: make(map[string]*connection),
	}
}

// Dispatch queues every notification on its recipients' connections. It never blocks: a message
// for a connection whose queue is full is dropped.
func (that *Hub) Dispatch(notifications []usecase.Notification) {
	log := that.logger.With("method", "Dispatch")

	for _, notification := range notifications {
		data, err := encodeNotification(notification)
		if err != nil {
			log.Error("failed to encode notification", "event", notification.Event, "error", err)
			continue
		}

		for _, recipient := range notification.Recipients {
			conn, ok := that.get(recipient)
			if !ok {
				log.Debug("recipient is gone", "connectionID", recipient, "event", notification.Event)
				continue
			}

			if !conn.enqueue(data) {
				log.Warn("send queue is full, message dropped", "connectionID", recipient, "event", notification.Event)
			}
		}
	}
}

func (that *Hub) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.connections)
}

// CloseAll closes every connection's queue; their writers then send a close frame.
func (that *Hub) CloseAll() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id, conn := range that.connections {
		conn.closeQueue()
		delete(that.connections, id)
	}
}

func (that *Hub) register(conn *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.connections[conn.id] = conn
}

func (that *Hub) unregister(conn *connection) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if current, ok := that.connections[conn.id]; ok && current == conn {
		delete(that.connections, conn.id)
	}

	conn.closeQueue()
}

func (that *Hub) get(id string) (*connection, bool) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	conn, ok := that.connections[id]

	return conn, ok
}
