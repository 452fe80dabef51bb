package websocket

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type connection struct {
	id     string
	conn   *websocket.Conn
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func newConnection(id string, conn *websocket.Conn, logger *slog.Logger, sendBuffer int) *connection {
	return &connection{
		id:     id,
		conn:   conn,
		logger: logger.With("connectionID", id),
		send:   make(chan []byte, sendBuffer),
	}
}

// enqueue reports false when the queue is full. Messages for a closed connection are discarded.
func (that *connection) enqueue(data []byte) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return true
	}

	select {
	case that.send <- data:
		return true
	default:
		return false
	}
}

func (that *connection) closeQueue() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.closed {
		that.closed = true
		close(that.send)
	}
}

// readPump reads frames until the peer goes away or stops answering pings.
func (that *connection) readPump(options Options, handle func(data []byte)) {
	log := that.logger.With("method", "readPump")

	if err := that.conn.SetReadDeadline(time.Now().Add(options.PongWait)); err != nil {
		log.Error("failed to set read deadline", "error", err)
	}

	that.conn.SetPongHandler(func(string) error {
		return that.conn.SetReadDeadline(time.Now().Add(options.PongWait))
	})

	for {
		messageType, data, err := that.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			log.Debug("ignoring non-text frame", "type", messageType)
			continue
		}

		handle(data)
	}
}

// writePump drains the send queue and pings the peer. It returns once the queue is closed or a
// write fails.
func (that *connection) writePump(options Options) {
	log := that.logger.With("method", "writePump")

	ticker := time.NewTicker(options.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.conn.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.conn.SetWriteDeadline(time.Now().Add(options.WriteWait))

			if !ok {
				_ = that.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := that.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Warn("failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.conn.SetWriteDeadline(time.Now().Add(options.WriteWait))

			if err := that.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("failed to write ping", "error", err)
				return
			}
		}
	}
}
