package websocket

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

type coordinator interface {
	Join(connectionID, roomID, name, symbol string) []usecase.Notification
	MakeMove(connectionID, roomID string, cell int) []usecase.Notification
	Reset(roomID string) []usecase.Notification
	Disconnect(connectionID string) []usecase.Notification
}

// Options tunes the keepalive and buffering of every connection.
type Options struct {
	PingPeriod time.Duration
	PongWait   time.Duration
	WriteWait  time.Duration
	SendBuffer int
}

func (that Options) withDefaults() Options {
	if that.PongWait <= 0 {
		that.PongWait = 60 * time.Second
	}

	if that.PingPeriod <= 0 || that.PingPeriod >= that.PongWait {
		that.PingPeriod = that.PongWait * 9 / 10
	}

	if that.WriteWait <= 0 {
		that.WriteWait = 10 * time.Second
	}

	if that.SendBuffer <= 0 {
		that.SendBuffer = 64
	}

	return that
}

type Server struct {
	logger      *slog.Logger
	hub         *Hub
	coordinator coordinator
	options     Options
	upgrader    websocket.Upgrader

	handlers map[string]func(connectionID string, message *Message) error
}

func New(logger *slog.Logger, hub *Hub, coordinator coordinator, options Options) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		hub:         hub,
		coordinator: coordinator,
		options:     options.withDefaults(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},

		handlers: make(map[string]func(string, *Message) error),
	}

	server.handlers[actionJoinRoom] = server.handleJoinRoom
	server.handlers[actionMakeMove] = server.handleMakeMove
	server.handlers[actionResetGame] = server.handleResetGame

	return server
}

// HandleWS upgrades the request and serves the connection until it closes. Closing the
// socket disconnects the connection from every room it joined.
func (that *Server) HandleWS(c *gin.Context) {
	log := that.logger.With("method", "HandleWS")

	ws, err := that.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(uuid.NewString(), ws, that.logger, that.options.SendBuffer)
	log = log.With("connectionID", conn.id)

	that.hub.register(conn)
	log.Info("WebSocket connection established")

	go conn.writePump(that.options)

	conn.readPump(that.options, func(data []byte) {
		that.handleMessage(conn.id, data)
	})

	that.coordinator.Disconnect(conn.id)
	that.hub.unregister(conn)

	log.Info("WebSocket connection closed")
}

// handleMessage - decodes one frame and routes it to its action handler.
func (that *Server) handleMessage(connectionID string, data []byte) {
	log := that.logger.With("method", "handleMessage", "connectionID", connectionID)

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		log.Warn("failed to unmarshal message", "error", err)
		return
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		log.Warn("unknown action", "action", message.Action)
		return
	}

	if err := handler(connectionID, &message); err != nil {
		log.Warn("error processing message", "action", message.Action, "error", err)
	}
}
