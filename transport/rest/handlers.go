package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/usecase"
)

type Handlers interface {
	Ping(c *gin.Context)

	ListRooms(c *gin.Context)
	GetRoom(c *gin.Context)
	ListResults(c *gin.Context)
}

type roomReader interface {
	ListRooms() []usecase.RoomSummary
	GetSnapshot(roomID string) (entity.Snapshot, error)
}

type historyReader interface {
	ListByRoomID(ctx context.Context, roomID string) ([]entity.GameResult, error)
}

type handlers struct {
	logger  *slog.Logger
	rooms   roomReader
	history historyReader
}

func NewHandlers(logger *slog.Logger, rooms roomReader, history historyReader) Handlers {
	return &handlers{
		logger:  logger.With("component", "rest"),
		rooms:   rooms,
		history: history,
	}
}

func (that *handlers) ListRooms(c *gin.Context) {
	c.JSON(http.StatusOK, that.rooms.ListRooms())
}

func (that *handlers) GetRoom(c *gin.Context) {
	log := that.logger.With("method", "GetRoom")

	snapshot, err := that.rooms.GetSnapshot(c.Param("id"))
	if errors.Is(err, apperror.ErrRoomNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": apperror.ErrRoomNotFound.Error()})
		return
	}

	if err != nil {
		log.Error("failed to get room", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get room"})
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (that *handlers) ListResults(c *gin.Context) {
	log := that.logger.With("method", "ListResults")

	results, err := that.history.ListByRoomID(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Error("failed to list results", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list results"})
		return
	}

	c.JSON(http.StatusOK, results)
}
