package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/broadcast"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

type roomRepo interface {
	GetOrCreate(id string) *entity.Room
	GetByID(id string) (*entity.Room, error)
	DeleteByID(id string)
	List() []*entity.Room
}

// dispatcher delivers notifications. It is called with the room lock held and must not block.
type dispatcher interface {
	Dispatch(notifications []Notification)
}

// resultRecorder receives finished games. It is called with the room lock held and must not block.
type resultRecorder interface {
	Record(result entity.GameResult)
}

// Coordinator runs the join/move/reset/disconnect protocol of the rooms.
// Every operation on a room happens under that room's lock, including the hand-off of
// its notifications to the dispatcher, so notifications of one room keep their order.
type Coordinator struct {
	logger     *slog.Logger
	rooms      roomRepo
	groups     *broadcast.Groups
	dispatcher dispatcher
	recorder   resultRecorder

	now func() time.Time
}

func NewCoordinator(logger *slog.Logger, rooms roomRepo, groups *broadcast.Groups, dispatcher dispatcher, recorder resultRecorder) *Coordinator {
	return &Coordinator{
		logger:     logger.With("component", "coordinator"),
		rooms:      rooms,
		groups:     groups,
		dispatcher: dispatcher,
		recorder:   recorder,

		now: time.Now,
	}
}

// Join seats the connection in the room, creating the room on first use.
func (that *Coordinator) Join(connectionID, roomID, name, symbol string) []Notification {
	log := that.logger.With("method", "Join", "roomID", roomID, "connectionID", connectionID)

	name, symbol, err := entity.ValidateJoin(name, symbol)
	if err != nil {
		log.Info("invalid join", "error", err)

		notifications := []Notification{toConnection(connectionID, EventInvalidJoin, err.Error())}
		that.dispatcher.Dispatch(notifications)

		return notifications
	}

	room := that.lockRoom(roomID)
	defer room.Unlock()

	notifications := that.join(room, connectionID, name, symbol)
	that.dispatcher.Dispatch(notifications)

	return notifications
}

// MakeMove applies a move. Illegal moves are dropped without any notification.
func (that *Coordinator) MakeMove(connectionID, roomID string, cell int) []Notification {
	log := that.logger.With("method", "MakeMove", "roomID", roomID, "connectionID", connectionID)

	room, err := that.rooms.GetByID(roomID)
	if err != nil {
		log.Debug("move ignored", "error", err)
		return nil
	}

	room.Lock()
	defer room.Unlock()

	if room.IsClosed() {
		log.Debug("move ignored", "error", apperror.ErrRoomNotFound)
		return nil
	}

	result, err := room.MakeMove(connectionID, cell)
	if err != nil {
		log.Debug("move ignored", "cell", cell, "error", err)
		return nil
	}

	notifications := that.moveNotifications(room, result)
	that.dispatcher.Dispatch(notifications)

	if result.Finished {
		log.Info("game finished", "winner", winnerName(result.Winner))
		that.recorder.Record(entity.NewGameResult(room, result.Winner, that.now()))
	}

	return notifications
}

// Reset starts a new game in an existing room. Unknown rooms are ignored.
func (that *Coordinator) Reset(roomID string) []Notification {
	log := that.logger.With("method", "Reset", "roomID", roomID)

	room, err := that.rooms.GetByID(roomID)
	if err != nil {
		log.Debug("reset ignored", "error", err)
		return nil
	}

	room.Lock()
	defer room.Unlock()

	if room.IsClosed() {
		return nil
	}

	room.Reset()

	notifications := []Notification{
		toMembers(that.groups.Members(room.ID), EventUpdateGame, room.Snapshot()),
	}
	that.dispatcher.Dispatch(notifications)

	return notifications
}

// Disconnect removes the connection's seat from every room it sits in and drops it from
// all broadcast groups.
func (that *Coordinator) Disconnect(connectionID string) []Notification {
	log := that.logger.With("method", "Disconnect", "connectionID", connectionID)

	var notifications []Notification
	for _, room := range that.rooms.List() {
		room.Lock()

		roomNotifications, left := that.leave(room, connectionID)
		if left {
			log.Info("player left room", "roomID", room.ID, "playersLeft", len(room.Players))
			that.dispatcher.Dispatch(roomNotifications)
			notifications = append(notifications, roomNotifications...)
		}

		room.Unlock()
	}

	that.groups.LeaveAll(connectionID)

	return notifications
}

// GetSnapshot returns the current state of a room.
func (that *Coordinator) GetSnapshot(roomID string) (entity.Snapshot, error) {
	room, err := that.rooms.GetByID(roomID)
	if err != nil {
		return entity.Snapshot{}, fmt.Errorf("failed to get room: %w", err)
	}

	room.Lock()
	defer room.Unlock()

	if room.IsClosed() {
		return entity.Snapshot{}, fmt.Errorf("failed to get room: %w", apperror.ErrRoomNotFound)
	}

	return room.Snapshot(), nil
}

// RoomSummary is the short form of a room used in listings.
type RoomSummary struct {
	ID         string          `json:"id"`
	Status     string          `json:"status"`
	Players    []entity.Player `json:"players"`
	GameActive bool            `json:"gameActive"`
	Scores     entity.Scores   `json:"scores"`
}

func (that *Coordinator) ListRooms() []RoomSummary {
	rooms := that.rooms.List()

	summaries := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		room.Lock()
		if !room.IsClosed() {
			snapshot := room.Snapshot()
			summaries = append(summaries, RoomSummary{
				ID:         room.ID,
				Status:     room.Status(),
				Players:    snapshot.Players,
				GameActive: snapshot.GameActive,
				Scores:     snapshot.Scores,
			})
		}
		room.Unlock()
	}

	return summaries
}

// lockRoom returns the locked room for id. A room that was emptied and dropped while we
// waited for its lock is skipped and a fresh one is taken instead.
func (that *Coordinator) lockRoom(roomID string) *entity.Room {
	for {
		room := that.rooms.GetOrCreate(roomID)
		room.Lock()

		if !room.IsClosed() {
			return room
		}

		room.Unlock()
	}
}

func (that *Coordinator) join(room *entity.Room, connectionID, name, symbol string) []Notification {
	log := that.logger.With("method", "join", "roomID", room.ID, "connectionID", connectionID)

	player, err := room.Join(connectionID, name, symbol)
	if errors.Is(err, apperror.ErrRoomFull) {
		log.Info("room is full")
		return []Notification{toConnection(connectionID, EventRoomFull, nil)}
	}

	if err != nil {
		log.Info("join rejected", "error", err)
		return []Notification{toConnection(connectionID, EventInvalidJoin, err.Error())}
	}

	that.groups.Join(connectionID, room.ID)
	members := that.groups.Members(room.ID)

	log.Info("player joined", "name", player.Name, "playerID", player.PlayerID)

	notifications := []Notification{
		toConnection(connectionID, EventPlayerJoined, PlayerJoinedPayload{PlayerID: player.PlayerID}),
		toMembers(members, EventUpdatePlayers, room.PlayersUpdate()),
	}

	if room.IsFull() {
		notifications = append(notifications, toMembers(members, EventStartGame, room.Snapshot()))
	}

	return notifications
}

func (that *Coordinator) moveNotifications(room *entity.Room, result *entity.MoveResult) []Notification {
	members := that.groups.Members(room.ID)

	notifications := []Notification{
		toMembers(members, EventUpdateGame, room.Snapshot()),
	}

	if result.Finished {
		notifications = append(notifications,
			toMembers(members, EventGameOver, GameOverPayload{Winner: result.Winner}),
			toMembers(members, EventUpdatePlayers, room.PlayersUpdate()),
		)
	}

	return notifications
}

func (that *Coordinator) leave(room *entity.Room, connectionID string) ([]Notification, bool) {
	if room.IsClosed() {
		return nil, false
	}

	departed, ok := room.Leave(connectionID)
	if !ok {
		return nil, false
	}

	that.groups.Leave(connectionID, room.ID)

	if room.IsEmpty() {
		room.Close()
		that.rooms.DeleteByID(room.ID)
		return nil, true
	}

	members := that.groups.Members(room.ID)

	return []Notification{
		toMembers(members, EventUpdatePlayers, room.PlayersUpdate()),
		toMembers(members, EventUpdateGame, room.Snapshot()),
		toMembers(members, EventPlayerDisconnected, PlayerDisconnectedPayload{
			Message: departed.Name + " disconnected. Waiting for new player to join.",
		}),
	}, true
}

func winnerName(winner *entity.Player) string {
	if winner == nil {
		return "draw"
	}

	return winner.Name
}
