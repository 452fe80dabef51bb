package entity

import (
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

const (
	StatusWaiting    = "waiting"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"

	MaxPlayers = 2
)

// Room is one two-seat game session. Callers hold the room lock (Lock/Unlock) around
// every read or mutation.
type Room struct {
	mu     sync.Mutex
	closed bool

	ID            string
	Players       []*Player
	Board         Board
	CurrentPlayer int
	GameActive    bool
	Scores        Scores
}

// Snapshot is the full room state sent to clients.
type Snapshot struct {
	Players       []Player `json:"players"`
	GameState     Board    `json:"gameState"`
	CurrentPlayer int      `json:"currentPlayer"`
	GameActive    bool     `json:"gameActive"`
	Scores        Scores   `json:"scores"`
}

// PlayersUpdate is the seat list together with the score ledger.
type PlayersUpdate struct {
	Players []Player `json:"players"`
	Scores  Scores   `json:"scores"`
}

// MoveResult describes the outcome of an accepted move.
type MoveResult struct {
	Finished bool
	Winner   *Player
}

func NewRoom(id string) *Room {
	return &Room{
		ID:         id,
		Players:    make([]*Player, 0, MaxPlayers),
		Board:      NewBoard(),
		GameActive: true,
	}
}

func (that *Room) Lock() {
	that.mu.Lock()
}

func (that *Room) Unlock() {
	that.mu.Unlock()
}

// Close marks a room that was dropped from the registry. Must be called with the lock held.
func (that *Room) Close() {
	that.closed = true
}

func (that *Room) IsClosed() bool {
	return that.closed
}

func (that *Room) IsEmpty() bool {
	return len(that.Players) == 0
}

func (that *Room) IsFull() bool {
	return len(that.Players) >= MaxPlayers
}

func (that *Room) Status() string {
	switch {
	case len(that.Players) < MaxPlayers:
		return StatusWaiting
	case that.GameActive:
		return StatusInProgress
	default:
		return StatusFinished
	}
}

// SeatOf returns the seat index of the connection, or -1.
func (that *Room) SeatOf(connectionID string) int {
	for i, player := range that.Players {
		if player.ID == connectionID {
			return i
		}
	}

	return -1
}

func (that *Room) HasConnection(connectionID string) bool {
	return that.SeatOf(connectionID) != -1
}

// Join seats a connection. Conflicts are checked in order: name, symbol, connection, capacity.
// The second seat starts a fresh game.
func (that *Room) Join(connectionID, name, symbol string) (*Player, error) {
	for _, player := range that.Players {
		if player.Name == name {
			return nil, apperror.ErrNameTaken
		}
	}

	for _, player := range that.Players {
		if player.Symbol == symbol {
			return nil, apperror.ErrSymbolTaken
		}
	}

	if that.HasConnection(connectionID) {
		return nil, apperror.ErrAlreadyJoined
	}

	if that.IsFull() {
		return nil, apperror.ErrRoomFull
	}

	player := &Player{
		ID:       connectionID,
		Name:     name,
		Symbol:   symbol,
		PlayerID: that.freeRole(),
	}

	that.Players = append(that.Players, player)

	if that.IsFull() {
		that.Reset()
	}

	return player, nil
}

// MakeMove validates and applies a move for the connection, then evaluates the terminal state.
func (that *Room) MakeMove(connectionID string, cell int) (*MoveResult, error) {
	seat := that.SeatOf(connectionID)
	if seat == -1 {
		return nil, apperror.ErrPlayerNotInRoom
	}

	if len(that.Players) < MaxPlayers {
		return nil, apperror.ErrGameIsNotStarted
	}

	if seat != that.CurrentPlayer {
		return nil, apperror.ErrNotYourTurn
	}

	if cell < 0 || cell >= len(that.Board) {
		return nil, apperror.ErrInvalidCell
	}

	if that.Board[cell] != EmptyCell {
		return nil, apperror.ErrCellOccupied
	}

	if !that.GameActive {
		return nil, apperror.ErrGameFinished
	}

	mover := that.Players[seat]
	if err := that.Board.Place(cell, mover.Symbol); err != nil {
		return nil, err
	}

	that.CurrentPlayer = 1 - that.CurrentPlayer

	return that.evaluate(), nil
}

func (that *Room) evaluate() *MoveResult {
	if symbol, ok := that.Board.WinningSymbol(); ok {
		that.GameActive = false

		result := &MoveResult{Finished: true}
		for _, player := range that.Players {
			if player.Symbol == symbol {
				that.Scores.Credit(player.PlayerID)
				winner := *player
				result.Winner = &winner
				break
			}
		}

		return result
	}

	if that.Board.IsFull() {
		that.GameActive = false
		return &MoveResult{Finished: true}
	}

	return &MoveResult{}
}

// Reset clears the board and hands the turn to seat 0. Seats and scores are kept.
func (that *Room) Reset() {
	that.Board = NewBoard()
	that.CurrentPlayer = 0
	that.GameActive = true
}

// Leave removes the connection's seat and resets the game.
func (that *Room) Leave(connectionID string) (*Player, bool) {
	seat := that.SeatOf(connectionID)
	if seat == -1 {
		return nil, false
	}

	departed := that.Players[seat]
	that.Players = append(that.Players[:seat], that.Players[seat+1:]...)
	that.Reset()

	return departed, true
}

func (that *Room) Snapshot() Snapshot {
	return Snapshot{
		Players:       that.copyPlayers(),
		GameState:     that.Board,
		CurrentPlayer: that.CurrentPlayer,
		GameActive:    that.GameActive,
		Scores:        that.Scores,
	}
}

func (that *Room) PlayersUpdate() PlayersUpdate {
	return PlayersUpdate{
		Players: that.copyPlayers(),
		Scores:  that.Scores,
	}
}

func (that *Room) copyPlayers() []Player {
	players := make([]Player, 0, len(that.Players))
	for _, player := range that.Players {
		players = append(players, *player)
	}

	return players
}

// freeRole picks the first role not held by a remaining seat, so a player who stays after
// the other one left keeps their role and score.
func (that *Room) freeRole() string {
	for _, role := range Roles {
		taken := false
		for _, player := range that.Players {
			if player.PlayerID == role {
				taken = true
				break
			}
		}

		if !taken {
			return role
		}
	}

	return ""
}
