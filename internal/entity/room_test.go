package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

func newFullRoom(t *testing.T) *Room {
	t.Helper()

	room := NewRoom("room-1")

	_, err := room.Join("conn-a", "Alice", markX)
	require.NoError(t, err)

	_, err = room.Join("conn-b", "Bob", markO)
	require.NoError(t, err)

	return room
}

func playMoves(t *testing.T, room *Room, cells ...int) *MoveResult {
	t.Helper()

	var result *MoveResult
	for _, cell := range cells {
		mover := room.Players[room.CurrentPlayer].ID

		var err error
		result, err = room.MakeMove(mover, cell)
		require.NoError(t, err, "cell %d", cell)
	}

	return result
}

func TestRoom_Join(t *testing.T) {
	t.Run("Seats players in join order", func(t *testing.T) {
		// Given: a fresh room
		room := NewRoom("room-1")
		assert.Equal(t, StatusWaiting, room.Status())

		// When: two players join
		first, err := room.Join("conn-a", "Alice", markX)
		require.NoError(t, err)
		second, err := room.Join("conn-b", "Bob", markO)
		require.NoError(t, err)

		// Then: they get player1 and player2 and the game starts
		assert.Equal(t, RolePlayer1, first.PlayerID)
		assert.Equal(t, RolePlayer2, second.PlayerID)
		assert.Equal(t, StatusInProgress, room.Status())
		assert.Equal(t, 0, room.CurrentPlayer)
		assert.True(t, room.Board.IsEmpty())
	})

	t.Run("Rejects conflicts in order", func(t *testing.T) {
		room := NewRoom("room-1")
		_, err := room.Join("conn-a", "Alice", markX)
		require.NoError(t, err)

		_, err = room.Join("conn-b", "Alice", markX)
		require.ErrorIs(t, err, apperror.ErrNameTaken)

		_, err = room.Join("conn-b", "Bob", markX)
		require.ErrorIs(t, err, apperror.ErrSymbolTaken)

		_, err = room.Join("conn-a", "Bob", markO)
		require.ErrorIs(t, err, apperror.ErrAlreadyJoined)

		assert.Len(t, room.Players, 1)
	})

	t.Run("Rejects a third player", func(t *testing.T) {
		room := newFullRoom(t)

		_, err := room.Join("conn-c", "Carol", "🐱")

		require.ErrorIs(t, err, apperror.ErrRoomFull)
		assert.Len(t, room.Players, 2)
	})
}

func TestRoom_MakeMove(t *testing.T) {
	t.Run("Accepted move places the symbol and flips the turn", func(t *testing.T) {
		// Given: a room with two players
		room := newFullRoom(t)

		// When: player1 plays the centre
		result, err := room.MakeMove("conn-a", 4)

		// Then: the cell holds X and it is player2's turn
		require.NoError(t, err)
		assert.False(t, result.Finished)
		assert.Equal(t, markX, room.Board[4])
		assert.Equal(t, 1, room.CurrentPlayer)

		// And: repeating the same move is rejected
		_, err = room.MakeMove("conn-b", 4)
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Rejects illegal moves without mutating the room", func(t *testing.T) {
		room := newFullRoom(t)
		before := room.Snapshot()

		_, err := room.MakeMove("stranger", 0)
		require.ErrorIs(t, err, apperror.ErrPlayerNotInRoom)

		_, err = room.MakeMove("conn-b", 0)
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)

		_, err = room.MakeMove("conn-a", 9)
		require.ErrorIs(t, err, apperror.ErrInvalidCell)

		assert.Equal(t, before, room.Snapshot())
	})

	t.Run("Rejects moves while waiting for the second player", func(t *testing.T) {
		room := NewRoom("room-1")
		_, err := room.Join("conn-a", "Alice", markX)
		require.NoError(t, err)

		_, err = room.MakeMove("conn-a", 0)

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
		assert.True(t, room.Board.IsEmpty())
	})

	t.Run("Winning move finishes the game and credits the winner", func(t *testing.T) {
		// Given: X is about to complete the top row
		room := newFullRoom(t)
		playMoves(t, room, 0, 3, 1, 4)

		// When: X plays cell 2
		result := playMoves(t, room, 2)

		// Then: the game is over in the same call and player1 scores
		require.True(t, result.Finished)
		require.NotNil(t, result.Winner)
		assert.Equal(t, "Alice", result.Winner.Name)
		assert.False(t, room.GameActive)
		assert.Equal(t, StatusFinished, room.Status())
		assert.Equal(t, Scores{Player1: 1}, room.Scores)

		// And: no further moves are accepted
		_, err := room.MakeMove("conn-b", 8)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Full board without a line is a draw", func(t *testing.T) {
		room := newFullRoom(t)

		// X O X / X O O / O X X
		result := playMoves(t, room, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		require.True(t, result.Finished)
		assert.Nil(t, result.Winner)
		assert.False(t, room.GameActive)
		assert.Equal(t, Scores{}, room.Scores)
	})
}

func TestRoom_Reset(t *testing.T) {
	// Given: a finished game
	room := newFullRoom(t)
	playMoves(t, room, 0, 3, 1, 4, 2)

	// When: the room is reset
	room.Reset()

	// Then: board and turn are fresh while seats and scores stay
	assert.True(t, room.Board.IsEmpty())
	assert.Equal(t, 0, room.CurrentPlayer)
	assert.True(t, room.GameActive)
	assert.Len(t, room.Players, 2)
	assert.Equal(t, Scores{Player1: 1}, room.Scores)
}

func TestRoom_Leave(t *testing.T) {
	t.Run("Departure resets the game and keeps the scores", func(t *testing.T) {
		room := newFullRoom(t)
		playMoves(t, room, 0, 3, 1, 4, 2)
		room.Reset()
		playMoves(t, room, 8)

		departed, ok := room.Leave("conn-a")

		require.True(t, ok)
		assert.Equal(t, "Alice", departed.Name)
		assert.Len(t, room.Players, 1)
		assert.True(t, room.Board.IsEmpty())
		assert.True(t, room.GameActive)
		assert.Equal(t, 0, room.CurrentPlayer)
		assert.Equal(t, StatusWaiting, room.Status())
		assert.Equal(t, Scores{Player1: 1}, room.Scores)
	})

	t.Run("Remaining player keeps the role and the newcomer takes the free one", func(t *testing.T) {
		room := newFullRoom(t)
		_, ok := room.Leave("conn-a")
		require.True(t, ok)

		newcomer, err := room.Join("conn-c", "Carol", markX)
		require.NoError(t, err)

		assert.Equal(t, RolePlayer2, room.Players[0].PlayerID)
		assert.Equal(t, RolePlayer1, newcomer.PlayerID)
	})

	t.Run("Unknown connection is a no-op", func(t *testing.T) {
		room := newFullRoom(t)

		_, ok := room.Leave("stranger")

		assert.False(t, ok)
		assert.Len(t, room.Players, 2)
	})
}
