package repository

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
)

func TestRoomRepository_GetOrCreate(t *testing.T) {
	t.Run("Creates a waiting room for an unseen id", func(t *testing.T) {
		// Given: an empty repository
		rooms := NewRoomRepository()

		// When: GetOrCreate is called with a new id
		room := rooms.GetOrCreate("abc")

		// Then: a fresh room is stored under that id
		require.NotNil(t, room)
		assert.Equal(t, "abc", room.ID)
		assert.Empty(t, room.Players)
		assert.True(t, room.Board.IsEmpty())
		assert.Zero(t, room.Scores)
		assert.Equal(t, 1, rooms.Count())
	})

	t.Run("Returns the existing room", func(t *testing.T) {
		rooms := NewRoomRepository()
		first := rooms.GetOrCreate("abc")

		second := rooms.GetOrCreate("abc")

		assert.Same(t, first, second)
		assert.Equal(t, 1, rooms.Count())
	})

	t.Run("Concurrent callers share one room", func(t *testing.T) {
		rooms := NewRoomRepository()

		var wg sync.WaitGroup
		for n := 0; n < 50; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rooms.GetOrCreate("race")
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, rooms.Count())
	})
}

func TestRoomRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		rooms := NewRoomRepository()
		created := rooms.GetOrCreate("abc")

		room, err := rooms.GetByID("abc")

		require.NoError(t, err)
		assert.Same(t, created, room)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		rooms := NewRoomRepository()

		room, err := rooms.GetByID("missing")

		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
		assert.Nil(t, room)
	})
}

func TestRoomRepository_DeleteByID(t *testing.T) {
	t.Run("DeleteByID_Success", func(t *testing.T) {
		rooms := NewRoomRepository()
		rooms.GetOrCreate("abc")

		rooms.DeleteByID("abc")

		_, err := rooms.GetByID("abc")
		require.ErrorIs(t, err, apperror.ErrRoomNotFound)
		assert.Zero(t, rooms.Count())
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		rooms := NewRoomRepository()
		rooms.GetOrCreate("abc")

		rooms.DeleteByID("missing")

		assert.Equal(t, 1, rooms.Count())
	})
}

func TestRoomRepository_List(t *testing.T) {
	rooms := NewRoomRepository()
	for _, id := range []string{"c", "a", "b"} {
		rooms.GetOrCreate(id)
	}

	list := rooms.List()

	ids := make([]string, 0, len(list))
	for _, room := range list {
		ids = append(ids, room.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}
