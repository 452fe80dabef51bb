package repository

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// RoomRepository keeps the live rooms of this process. It guards only the id -> room map;
// room state itself is guarded by each room's own lock.
type RoomRepository interface {
	GetOrCreate(id string) *entity.Room
	GetByID(id string) (*entity.Room, error)
	DeleteByID(id string)
	List() []*entity.Room
	Count() int
}

type memoryRooms struct {
	mu    sync.RWMutex
	rooms map[string]*entity.Room
}

func NewRoomRepository() RoomRepository {
	return &memoryRooms{
		rooms: make(map[string]*entity.Room),
	}
}

func (that *memoryRooms) GetOrCreate(id string) *entity.Room {
	that.mu.RLock()
	room, ok := that.rooms[id]
	that.mu.RUnlock()

	if ok {
		return room
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	// another goroutine may have created it between the two locks
	if room, ok = that.rooms[id]; ok {
		return room
	}

	room = entity.NewRoom(id)
	that.rooms[id] = room

	return room
}

func (that *memoryRooms) GetByID(id string) (*entity.Room, error) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	room, ok := that.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrRoomNotFound, id)
	}

	return room, nil
}

func (that *memoryRooms) DeleteByID(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	delete(that.rooms, id)
}

// List returns the rooms ordered by id.
func (that *memoryRooms) List() []*entity.Room {
	that.mu.RLock()
	rooms := make([]*entity.Room, 0, len(that.rooms))
	for _, room := range that.rooms {
		rooms = append(rooms, room)
	}
	that.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool {
		return rooms[i].ID < rooms[j].ID
	})

	return rooms
}

func (that *memoryRooms) Count() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.rooms)
}
