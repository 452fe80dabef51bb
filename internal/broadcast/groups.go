// Package broadcast keeps the membership of room broadcast groups.
package broadcast

import (
	"sort"
	"sync"
)

// Groups indexes connections by room and rooms by connection.
// All methods are safe for concurrent use.
type Groups struct {
	mu      sync.RWMutex
	members map[string]map[string]struct{} // roomID -> connection ids
	joined  map[string]map[string]struct{} // connection id -> roomIDs
}

func NewGroups() *Groups {
	return &Groups{
		members: make(map[string]map[string]struct{}),
		joined:  make(map[string]map[string]struct{}),
	}
}

func (that *Groups) Join(connectionID, roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.members[roomID] == nil {
		that.members[roomID] = make(map[string]struct{})
	}
	that.members[roomID][connectionID] = struct{}{}

	if that.joined[connectionID] == nil {
		that.joined[connectionID] = make(map[string]struct{})
	}
	that.joined[connectionID][roomID] = struct{}{}
}

func (that *Groups) Leave(connectionID, roomID string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.leave(connectionID, roomID)
}

// LeaveAll drops the connection from every group and returns the rooms it was in.
func (that *Groups) LeaveAll(connectionID string) []string {
	that.mu.Lock()
	defer that.mu.Unlock()

	rooms := sortedKeys(that.joined[connectionID])
	for _, roomID := range rooms {
		that.leave(connectionID, roomID)
	}

	return rooms
}

// Members returns the connections of a room, sorted.
func (that *Groups) Members(roomID string) []string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return sortedKeys(that.members[roomID])
}

// Rooms returns the rooms a connection joined, sorted.
func (that *Groups) Rooms(connectionID string) []string {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return sortedKeys(that.joined[connectionID])
}

func (that *Groups) leave(connectionID, roomID string) {
	if set, ok := that.members[roomID]; ok {
		delete(set, connectionID)
		if len(set) == 0 {
			delete(that.members, roomID)
		}
	}

	if set, ok := that.joined[connectionID]; ok {
		delete(set, roomID)
		if len(set) == 0 {
			delete(that.joined, connectionID)
		}
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys
}
