package network

import (
	"sync"

	"ghost_maze_server/logic"

	"github.com/rs/zerolog/log"
)

// RoomManager is a registry of running rooms. The server boots a single
// default room; the registry leaves space for more.
type RoomManager struct {
	Rooms map[string]*Room
	Mutex sync.RWMutex
}

func NewRoomManager() *RoomManager {
	return &RoomManager{Rooms: make(map[string]*Room)}
}

// CreateRoom builds a room, lets the caller wire hooks before the loop
// starts, then runs it.
func (rm *RoomManager) CreateRoom(id string, cfg *logic.GameConfig, configure func(*Room)) *Room {
	rm.Mutex.Lock()
	defer rm.Mutex.Unlock()

	room := NewRoom(id, cfg)
	if configure != nil {
		configure(room)
	}
	rm.Rooms[id] = room
	go room.Run()
	log.Info().Str("room", id).Msg("room created")
	return room
}

func (rm *RoomManager) GetRoom(id string) *Room {
	rm.Mutex.RLock()
	defer rm.Mutex.RUnlock()
	return rm.Rooms[id]
}

// ListRooms returns the ids of running rooms.
func (rm *RoomManager) ListRooms() []string {
	rm.Mutex.RLock()
	defer rm.Mutex.RUnlock()
	ids := make([]string, 0, len(rm.Rooms))
	for id := range rm.Rooms {
		ids = append(ids, id)
	}
	return ids
}
