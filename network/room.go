package network

import (
	"sync"

	"ghost_maze_server/logic"
	"ghost_maze_server/observability"

	"github.com/rs/zerolog/log"
)

// Message type codes shared with the client.
const (
	MsgLoginAck  = 1001
	MsgMoveInput = 2001
	MsgMapInfo   = 3001
	MsgSnapshot  = 3002
)

// Room hosts one game session: a single controlled player plus any number
// of spectators receiving the same snapshots.
type Room struct {
	ID         string
	Clients    map[*Client]bool
	Register   chan *Client
	Unregister chan *Client
	GameLoop   *logic.GameLoop
	Config     *logic.GameConfig
	Mutex      sync.RWMutex
}

func NewRoom(id string, cfg *logic.GameConfig) *Room {
	return &Room{
		ID:         id,
		Clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		GameLoop:   logic.NewGameLoop(cfg),
		Config:     cfg,
	}
}

func (r *Room) Run() {
	go r.GameLoop.Run()
	log.Info().Str("room", r.ID).Int("tick_rate_ms", r.Config.Server.TickRateMs).Msg("room started")

	for {
		select {
		case client := <-r.Register:
			r.Mutex.Lock()
			// Drop a stale connection reusing the same session id.
			for other := range r.Clients {
				if other != nil && other.SessionID == client.SessionID {
					delete(r.Clients, other)
					close(other.Send)
				}
			}
			r.Clients[client] = true
			observability.SetConnectedClients(len(r.Clients))

			p := r.GameLoop.GameState.AddPlayer(client.SessionID)
			client.SendJSON(map[string]interface{}{
				"type": MsgLoginAck,
				"payload": map[string]interface{}{
					"success":     true,
					"session_id":  client.SessionID,
					"controlling": p != nil,
					"config":      r.Config,
				},
			})
			client.SendJSON(map[string]interface{}{
				"type":    MsgMapInfo,
				"payload": r.GameLoop.GameState.MapInfo(),
			})
			r.Mutex.Unlock()

		case client := <-r.Unregister:
			r.Mutex.Lock()
			if _, ok := r.Clients[client]; ok {
				delete(r.Clients, client)
				close(client.Send)

				// Release control only when no other connection holds the
				// same session id.
				stillConnected := false
				for other := range r.Clients {
					if other != nil && other.SessionID == client.SessionID {
						stillConnected = true
						break
					}
				}
				if !stillConnected {
					r.GameLoop.GameState.RemovePlayer(client.SessionID)
				}
			}
			observability.SetConnectedClients(len(r.Clients))
			r.Mutex.Unlock()

		case snap := <-r.GameLoop.SnapshotChan:
			msg := toJSON(map[string]interface{}{
				"type":    MsgSnapshot,
				"payload": snap,
			})
			r.Mutex.RLock()
			for client := range r.Clients {
				select {
				case client.Send <- msg:
				default:
				}
			}
			r.Mutex.RUnlock()
		}
	}
}
