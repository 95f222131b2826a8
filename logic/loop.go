package logic

import (
	"time"

	"github.com/rs/zerolog/log"
)

type InputType int

const (
	InputMove InputType = iota
)

// PlayerInput is a decoded client message handed to the loop.
type PlayerInput struct {
	SessionID string
	Type      InputType
	Dir       Vec
}

// GameLoop drives the simulation: one UpdateTick per ticker fire, inputs
// serialized through InputChan, snapshots pushed to the network layer.
type GameLoop struct {
	GameState    *GameState
	InputChan    chan PlayerInput
	SnapshotChan chan map[string]interface{}
	StopChan     chan bool

	// OnTick is called after every processed tick; may be nil.
	OnTick func(tick uint64)
}

func NewGameLoop(cfg *GameConfig) *GameLoop {
	return &GameLoop{
		GameState:    NewGameState(cfg),
		InputChan:    make(chan PlayerInput, 100),
		SnapshotChan: make(chan map[string]interface{}, 1),
		StopChan:     make(chan bool),
	}
}

func (gl *GameLoop) Run() {
	ticker := time.NewTicker(time.Duration(gl.GameState.Config.Server.TickRateMs) * time.Millisecond)
	defer ticker.Stop()

	log.Info().Int("tick_rate_ms", gl.GameState.Config.Server.TickRateMs).Msg("game loop started")

	for {
		select {
		case input := <-gl.InputChan:
			gl.handleInput(input)

		case <-ticker.C:
			gl.GameState.UpdateTick()
			if gl.OnTick != nil {
				gl.OnTick(gl.GameState.Tick)
			}

			// Skip the frame instead of stalling the loop when the
			// network layer is busy.
			select {
			case gl.SnapshotChan <- gl.GameState.Snapshot():
			default:
			}

		case <-gl.StopChan:
			log.Info().Msg("game loop stopped")
			return
		}
	}
}

func (gl *GameLoop) handleInput(input PlayerInput) {
	switch input.Type {
	case InputMove:
		gl.GameState.HandleInput(input.SessionID, input.Dir)
	}
}
