package logic

import (
	"math/rand"
	"sync"

	"github.com/rs/zerolog/log"
)

// Ghost is one of the four chasing agents.
type Ghost struct {
	ID   GhostID `json:"id"`
	Pos  Point   `json:"pos"`
	Dir  Vec     `json:"dir"`
	Role Role    `json:"role"`
}

// Player is the single controlled agent in a room.
type Player struct {
	SessionID string `json:"session_id"`
	Pos       Point  `json:"pos"`
	Dir       Vec    `json:"dir"`
	Score     int    `json:"score"`
	IsAlive   bool   `json:"is_alive"`

	// TargetDir is the sign-normalized direction requested by the client.
	TargetDir Vec `json:"-"`
}

// RoundResult is emitted when a round ends, for persistence and metrics.
type RoundResult struct {
	Won       bool
	Score     int
	Ticks     uint64
	Swaps     int
	Converges int
}

// GameState manages the world simulation for one room.
type GameState struct {
	Config  *GameConfig
	Map     *GameMap
	Player  *Player
	Ghosts  map[GhostID]*Ghost
	AI      *GhostAI
	Meta    *MetaRulesController
	Pellets map[Point]bool // keyed by tile coordinates
	Tick    uint64
	Round   int
	Mutex   sync.RWMutex

	// Hooks wired by main; both may be nil.
	OnRoundEnd  func(RoundResult)
	OnMetaEvent func(tick uint64, kind string)

	rng        *rand.Rand
	roundTicks uint64
	lastSwaps  int
	lastConv   int
}

func NewGameState(cfg *GameConfig) *GameState {
	gs := &GameState{
		Config: cfg,
		Map:    NewGameMap(cfg.Board.Size, cfg.Board.Tile, cfg.Board.WallDensity, cfg.Board.Seed),
		AI:     NewGhostAI(cfg),
		rng:    rand.New(rand.NewSource(cfg.Board.Seed + 1)),
	}
	gs.resetRound()
	return gs
}

// resetRound re-arms the meta rules, respawns the ghosts in the house and
// refills the pellets. Caller must hold the write lock (or be the
// constructor).
func (gs *GameState) resetRound() {
	gs.Meta = NewMetaRulesController(gs.Config.Board.Tile, gs.Config.Rules.RoleSwap, gs.Config.Rules.Converge)
	gs.lastSwaps = 0
	gs.lastConv = 0
	gs.roundTicks = 0

	cx, cy := gs.Map.Width/2, gs.Map.Height/2
	spawns := map[GhostID]Point{
		Blinky: gs.Map.CenterOf(cx-1, cy),
		Pinky:  gs.Map.CenterOf(cx+1, cy),
		Inky:   gs.Map.CenterOf(cx, cy),
		Clyde:  gs.Map.CenterOf(cx, cy+1),
	}
	gs.Ghosts = make(map[GhostID]*Ghost, len(spawns))
	roles := gs.Meta.Roles()
	for _, id := range GhostIDs() {
		gs.Ghosts[id] = &Ghost{ID: id, Pos: spawns[id], Role: roles[id]}
	}

	gs.Pellets = make(map[Point]bool)
	for ty := 1; ty < gs.Map.Height-1; ty++ {
		for tx := 1; tx < gs.Map.Width-1; tx++ {
			if gs.Map.Tiles[ty][tx] == TileEmpty && !gs.Map.HouseTile(tx, ty) {
				gs.Pellets[Point{X: tx, Y: ty}] = true
			}
		}
	}

	if gs.Player != nil {
		gs.Player.Pos = gs.Map.RandomSpawnPos(gs.rng)
		gs.Player.Dir = Vec{}
		gs.Player.TargetDir = Vec{}
		gs.Player.Score = 0
		gs.Player.IsAlive = true
		delete(gs.Pellets, gs.Map.TileOf(gs.Player.Pos))
	}
}

// AddPlayer gives control of the room's player to sessionID. Returns nil if
// another session already controls it; that caller spectates.
func (gs *GameState) AddPlayer(sessionID string) *Player {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()

	if gs.Player != nil {
		if gs.Player.SessionID == sessionID {
			return gs.Player
		}
		return nil
	}

	p := &Player{
		SessionID: sessionID,
		Pos:       gs.Map.RandomSpawnPos(gs.rng),
		IsAlive:   true,
	}
	delete(gs.Pellets, gs.Map.TileOf(p.Pos))
	gs.Player = p
	log.Info().Str("session", sessionID).Int("x", p.Pos.X).Int("y", p.Pos.Y).Msg("player spawned")
	return p
}

// RemovePlayer releases control when the controlling session disconnects.
func (gs *GameState) RemovePlayer(sessionID string) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	if gs.Player != nil && gs.Player.SessionID == sessionID {
		gs.Player = nil
	}
}

// HandleInput updates the player's requested direction. Diagonal input
// collapses to its horizontal axis.
func (gs *GameState) HandleInput(sessionID string, dir Vec) {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()
	if gs.Player == nil || gs.Player.SessionID != sessionID {
		return
	}
	d := dir.Sign()
	if d.DX != 0 {
		d.DY = 0
	}
	gs.Player.TargetDir = d
}

// UpdateTick advances the simulation by one tick: meta rules first, then
// one decision per ghost, then player movement and pellet/capture checks.
func (gs *GameState) UpdateTick() {
	gs.Mutex.Lock()
	defer gs.Mutex.Unlock()

	if gs.Player == nil || !gs.Player.IsAlive {
		return
	}

	gs.Tick++
	gs.roundTicks++

	roles := gs.Meta.Update(gs.Player.Pos, gs.ghostPositions())
	gs.emitMetaEvents()

	player := PlayerState{Pos: gs.Player.Pos, Dir: gs.Player.Dir}
	reference := GhostState{Pos: gs.Ghosts[Blinky].Pos, Dir: gs.Ghosts[Blinky].Dir}

	for _, id := range GhostIDs() {
		g := gs.Ghosts[id]
		g.Role = roles[id]

		others := make([]Point, 0, len(gs.Ghosts)-1)
		for _, otherID := range GhostIDs() {
			if otherID != id {
				others = append(others, gs.Ghosts[otherID].Pos)
			}
		}

		mv := gs.AI.Decide(g.Role, id, GhostState{Pos: g.Pos, Dir: g.Dir}, player, &reference, gs.Map.CanMove, others)
		g.Dir = mv
		g.Pos.X += mv.DX
		g.Pos.Y += mv.DY
	}

	gs.movePlayer()
	gs.eatPellet()

	if gs.captured() {
		gs.endRound(false)
		return
	}
	if len(gs.Pellets) == 0 {
		gs.endRound(true)
	}
}

func (gs *GameState) ghostPositions() map[GhostID]Point {
	out := make(map[GhostID]Point, len(gs.Ghosts))
	for id, g := range gs.Ghosts {
		out[id] = g.Pos
	}
	return out
}

func (gs *GameState) emitMetaEvents() {
	if gs.OnMetaEvent == nil {
		gs.lastSwaps = gs.Meta.Swaps()
		gs.lastConv = gs.Meta.Converges()
		return
	}
	if s := gs.Meta.Swaps(); s > gs.lastSwaps {
		gs.lastSwaps = s
		gs.OnMetaEvent(gs.Tick, "role_swap")
	}
	if c := gs.Meta.Converges(); c > gs.lastConv {
		gs.lastConv = c
		gs.OnMetaEvent(gs.Tick, "converge")
	}
}

func (gs *GameState) movePlayer() {
	p := gs.Player
	if p.TargetDir == (Vec{}) {
		p.Dir = Vec{}
		return
	}
	step := gs.Config.Gameplay.PlayerStep
	delta := Vec{DX: p.TargetDir.DX * step, DY: p.TargetDir.DY * step}
	if gs.Map.CanMove(p.Pos, delta) {
		p.Pos.X += delta.DX
		p.Pos.Y += delta.DY
		p.Dir = delta
	} else {
		p.Dir = Vec{}
	}
}

func (gs *GameState) eatPellet() {
	tile := gs.Map.TileOf(gs.Player.Pos)
	if gs.Pellets[tile] {
		delete(gs.Pellets, tile)
		gs.Player.Score++
	}
}

func (gs *GameState) captured() bool {
	reach := gs.Config.Board.Tile / 2
	for _, g := range gs.Ghosts {
		if Manhattan(g.Pos, gs.Player.Pos) <= reach {
			return true
		}
	}
	return false
}

func (gs *GameState) endRound(won bool) {
	res := RoundResult{
		Won:       won,
		Score:     gs.Player.Score,
		Ticks:     gs.roundTicks,
		Swaps:     gs.Meta.Swaps(),
		Converges: gs.Meta.Converges(),
	}
	log.Info().
		Bool("won", won).
		Int("score", res.Score).
		Uint64("ticks", res.Ticks).
		Int("swaps", res.Swaps).
		Int("converges", res.Converges).
		Msg("round over")

	if gs.OnRoundEnd != nil {
		gs.OnRoundEnd(res)
	}
	gs.Round++
	gs.resetRound()
}

// Snapshot returns the full world view broadcast to every client.
func (gs *GameState) Snapshot() map[string]interface{} {
	gs.Mutex.RLock()
	defer gs.Mutex.RUnlock()

	ghosts := make([]Ghost, 0, len(gs.Ghosts))
	for _, id := range GhostIDs() {
		if g, ok := gs.Ghosts[id]; ok {
			ghosts = append(ghosts, *g)
		}
	}
	pellets := make([]Point, 0, len(gs.Pellets))
	for tile := range gs.Pellets {
		pellets = append(pellets, tile)
	}

	snap := map[string]interface{}{
		"tick":    gs.Tick,
		"round":   gs.Round,
		"ghosts":  ghosts,
		"pellets": pellets,
	}
	if gs.Player != nil {
		p := *gs.Player
		snap["player"] = p
	}
	return snap
}

// MapInfo is sent once per join (message 3001).
func (gs *GameState) MapInfo() map[string]interface{} {
	gs.Mutex.RLock()
	defer gs.Mutex.RUnlock()

	info := map[string]interface{}{
		"map_width":  gs.Map.Width,
		"map_height": gs.Map.Height,
		"tile":       gs.Map.Tile,
		"map_tiles":  gs.Map.Tiles,
	}
	if gs.Player != nil {
		info["spawn_pos"] = gs.Player.Pos
	}
	return info
}
