package logic

import "fmt"

// Point is an integer pixel position (agent or player center) on the board.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vec is a per-tick displacement in pixels. The zero Vec means the agent
// holds its position this tick.
type Vec struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// Sign returns the axis-wise sign normalization of v: each component is
// -1, 0 or 1. Applied to the last nonzero displacement it yields the facing.
func (v Vec) Sign() Vec {
	return Vec{DX: sign(v.DX), DY: sign(v.DY)}
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

// Manhattan returns |a.X-b.X| + |a.Y-b.Y| in pixels.
func Manhattan(a, b Point) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// GhostID is one of the four fixed ghost identities. Identity is stable for
// a session; the strategy it runs on a given tick is its Role.
type GhostID int

const (
	Blinky GhostID = iota
	Pinky
	Inky
	Clyde
)

var ghostIDNames = [...]string{"blinky", "pinky", "inky", "clyde"}

func (id GhostID) String() string {
	if id < 0 || int(id) >= len(ghostIDNames) {
		return fmt.Sprintf("ghost(%d)", int(id))
	}
	return ghostIDNames[id]
}

func (id GhostID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + id.String() + `"`), nil
}

// GhostIDs returns the fixed identity ordering used for role rotation.
func GhostIDs() []GhostID {
	return []GhostID{Blinky, Pinky, Inky, Clyde}
}

// Role is the targeting strategy assigned to an identity for the current
// tick. RoleConverge is the meta-rule override.
type Role int

const (
	RoleChase Role = iota
	RoleAmbush
	RoleIntercept
	RoleHerder
	RoleConverge
)

var roleNames = [...]string{"chase", "ambush", "intercept", "herder", "converge"}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("role(%d)", int(r))
	}
	return roleNames[r]
}

func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// RoleFromName maps a config key to a Role.
func RoleFromName(name string) (Role, bool) {
	for i, n := range roleNames {
		if n == name {
			return Role(i), true
		}
	}
	return RoleChase, false
}

// Weights tunes the move-scoring terms for one role. All coefficients are
// non-negative.
type Weights struct {
	Dist       float64 `json:"dist"`
	Reverse    float64 `json:"reverse"`
	Separation float64 `json:"separation"`
	Jitter     float64 `json:"jitter"`
}

// GhostState is the per-agent input to the decision engine.
type GhostState struct {
	Pos Point
	Dir Vec // displacement applied last tick; zero if idle
}

// PlayerState is the player input to the decision engine.
type PlayerState struct {
	Pos Point
	Dir Vec
}

// CanMoveFunc reports whether an agent at pos may apply delta without
// colliding with a wall or the ghost-house gate. Must be a pure query: the
// agent's actual position is unchanged by the call.
type CanMoveFunc func(pos Point, delta Vec) bool

// GameConfig mirrors game_config.json.
type GameConfig struct {
	Server struct {
		TickRateMs int `json:"tick_rate_ms"`
	} `json:"server"`
	Board struct {
		Size        int     `json:"size"` // square side, pixels
		Tile        int     `json:"tile"` // logic cell, pixels
		WallDensity float64 `json:"wall_density"`
		Seed        int64   `json:"seed"`
	} `json:"board"`
	Gameplay struct {
		GhostStep  int `json:"ghost_step"`  // ghost pixels per tick
		PlayerStep int `json:"player_step"` // player pixels per tick
	} `json:"gameplay"`
	AI struct {
		Weights map[string]Weights `json:"weights"` // keyed by role name
	} `json:"ai"`
	Rules struct {
		RoleSwap RoleSwapConfig `json:"role_swap"`
		Converge ConvergeConfig `json:"converge"`
	} `json:"rules"`
}

// DefaultGameConfig returns the stock configuration used when no
// game_config.json is provided.
func DefaultGameConfig() *GameConfig {
	cfg := &GameConfig{}
	cfg.Server.TickRateMs = 100
	cfg.Board.Size = 606
	cfg.Board.Tile = 30
	cfg.Board.WallDensity = 0.12
	cfg.Board.Seed = 1
	cfg.Gameplay.GhostStep = 15
	cfg.Gameplay.PlayerStep = 30
	cfg.AI.Weights = map[string]Weights{}
	cfg.Rules.RoleSwap = DefaultRoleSwapConfig()
	cfg.Rules.Converge = DefaultConvergeConfig()
	return cfg
}
