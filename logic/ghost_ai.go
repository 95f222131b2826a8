package logic

import "math/rand"

const (
	ambushLookaheadTiles    = 4
	interceptLookaheadTiles = 2
	herderChaseTiles        = 6.0

	reversePenalty  = 1000.0
	separationScale = 1000.0
	jitterScale     = 50.0
)

// GhostAI scores candidate moves for one ghost per tick. It is stateless
// across ticks except for its owned random source, which advances exactly
// once per candidate evaluated so a fixed seed replays identically.
type GhostAI struct {
	step      int
	tile      int
	boardSize int
	rng       *rand.Rand
	scatter   map[GhostID]Point
	weights   map[Role]Weights
}

// NewGhostAI builds the engine from session configuration. Weights from
// cfg.AI.Weights override the stock per-role tuning.
func NewGhostAI(cfg *GameConfig) *GhostAI {
	size := cfg.Board.Size
	ai := &GhostAI{
		step:      cfg.Gameplay.GhostStep,
		tile:      cfg.Board.Tile,
		boardSize: size,
		rng:       rand.New(rand.NewSource(cfg.Board.Seed)),
		scatter: map[GhostID]Point{
			Blinky: {X: size - 30, Y: 30},        // top-right
			Pinky:  {X: 30, Y: 30},               // top-left
			Inky:   {X: size - 30, Y: size - 30}, // bottom-right
			Clyde:  {X: 30, Y: size - 30},        // bottom-left
		},
		weights: map[Role]Weights{
			RoleChase:     {Dist: 1.0, Reverse: 2.5, Separation: 0.2, Jitter: 0.0},
			RoleAmbush:    {Dist: 1.0, Reverse: 2.0, Separation: 0.2, Jitter: 0.0},
			RoleIntercept: {Dist: 1.0, Reverse: 2.0, Separation: 0.7, Jitter: 0.35},
			RoleHerder:    {Dist: 1.0, Reverse: 2.0, Separation: 0.3, Jitter: 0.05},
			RoleConverge:  {Dist: 1.0, Reverse: 3.0, Separation: 0.4, Jitter: 0.1},
		},
	}
	for name, w := range cfg.AI.Weights {
		if role, ok := RoleFromName(name); ok {
			ai.weights[role] = w
		}
	}
	return ai
}

// Decide picks the displacement for one ghost this tick. id is the ghost's
// fixed identity (scatter corner lookup), role the strategy assigned by the
// meta rules. reference is the intercept anchor (Blinky's state) and may be
// nil. others holds the remaining ghosts' positions for separation. The
// zero Vec is returned when no candidate move is free; that is a normal
// outcome, not an error.
func (ai *GhostAI) Decide(role Role, id GhostID, ghost GhostState, player PlayerState, reference *GhostState, canMove CanMoveFunc, others []Point) Vec {
	moves := ai.possibleMoves(ghost.Pos, canMove)
	if len(moves) == 0 {
		return Vec{}
	}
	target := ai.computeTarget(role, id, ghost, player, reference)
	return ai.chooseBestMove(ghost, moves, target, ai.weightsFor(role), others)
}

func (ai *GhostAI) weightsFor(role Role) Weights {
	if w, ok := ai.weights[role]; ok {
		return w
	}
	return Weights{Dist: 1.0, Reverse: 3.0, Separation: 0.4, Jitter: 0.1}
}

// possibleMoves enumerates the four axis moves in fixed order (left, right,
// up, down) and keeps the ones the oracle allows.
func (ai *GhostAI) possibleMoves(pos Point, canMove CanMoveFunc) []Vec {
	candidates := []Vec{
		{DX: -ai.step},
		{DX: ai.step},
		{DY: -ai.step},
		{DY: ai.step},
	}
	ok := make([]Vec, 0, len(candidates))
	for _, mv := range candidates {
		if canMove(pos, mv) {
			ok = append(ok, mv)
		}
	}
	return ok
}

func (ai *GhostAI) computeTarget(role Role, id GhostID, ghost GhostState, player PlayerState, reference *GhostState) Point {
	pac := player.Pos
	facing := player.Dir.Sign()

	switch role {
	case RoleAmbush:
		return Point{
			X: pac.X + facing.DX*ai.tile*ambushLookaheadTiles,
			Y: pac.Y + facing.DY*ai.tile*ambushLookaheadTiles,
		}

	case RoleIntercept:
		ahead := Point{
			X: pac.X + facing.DX*ai.tile*interceptLookaheadTiles,
			Y: pac.Y + facing.DY*ai.tile*interceptLookaheadTiles,
		}
		if reference == nil {
			return ahead
		}
		// Point reflection of the reference ghost through the ahead point.
		return Point{
			X: 2*ahead.X - reference.Pos.X,
			Y: 2*ahead.Y - reference.Pos.Y,
		}

	case RoleHerder:
		distTiles := float64(Manhattan(ghost.Pos, pac)) / float64(ai.tile)
		if distTiles > herderChaseTiles {
			return pac
		}
		return ai.scatter[id]

	default:
		// RoleChase and RoleConverge both head straight for the player.
		return pac
	}
}

func (ai *GhostAI) chooseBestMove(ghost GhostState, moves []Vec, target Point, w Weights, others []Point) Vec {
	facing := ghost.Dir.Sign()
	reverse := Vec{DX: -facing.DX * ai.step, DY: -facing.DY * ai.step}
	hasReverse := facing != (Vec{})

	best := moves[0]
	bestScore := 0.0
	for i, mv := range moves {
		next := Point{X: ghost.Pos.X + mv.DX, Y: ghost.Pos.Y + mv.DY}

		d := float64(Manhattan(next, target))

		revPen := 0.0
		// Never penalize reversal when it is the only legal move.
		if hasReverse && mv == reverse && len(moves) > 1 {
			revPen = reversePenalty
		}

		sepPen := 0.0
		for _, o := range others {
			sepPen += 1.0 / (float64(Manhattan(next, o)) + 1.0)
		}

		jitter := ai.rng.Float64()

		score := w.Dist*d +
			w.Reverse*revPen +
			w.Separation*sepPen*separationScale +
			w.Jitter*jitter*jitterScale

		// Strict less-than keeps the first-seen move on ties.
		if i == 0 || score < bestScore {
			best = mv
			bestScore = score
		}
	}
	return best
}
