package logic

import "testing"

func blockedOracle(Point, Vec) bool { return false }

func allowOnly(allowed ...Vec) CanMoveFunc {
	return func(_ Point, delta Vec) bool {
		for _, a := range allowed {
			if delta == a {
				return true
			}
		}
		return false
	}
}

func allowAll(Point, Vec) bool { return true }

func newTestAI(t *testing.T) *GhostAI {
	t.Helper()
	return NewGhostAI(DefaultGameConfig())
}

func TestDecideReturnsFreeCandidate(t *testing.T) {
	ai := newTestAI(t)
	ghost := GhostState{Pos: Point{X: 300, Y: 300}}
	player := PlayerState{Pos: Point{X: 100, Y: 100}}

	t.Run("single free move is forced", func(t *testing.T) {
		right := Vec{DX: 15}
		got := ai.Decide(RoleChase, Blinky, ghost, player, nil, allowOnly(right), nil)
		if got != right {
			t.Errorf("expected %v, got %v", right, got)
		}
	})

	t.Run("result is one of the free candidates", func(t *testing.T) {
		candidates := map[Vec]bool{
			{DX: -15}: true,
			{DX: 15}:  true,
			{DY: -15}: true,
			{DY: 15}:  true,
		}
		for i := 0; i < 50; i++ {
			got := ai.Decide(RoleIntercept, Inky, ghost, player, nil, allowAll, nil)
			if !candidates[got] {
				t.Fatalf("iteration %d: %v is not a legal candidate", i, got)
			}
		}
	})
}

func TestDecideIdlesWhenFullyBlocked(t *testing.T) {
	ai := newTestAI(t)
	ghost := GhostState{Pos: Point{X: 300, Y: 300}, Dir: Vec{DX: 15}}
	player := PlayerState{Pos: Point{X: 100, Y: 100}}

	for i := 0; i < 5; i++ {
		got := ai.Decide(RoleChase, Blinky, ghost, player, nil, blockedOracle, nil)
		if got != (Vec{}) {
			t.Fatalf("iteration %d: expected zero displacement, got %v", i, got)
		}
	}
}

func TestReversalPenaltyAvoidsReverse(t *testing.T) {
	ai := newTestAI(t)
	// Moving right; the target sits behind, so reversing would be closer,
	// but the penalty must dominate at chase weights.
	ghost := GhostState{Pos: Point{X: 300, Y: 300}, Dir: Vec{DX: 15}}
	player := PlayerState{Pos: Point{X: 100, Y: 300}}

	got := ai.Decide(RoleChase, Blinky, ghost, player, nil, allowOnly(Vec{DX: -15}, Vec{DX: 15}), nil)
	if got != (Vec{DX: 15}) {
		t.Errorf("expected forward move despite farther target, got %v", got)
	}
}

func TestReversalChosenWhenOnlyMove(t *testing.T) {
	ai := newTestAI(t)
	ghost := GhostState{Pos: Point{X: 300, Y: 300}, Dir: Vec{DX: 15}}
	player := PlayerState{Pos: Point{X: 100, Y: 300}}

	got := ai.Decide(RoleChase, Blinky, ghost, player, nil, allowOnly(Vec{DX: -15}), nil)
	if got != (Vec{DX: -15}) {
		t.Errorf("sole reverse move must still be taken, got %v", got)
	}
}

func TestAmbushTarget(t *testing.T) {
	ai := newTestAI(t)
	ghost := GhostState{Pos: Point{X: 0, Y: 0}}

	t.Run("projects four tiles ahead", func(t *testing.T) {
		player := PlayerState{Pos: Point{X: 100, Y: 100}, Dir: Vec{DX: 30}}
		got := ai.computeTarget(RoleAmbush, Pinky, ghost, player, nil)
		want := Point{X: 220, Y: 100}
		if got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("zero facing targets the player", func(t *testing.T) {
		player := PlayerState{Pos: Point{X: 100, Y: 100}}
		got := ai.computeTarget(RoleAmbush, Pinky, ghost, player, nil)
		if got != player.Pos {
			t.Errorf("expected %v, got %v", player.Pos, got)
		}
	})
}

func TestInterceptTarget(t *testing.T) {
	ai := newTestAI(t)
	ghost := GhostState{Pos: Point{X: 0, Y: 0}}
	player := PlayerState{Pos: Point{X: 100, Y: 100}, Dir: Vec{DX: 30}}

	t.Run("reflects the reference through the ahead point", func(t *testing.T) {
		ref := &GhostState{Pos: Point{X: 100, Y: 100}}
		got := ai.computeTarget(RoleIntercept, Inky, ghost, player, ref)
		want := Point{X: 220, Y: 100}
		if got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("falls back to the ahead point without a reference", func(t *testing.T) {
		got := ai.computeTarget(RoleIntercept, Inky, ghost, player, nil)
		want := Point{X: 160, Y: 100}
		if got != want {
			t.Errorf("expected %v, got %v", want, got)
		}
	})
}

func TestHerderDistanceGate(t *testing.T) {
	ai := newTestAI(t)
	scatter := ai.scatter[Clyde]

	cases := []struct {
		name   string
		player Point
		want   Point
		chase  bool
	}{
		{"beyond six tiles chases", Point{X: 181, Y: 0}, Point{X: 181, Y: 0}, true},
		{"inside six tiles retreats", Point{X: 179, Y: 0}, scatter, false},
		{"exactly six tiles retreats", Point{X: 180, Y: 0}, scatter, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ghost := GhostState{Pos: Point{X: 0, Y: 0}}
			got := ai.computeTarget(RoleHerder, Clyde, ghost, PlayerState{Pos: tc.player}, nil)
			if got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestHerderUsesOwnScatterCorner(t *testing.T) {
	ai := newTestAI(t)
	ghost := GhostState{Pos: Point{X: 0, Y: 0}}
	player := PlayerState{Pos: Point{X: 30, Y: 0}}

	got := ai.computeTarget(RoleHerder, Pinky, ghost, player, nil)
	if got != ai.scatter[Pinky] {
		t.Errorf("expected pinky corner %v, got %v", ai.scatter[Pinky], got)
	}
}

func TestConvergeTargetsPlayer(t *testing.T) {
	ai := newTestAI(t)
	ghost := GhostState{Pos: Point{X: 0, Y: 0}}
	player := PlayerState{Pos: Point{X: 250, Y: 310}, Dir: Vec{DY: 30}}

	got := ai.computeTarget(RoleConverge, Blinky, ghost, player, nil)
	if got != player.Pos {
		t.Errorf("expected %v, got %v", player.Pos, got)
	}
}

func TestSeparationAvoidsCrowdedMove(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.AI.Weights = map[string]Weights{
		"chase": {Dist: 1.0, Reverse: 0.0, Separation: 5.0, Jitter: 0.0},
	}
	ai := NewGhostAI(cfg)

	// Up and down are equidistant from the target; another ghost sits
	// exactly on the up candidate.
	ghost := GhostState{Pos: Point{X: 300, Y: 300}}
	player := PlayerState{Pos: Point{X: 300, Y: 300}}
	others := []Point{{X: 300, Y: 285}}

	got := ai.Decide(RoleChase, Blinky, ghost, player, nil, allowOnly(Vec{DY: -15}, Vec{DY: 15}), others)
	if got != (Vec{DY: 15}) {
		t.Errorf("expected the uncrowded move, got %v", got)
	}
}

func TestSameSeedReplaysIdentically(t *testing.T) {
	cfg := DefaultGameConfig()
	cfg.Board.Seed = 7
	a := NewGhostAI(cfg)
	b := NewGhostAI(cfg)

	ghost := GhostState{Pos: Point{X: 300, Y: 300}}
	player := PlayerState{Pos: Point{X: 120, Y: 480}, Dir: Vec{DX: 30}}
	ref := &GhostState{Pos: Point{X: 90, Y: 90}}

	for i := 0; i < 100; i++ {
		ga := a.Decide(RoleIntercept, Inky, ghost, player, ref, allowAll, []Point{{X: 330, Y: 300}})
		gb := b.Decide(RoleIntercept, Inky, ghost, player, ref, allowAll, []Point{{X: 330, Y: 300}})
		if ga != gb {
			t.Fatalf("iteration %d: decisions diverged (%v vs %v)", i, ga, gb)
		}
		ghost.Pos.X += ga.DX
		ghost.Pos.Y += ga.DY
		ghost.Dir = ga
	}
}
