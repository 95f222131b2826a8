package logic

import (
	"math/rand"
	"testing"
)

func TestMapBordersAreWalls(t *testing.T) {
	m := NewGameMap(606, 30, 0.2, 42)
	for x := 0; x < m.Width; x++ {
		if m.Tiles[0][x] != TileWall || m.Tiles[m.Height-1][x] != TileWall {
			t.Fatalf("border not walled at column %d", x)
		}
	}
	for y := 0; y < m.Height; y++ {
		if m.Tiles[y][0] != TileWall || m.Tiles[y][m.Width-1] != TileWall {
			t.Fatalf("border not walled at row %d", y)
		}
	}
}

func TestMapGenerationIsDeterministic(t *testing.T) {
	a := NewGameMap(606, 30, 0.3, 7)
	b := NewGameMap(606, 30, 0.3, 7)
	for y := range a.Tiles {
		for x := range a.Tiles[y] {
			if a.Tiles[y][x] != b.Tiles[y][x] {
				t.Fatalf("maps diverge at (%d,%d) for the same seed", x, y)
			}
		}
	}
}

func TestGhostHouseCarved(t *testing.T) {
	m := NewGameMap(606, 30, 0.4, 99)
	cx, cy := m.Width/2, m.Height/2

	for y := cy - 1; y <= cy+1; y++ {
		for x := cx - 1; x <= cx+1; x++ {
			if m.Tiles[y][x] != TileEmpty {
				t.Errorf("house tile (%d,%d) not carved", x, y)
			}
		}
	}
	for x := cx - 1; x <= cx+1; x++ {
		if m.Tiles[cy-2][x] != TileGate {
			t.Errorf("gate missing at (%d,%d)", x, cy-2)
		}
	}
}

func TestCanMove(t *testing.T) {
	// 3x3 grid: open center, walls around, gate in the north.
	m := &GameMap{
		Width:  3,
		Height: 3,
		Tile:   30,
		Tiles: [][]int{
			{TileWall, TileGate, TileWall},
			{TileWall, TileEmpty, TileWall},
			{TileWall, TileWall, TileWall},
		},
	}
	center := m.CenterOf(1, 1)

	cases := []struct {
		name  string
		delta Vec
		want  bool
	}{
		{"hold position", Vec{}, true},
		{"into west wall", Vec{DX: -30}, false},
		{"into east wall", Vec{DX: 30}, false},
		{"into gate", Vec{DY: -30}, false},
		{"into south wall", Vec{DY: 30}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := m.CanMove(center, tc.delta); got != tc.want {
				t.Errorf("CanMove(%v) = %v, want %v", tc.delta, got, tc.want)
			}
		})
	}

	t.Run("out of bounds is blocked", func(t *testing.T) {
		if m.CanMove(Point{X: 15, Y: 15}, Vec{DX: -30}) {
			t.Error("move off the board must be blocked")
		}
	})
}

func TestCanMoveIsPure(t *testing.T) {
	m := NewGameMap(606, 30, 0.2, 5)
	pos := m.CenterOf(1, 1)
	before := pos
	m.CanMove(pos, Vec{DX: 15})
	if pos != before {
		t.Error("oracle mutated the queried position")
	}
}

func TestRandomSpawnPosAvoidsHouseAndWalls(t *testing.T) {
	m := NewGameMap(606, 30, 0.2, 11)
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		pos := m.RandomSpawnPos(rng)
		tile := m.TileOf(pos)
		if m.Tiles[tile.Y][tile.X] != TileEmpty {
			t.Fatalf("spawn %v landed on a non-empty tile", pos)
		}
		if m.HouseTile(tile.X, tile.Y) {
			t.Fatalf("spawn %v landed in the ghost house", pos)
		}
	}
}
