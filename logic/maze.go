package logic

import "math/rand"

// Tile types
const (
	TileEmpty = 0
	TileWall  = 1
	TileGate  = 2 // ghost-house door: blocks movement like a wall
)

// GameMap is the square tile grid the round is played on. Tiles is indexed
// [y][x] in tile units; agent positions are pixel centers.
type GameMap struct {
	Width  int // tiles per side
	Height int
	Tile   int // pixels per tile
	Tiles  [][]int
}

// NewGameMap generates a bordered grid with density-seeded interior walls,
// a carved ghost house in the middle and open corner cells. Generation is
// deterministic for a given seed.
func NewGameMap(boardSize, tile int, density float64, seed int64) *GameMap {
	rng := rand.New(rand.NewSource(seed))
	side := boardSize / tile
	tiles := make([][]int, side)
	for y := 0; y < side; y++ {
		tiles[y] = make([]int, side)
		for x := 0; x < side; x++ {
			if x == 0 || x == side-1 || y == 0 || y == side-1 {
				tiles[y][x] = TileWall
			} else if rng.Float64() < density {
				tiles[y][x] = TileWall
			}
		}
	}

	m := &GameMap{Width: side, Height: side, Tile: tile, Tiles: tiles}
	m.carveHouse()
	m.carveCorners()
	return m
}

// carveHouse opens a 3x3 region in the middle for the ghost spawn and marks
// the row above it as the gate.
func (m *GameMap) carveHouse() {
	cx, cy := m.Width/2, m.Height/2
	for y := cy - 1; y <= cy+1; y++ {
		for x := cx - 1; x <= cx+1; x++ {
			if m.inBounds(x, y) {
				m.Tiles[y][x] = TileEmpty
			}
		}
	}
	gy := cy - 2
	for x := cx - 1; x <= cx+1; x++ {
		if m.inBounds(x, gy) && gy > 0 {
			m.Tiles[gy][x] = TileGate
		}
	}
}

// carveCorners keeps the four scatter corners reachable.
func (m *GameMap) carveCorners() {
	for _, c := range [][2]int{
		{1, 1},
		{m.Width - 2, 1},
		{1, m.Height - 2},
		{m.Width - 2, m.Height - 2},
	} {
		if m.inBounds(c[0], c[1]) {
			m.Tiles[c[1]][c[0]] = TileEmpty
		}
	}
}

func (m *GameMap) inBounds(tx, ty int) bool {
	return tx >= 0 && tx < m.Width && ty >= 0 && ty < m.Height
}

// TileAt returns the tile type under a pixel position, TileWall when out of
// bounds.
func (m *GameMap) TileAt(p Point) int {
	tx, ty := p.X/m.Tile, p.Y/m.Tile
	if p.X < 0 || p.Y < 0 || !m.inBounds(tx, ty) {
		return TileWall
	}
	return m.Tiles[ty][tx]
}

// CanMove reports whether an agent centered at pos may apply delta. This is
// the move-validity oracle the decision engine consumes: a pure query
// against walls, the gate and the board bounds.
func (m *GameMap) CanMove(pos Point, delta Vec) bool {
	next := Point{X: pos.X + delta.DX, Y: pos.Y + delta.DY}
	return m.TileAt(next) == TileEmpty
}

// TileOf converts a pixel position to tile coordinates.
func (m *GameMap) TileOf(p Point) Point {
	return Point{X: p.X / m.Tile, Y: p.Y / m.Tile}
}

// CenterOf returns the pixel center of a tile.
func (m *GameMap) CenterOf(tx, ty int) Point {
	return Point{X: tx*m.Tile + m.Tile/2, Y: ty*m.Tile + m.Tile/2}
}

// HouseTile reports whether the tile lies in the carved ghost house.
func (m *GameMap) HouseTile(tx, ty int) bool {
	cx, cy := m.Width/2, m.Height/2
	return absInt(tx-cx) <= 1 && absInt(ty-cy) <= 1
}

// RandomSpawnPos picks an open tile outside the ghost house.
func (m *GameMap) RandomSpawnPos(rng *rand.Rand) Point {
	for {
		tx := rng.Intn(m.Width-2) + 1
		ty := rng.Intn(m.Height-2) + 1
		if m.Tiles[ty][tx] == TileEmpty && !m.HouseTile(tx, ty) {
			return m.CenterOf(tx, ty)
		}
	}
}
