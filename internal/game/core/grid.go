package core

import "iter"

const (
	HalfWidth  = 8
	HalfHeight = 4

	// Columns and Rows are the real grid dimensions
	Columns = HalfWidth * 2
	Rows    = HalfHeight * 2

	// CellCount is the number of addressable cells
	CellCount = Columns * Rows

	// GridSize includes the trailing sentinel slot
	GridSize = CellCount + 1

	// Sentinel is the index every out-of-range coordinate maps to
	Sentinel = GridSize - 1
)

// TileChange records the new value of one cell
type TileChange struct {
	Position Coordinate `msgpack:"position"`
	Tile     Tile       `msgpack:"tile"`
}

// Grid is the canonical board. Reads through the sentinel always return the
// empty tile and writes through it are dropped, so callers never need to
// bounds-check.
type Grid struct {
	cells [GridSize]Tile
}

// NewGrid returns an empty grid with both bases placed
func NewGrid() *Grid {
	g := &Grid{}
	g.MakeBase(Red)
	g.MakeBase(Blue)
	return g
}

// NewEmptyGrid returns a grid with no bases, for tests and decoding
func NewEmptyGrid() *Grid {
	return &Grid{}
}

// Index converts a coordinate into a cell index, or Sentinel when out of bounds.
// This is the only place bounds are checked.
func Index(c Coordinate) int {
	if !c.InBounds() {
		return Sentinel
	}
	return (c.Y+HalfHeight)*Columns + (c.X + HalfWidth)
}

// FromIndex is the inverse of Index for idx in [0, CellCount)
func FromIndex(idx int) Coordinate {
	return Coordinate{
		X: idx%Columns - HalfWidth,
		Y: idx/Columns - HalfHeight,
	}
}

// BaseCoordinate returns the fixed corner holding p's base
func BaseCoordinate(p Player) Coordinate {
	if p == Blue {
		return Coordinate{X: HalfWidth - 1, Y: HalfHeight - 1}
	}
	return Coordinate{X: -HalfWidth, Y: -HalfHeight}
}

// Get returns the tile at c. It never fails.
func (g *Grid) Get(c Coordinate) Tile {
	idx := Index(c)
	if idx == Sentinel {
		return Tile{}
	}
	return g.cells[idx]
}

// Set overwrites the tile at c
func (g *Grid) Set(c Coordinate, t Tile) {
	idx := Index(c)
	if idx == Sentinel {
		return
	}
	g.cells[idx] = t
}

// Capture hands the cell to p as a fresh level 1 Tile with the terrain's base
// health, whatever was there before.
func (g *Grid) Capture(c Coordinate, p Player) {
	terrain := g.Get(c).Terrain
	g.Set(c, OccupiedTile(RoleTile, terrain, p, 1, terrain.BaseHealth()))
}

// Damage removes n hp from the cell and returns what is left
func (g *Grid) Damage(c Coordinate, n int) int {
	t := g.Get(c).Damaged(n)
	g.Set(c, t)
	return t.HP
}

// Upgrade raises level and hp by one. No-op on empty cells.
func (g *Grid) Upgrade(c Coordinate) {
	g.Set(c, g.Get(c).Upgraded())
}

// Empty clears the occupant, keeping the terrain
func (g *Grid) Empty(c Coordinate) {
	g.Set(c, g.Get(c).Emptied())
}

// MakeBase places p's base at its corner
func (g *Grid) MakeBase(p Player) {
	g.Set(BaseCoordinate(p), OccupiedTile(RoleBase, TerrainNone, p, 1, 2))
}

// Cells iterates over every addressable cell in index order
func (g *Grid) Cells() iter.Seq2[Coordinate, Tile] {
	return func(yield func(Coordinate, Tile) bool) {
		for i := 0; i < CellCount; i++ {
			if !yield(FromIndex(i), g.cells[i]) {
				return
			}
		}
	}
}

// Snapshot copies the addressable cells in index order
func (g *Grid) Snapshot() []Tile {
	out := make([]Tile, CellCount)
	copy(out, g.cells[:CellCount])
	return out
}

// GridFromSnapshot rebuilds a grid from Snapshot output. Missing trailing
// cells are left empty and extra ones are ignored.
func GridFromSnapshot(tiles []Tile) *Grid {
	g := &Grid{}
	copy(g.cells[:CellCount], tiles)
	return g
}
