package testutil

import (
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// C is shorthand for a coordinate literal
func C(x, y int) core.Coordinate {
	return core.Coordinate{X: x, Y: y}
}

// NewGridWith returns a fresh grid with both bases and the given cells set on top
func NewGridWith(tiles map[core.Coordinate]core.Tile) *core.Grid {
	g := core.NewGrid()
	for c, t := range tiles {
		g.Set(c, t)
	}
	return g
}

// OwnedTile returns a Tile cell on plain terrain with hp equal to its level
func OwnedTile(p core.Player, level int) core.Tile {
	return core.OccupiedTile(core.RoleTile, core.TerrainNone, p, level, level)
}

// OwnedFarm returns a level 1 Farm on plain terrain
func OwnedFarm(p core.Player) core.Tile {
	return core.OccupiedTile(core.RoleFarm, core.TerrainNone, p, 1, 1)
}

// Chain fills a row of level 1 tiles for p from x0 to x1 inclusive on row y
func Chain(g *core.Grid, p core.Player, y, x0, x1 int) {
	step := 1
	if x1 < x0 {
		step = -1
	}
	for x := x0; ; x += step {
		g.Set(C(x, y), OwnedTile(p, 1))
		if x == x1 {
			return
		}
	}
}

// Column fills a column of level 1 tiles for p from y0 to y1 inclusive on column x
func Column(g *core.Grid, p core.Player, x, y0, y1 int) {
	step := 1
	if y1 < y0 {
		step = -1
	}
	for y := y0; ; y += step {
		g.Set(C(x, y), OwnedTile(p, 1))
		if y == y1 {
			return
		}
	}
}
