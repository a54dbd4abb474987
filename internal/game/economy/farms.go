// Package economy derives per-player resource totals from the grid and tracks
// terrain placement budgets during setup.
package economy

import "github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"

// Counters holds the per-player economy. Count is a pure function of the grid
// and is only ever rebuilt by Recompute.
type Counters struct {
	Count  [core.NumPlayers]int
	Points [core.NumPlayers]int
}

// NewCounters returns counters for a grid holding only the two bases
func NewCounters() Counters {
	return Counters{Count: [core.NumPlayers]int{1, 1}}
}

// Recompute rescans the whole grid. Every player starts from one base point
// and gains the level of each Farm and Tile they hold. Points is reset.
func (c *Counters) Recompute(g *core.Grid) {
	c.Count = [core.NumPlayers]int{1, 1}
	c.Points = [core.NumPlayers]int{}

	for _, t := range g.Cells() {
		if !t.IsOccupied() || !t.Owner.Valid() {
			continue
		}
		if t.Role == core.RoleFarm || t.Role == core.RoleTile {
			c.Count[t.Owner] += t.Level
		}
	}
}

// Available returns count minus points for both players
func (c Counters) Available() [core.NumPlayers]int {
	var out [core.NumPlayers]int
	for i := range out {
		out[i] = c.Count[i] - c.Points[i]
	}
	return out
}

// AvailableFor returns the available economy of one player
func (c Counters) AvailableFor(p core.Player) int {
	if !p.Valid() {
		return 0
	}
	return c.Count[p] - c.Points[p]
}
