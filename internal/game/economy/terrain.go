package economy

import "github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"

const (
	DefaultMaxMountains = 5
	DefaultMaxWater     = 4
)

// TerrainCounter tracks how many mountains and water cells each player has
// placed during setup, and the placement mode shared by both players.
type TerrainCounter struct {
	MaxMountains int
	MaxWater     int

	Mountains [core.NumPlayers]int
	Water     [core.NumPlayers]int

	mode       core.Terrain
	lastPlaced [core.NumPlayers]core.Terrain
}

// NewTerrainCounter creates a counter with the given caps, in Mountain mode
func NewTerrainCounter(maxMountains, maxWater int) *TerrainCounter {
	return &TerrainCounter{
		MaxMountains: maxMountains,
		MaxWater:     maxWater,
		mode:         core.TerrainMountain,
		lastPlaced:   [core.NumPlayers]core.Terrain{core.TerrainMountain, core.TerrainMountain},
	}
}

// Mode returns the current placement mode
func (tc *TerrainCounter) Mode() core.Terrain { return tc.mode }

// SetMode switches the placement mode
func (tc *TerrainCounter) SetMode(t core.Terrain) { tc.mode = t }

// CanPlace reports whether p still has budget for the current mode
func (tc *TerrainCounter) CanPlace(p core.Player) bool {
	if !p.Valid() {
		return false
	}
	switch tc.mode {
	case core.TerrainMountain:
		return tc.Mountains[p] < tc.MaxMountains
	case core.TerrainWater:
		return tc.Water[p] < tc.MaxWater
	default:
		return true
	}
}

// Record accounts for p writing terrain t. Placing None is an erase and takes
// one back from whichever type p placed last, never going below zero.
func (tc *TerrainCounter) Record(t core.Terrain, p core.Player) {
	if !p.Valid() {
		return
	}
	switch t {
	case core.TerrainMountain:
		tc.Mountains[p]++
		tc.lastPlaced[p] = t
	case core.TerrainWater:
		tc.Water[p]++
		tc.lastPlaced[p] = t
	default:
		switch tc.lastPlaced[p] {
		case core.TerrainWater:
			tc.Water[p] = decrement(tc.Water[p])
		default:
			tc.Mountains[p] = decrement(tc.Mountains[p])
		}
	}
}

func decrement(n int) int {
	if n > 0 {
		return n - 1
	}
	return 0
}
