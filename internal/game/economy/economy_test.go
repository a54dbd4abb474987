package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

func TestNewCounters(t *testing.T) {
	c := NewCounters()
	assert.Equal(t, [core.NumPlayers]int{1, 1}, c.Available())
}

func TestRecompute(t *testing.T) {
	g := core.NewGrid()
	g.Set(core.Coordinate{X: -7, Y: -4}, core.OccupiedTile(core.RoleTile, core.TerrainNone, core.Red, 2, 2))
	g.Set(core.Coordinate{X: -6, Y: -4}, core.OccupiedTile(core.RoleFarm, core.TerrainNone, core.Red, 3, 3))
	g.Set(core.Coordinate{X: 6, Y: 3}, core.OccupiedTile(core.RoleTile, core.TerrainMountain, core.Blue, 1, 2))

	c := NewCounters()
	c.Points = [core.NumPlayers]int{4, 4}
	c.Recompute(g)

	assert.Equal(t, [core.NumPlayers]int{6, 2}, c.Count, "base level is not counted, only the base point")
	assert.Equal(t, [core.NumPlayers]int{0, 0}, c.Points)
	assert.Equal(t, [core.NumPlayers]int{6, 2}, c.Available())
	assert.Equal(t, 6, c.AvailableFor(core.Red))
	assert.Equal(t, 0, c.AvailableFor(core.Player(9)))
}

func TestRecomputeIsFullRescan(t *testing.T) {
	g := core.NewGrid()
	g.Capture(core.Coordinate{X: -7, Y: -4}, core.Red)

	c := NewCounters()
	c.Recompute(g)
	c.Recompute(g)
	assert.Equal(t, 2, c.Count[core.Red])

	g.Empty(core.Coordinate{X: -7, Y: -4})
	c.Recompute(g)
	assert.Equal(t, 1, c.Count[core.Red])
}

func TestTerrainCounterCaps(t *testing.T) {
	tc := NewTerrainCounter(2, 1)
	assert.Equal(t, core.TerrainMountain, tc.Mode())

	assert.True(t, tc.CanPlace(core.Red))
	tc.Record(core.TerrainMountain, core.Red)
	tc.Record(core.TerrainMountain, core.Red)
	assert.False(t, tc.CanPlace(core.Red))
	assert.True(t, tc.CanPlace(core.Blue), "caps are per player")

	tc.SetMode(core.TerrainWater)
	assert.True(t, tc.CanPlace(core.Red))
	tc.Record(core.TerrainWater, core.Red)
	assert.False(t, tc.CanPlace(core.Red))

	tc.SetMode(core.TerrainNone)
	assert.True(t, tc.CanPlace(core.Red))
	assert.False(t, tc.CanPlace(core.Player(-1)))
}

func TestTerrainCounterErase(t *testing.T) {
	tests := []struct {
		name          string
		placed        []core.Terrain
		wantMountains int
		wantWater     int
	}{
		{"erase with nothing placed saturates", nil, 0, 0},
		{"erase after mountain", []core.Terrain{core.TerrainMountain}, 0, 0},
		{"erase after water", []core.Terrain{core.TerrainMountain, core.TerrainWater}, 1, 0},
		{"erase after water then mountain", []core.Terrain{core.TerrainWater, core.TerrainMountain, core.TerrainMountain}, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := NewTerrainCounter(DefaultMaxMountains, DefaultMaxWater)
			for _, terrain := range tt.placed {
				tc.Record(terrain, core.Blue)
			}
			tc.Record(core.TerrainNone, core.Blue)

			assert.Equal(t, tt.wantMountains, tc.Mountains[core.Blue])
			assert.Equal(t, tt.wantWater, tc.Water[core.Blue])
			assert.Equal(t, 0, tc.Mountains[core.Red])
		})
	}
}
