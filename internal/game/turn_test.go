package game

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

func TestTurnState(t *testing.T) {
	ts := NewTurnState()
	assert.Equal(t, core.Red, ts.Player)
	assert.Equal(t, core.PhaseTerrainPlacement, ts.Phase)

	ts.Flip()
	assert.Equal(t, core.Blue, ts.Player)
	ts.Flip()
	assert.Equal(t, core.Red, ts.Player)

	ts.Select(core.Coordinate{X: 1, Y: 2}, 3)
	assert.Equal(t, &Selection{Origin: core.Coordinate{X: 1, Y: 2}, Level: 3}, ts.Selection)
	ts.ClearSelection()
	assert.Nil(t, ts.Selection)
}

func TestEndPlacement(t *testing.T) {
	ts := NewTurnState()

	assert.False(t, ts.EndPlacement(), "red ending only passes the turn")
	assert.Equal(t, core.Blue, ts.Player)
	assert.Equal(t, core.PhaseTerrainPlacement, ts.Phase)

	assert.True(t, ts.EndPlacement())
	assert.Equal(t, core.Red, ts.Player)
	assert.Equal(t, core.PhaseGame, ts.Phase)

	assert.False(t, ts.EndPlacement(), "no-op once the game runs")
	assert.Equal(t, core.Red, ts.Player)
}

func TestAction(t *testing.T) {
	tests := []struct {
		action     Action
		turnEnding bool
		str        string
	}{
		{Action{Kind: ActionAttack, Player: core.Red, Targets: []core.Coordinate{{X: 1, Y: 0}}}, true, "red Attack [(1,0)]"},
		{Action{Kind: ActionUpgrade, Player: core.Blue, Position: core.Coordinate{X: 2, Y: 2}}, true, "blue Upgrade (2,2)"},
		{Action{Kind: ActionMakeFarm, Player: core.Red}, true, "red MakeFarm (0,0)"},
		{Action{Kind: ActionSelect, Player: core.Red, Level: 2}, false, "red Select (0,0) level 2"},
		{Action{Kind: ActionDeselect, Player: core.Red}, false, "red Deselect"},
		{Action{Kind: ActionMakeTerrain, Player: core.Red, Terrain: core.TerrainWater}, false, "red MakeTerrain (0,0) Water"},
		{Action{Kind: ActionSetTerrainMode, Player: core.Blue, Terrain: core.TerrainMountain}, false, "blue SetTerrainMode Mountain"},
		{Action{Kind: ActionEndTerrainPlacement, Player: core.Blue}, true, "blue EndTerrainPlacement"},
	}

	for _, tt := range tests {
		t.Run(tt.action.Kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.turnEnding, tt.action.TurnEnding())
			assert.Equal(t, tt.str, tt.action.String())
		})
	}
}
