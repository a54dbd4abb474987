package game

import "github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"

// Selection is the attack origin a player picked with ToggleSelect
type Selection struct {
	Origin core.Coordinate
	Level  int
}

// TurnState tracks whose turn it is, the in-game phase and the selection
type TurnState struct {
	Player    core.Player
	Phase     core.GamePhase
	Selection *Selection
}

// NewTurnState starts with Red placing terrain
func NewTurnState() TurnState {
	return TurnState{Player: core.Red, Phase: core.PhaseTerrainPlacement}
}

// Flip passes the turn to the other player
func (ts *TurnState) Flip() {
	ts.Player = ts.Player.Other()
}

func (ts *TurnState) Select(origin core.Coordinate, level int) {
	ts.Selection = &Selection{Origin: origin, Level: level}
}

func (ts *TurnState) ClearSelection() {
	ts.Selection = nil
}

// EndPlacement handles the current player ending terrain placement. Red
// ending only passes the turn; Blue ending also starts the game. It reports
// whether the phase changed.
func (ts *TurnState) EndPlacement() bool {
	if ts.Phase != core.PhaseTerrainPlacement {
		return false
	}
	started := ts.Player == core.Blue
	if started {
		ts.Phase = core.PhaseGame
	}
	ts.Flip()
	return started
}
