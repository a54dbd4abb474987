package game

import (
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/protocol"
)

// Result is everything one applied action produced
type Result struct {
	Action Action
	Events []protocol.ClientEvent

	// Captured lists attack targets that changed hands
	Captured []core.Coordinate
	// Disconnected lists cells the sweep emptied
	Disconnected []core.Coordinate
	// Started is set when terrain placement ended and play began
	Started bool
}

// Apply mutates the state with a validated action and returns the events to
// broadcast
func (gs *GameState) Apply(a Action) []protocol.ClientEvent {
	return gs.Resolve(a).Events
}

// Resolve is Apply with the details the server needs for its own bookkeeping.
// The grid, turn and counters are consistent again when it returns.
func (gs *GameState) Resolve(a Action) Result {
	res := Result{Action: a}

	switch a.Kind {
	case ActionAttack:
		changes := make([]core.TileChange, 0, len(a.Targets))
		for _, target := range a.Targets {
			hp := gs.grid.Damage(target, 1)
			if hp == 0 || gs.grid.Get(target).Role == core.RoleFarm {
				gs.grid.Capture(target, a.Player)
				res.Captured = append(res.Captured, target)
			}
			changes = append(changes, core.TileChange{Position: target, Tile: gs.grid.Get(target)})
		}
		for _, ch := range gs.grid.SweepDisconnected() {
			changes = append(changes, ch)
			res.Disconnected = append(res.Disconnected, ch.Position)
		}
		res.Events = gs.endTurn(changes)

	case ActionUpgrade:
		gs.grid.Upgrade(a.Position)
		res.Events = gs.endTurn(gs.changeAt(a.Position))

	case ActionMakeFarm:
		terrain := gs.grid.Get(a.Position).Terrain
		gs.grid.Set(a.Position, core.OccupiedTile(core.RoleFarm, terrain, a.Player, 1, 1))
		res.Events = gs.endTurn(gs.changeAt(a.Position))

	case ActionSelect:
		gs.turn.Select(a.Position, a.Level)
		res.Events = []protocol.ClientEvent{protocol.Select{Position: a.Position}}

	case ActionDeselect:
		gs.turn.ClearSelection()
		res.Events = []protocol.ClientEvent{protocol.Deselect{}}

	case ActionMakeTerrain:
		gs.grid.Set(a.Position, core.EmptyTile(a.Terrain))
		gs.terrain.Record(a.Terrain, a.Player)
		res.Events = []protocol.ClientEvent{protocol.TileChanges{Changes: gs.changeAt(a.Position)}}

	case ActionSetTerrainMode:
		gs.terrain.SetMode(a.Terrain)
		res.Events = []protocol.ClientEvent{protocol.TerrainMode{Terrain: a.Terrain}}

	case ActionEndTerrainPlacement:
		if gs.turn.EndPlacement() {
			res.Started = true
			gs.economy.Recompute(gs.grid)
			res.Events = []protocol.ClientEvent{
				protocol.GamePhase{Phase: gs.turn.Phase},
				protocol.Turn{Player: gs.turn.Player},
				protocol.Farms{Counts: gs.economy.Available()},
			}
		} else {
			res.Events = []protocol.ClientEvent{protocol.Turn{Player: gs.turn.Player}}
		}
	}

	gs.logger.Debug().
		Str("action", a.String()).
		Int("events", len(res.Events)).
		Int("captured", len(res.Captured)).
		Int("disconnected", len(res.Disconnected)).
		Msg("Action applied")

	return res
}

func (gs *GameState) changeAt(pos core.Coordinate) []core.TileChange {
	return []core.TileChange{{Position: pos, Tile: gs.grid.Get(pos)}}
}

// endTurn finishes an Attack, Upgrade or MakeFarm
func (gs *GameState) endTurn(changes []core.TileChange) []protocol.ClientEvent {
	gs.turn.Flip()
	gs.economy.Recompute(gs.grid)
	gs.turn.ClearSelection()

	return []protocol.ClientEvent{
		protocol.TileChanges{Changes: changes},
		protocol.Turn{Player: gs.turn.Player},
		protocol.Farms{Counts: gs.economy.Available()},
		protocol.Deselect{},
	}
}
