package game

import (
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/rules"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/protocol"
)

// Validate turns an intent into an action without touching any state. The
// sender must be seated and own the turn; anything else is rejected with a
// single debug line and no feedback to the client.
func (gs *GameState) Validate(in protocol.Intent) (Action, bool) {
	p, seated := gs.seats[in.ClientID]
	if !seated || p != gs.turn.Player {
		return gs.reject(in, "not the sender's turn")
	}

	var (
		a      Action
		ok     bool
		reason string
	)
	switch gs.turn.Phase {
	case core.PhaseGame:
		a, ok, reason = gs.validateGame(p, in)
	case core.PhaseTerrainPlacement:
		a, ok, reason = gs.validatePlacement(p, in)
	}
	if !ok {
		return gs.reject(in, reason)
	}
	a.Player = p
	return a, true
}

func (gs *GameState) reject(in protocol.Intent, reason string) (Action, bool) {
	gs.logger.Debug().
		Uint64("client_id", in.ClientID).
		Str("intent", in.Kind.String()).
		Str("input", in.Input.String()).
		Str("position", in.Position.String()).
		Str("reason", reason).
		Msg("Intent rejected")
	return Action{}, false
}

func (gs *GameState) validateGame(p core.Player, in protocol.Intent) (Action, bool, string) {
	pos := in.Position

	switch in.Kind {
	case protocol.IntentToggleSelect:
		if gs.turn.Selection != nil {
			return Action{Kind: ActionDeselect}, true, ""
		}
		t := gs.grid.Get(pos)
		if t.Is(core.RoleTile, p) {
			return Action{Kind: ActionSelect, Position: pos, Level: t.Level}, true, ""
		}
		return Action{}, false, "only own tiles can be selected"

	case protocol.IntentTileAction:
		if !pos.InBounds() {
			return Action{}, false, "position out of bounds"
		}
		t := gs.grid.Get(pos)
		available := gs.economy.AvailableFor(p)

		switch {
		case in.Input.IsMouse(protocol.MouseRight):
			if t.Is(core.RoleTile, p) {
				return Action{Kind: ActionMakeFarm, Position: pos}, true, ""
			}
			return Action{}, false, "farms are built on own tiles"

		case in.Input.IsMouse(protocol.MouseLeft):
			if (t.Is(core.RoleTile, p) && available >= 1) || t.Is(core.RoleFarm, p) {
				return Action{Kind: ActionUpgrade, Position: pos}, true, ""
			}
			targets := gs.attackTargets(p, pos)
			if len(targets) == 0 {
				return Action{}, false, "no attackable targets"
			}
			if len(targets) > available {
				return Action{}, false, "not enough economy for every target"
			}
			return Action{Kind: ActionAttack, Targets: targets}, true, ""
		}
		return Action{}, false, "keys do nothing in play"
	}

	return Action{}, false, "terrain actions are over"
}

// attackTargets resolves the origin and shape for an attack on pos. With no
// selection any neighbour p holds may serve as origin, using the level 1 shape.
func (gs *GameState) attackTargets(p core.Player, pos core.Coordinate) []core.Coordinate {
	var (
		origin core.Coordinate
		level  int
	)
	if sel := gs.turn.Selection; sel != nil {
		origin, level = sel.Origin, sel.Level
	} else {
		var found bool
		origin, found = gs.grid.AnyConnectedNeighbor(pos, p)
		if !found {
			return nil
		}
		level = 1
	}

	shape := rules.AttackShape(origin, pos, level)
	if shape == nil {
		return nil
	}
	return rules.AttackableTargets(gs.grid, p, shape)
}

func (gs *GameState) validatePlacement(p core.Player, in protocol.Intent) (Action, bool, string) {
	if in.Kind != protocol.IntentTerrainAction {
		return Action{}, false, "still placing terrain"
	}
	pos := in.Position

	switch {
	case in.Input.IsMouse(protocol.MouseLeft):
		if !pos.InBounds() || gs.grid.Get(pos).IsOccupied() {
			return Action{}, false, "terrain goes on unowned cells"
		}
		if !gs.terrain.CanPlace(p) {
			return Action{}, false, "terrain budget spent"
		}
		return Action{Kind: ActionMakeTerrain, Position: pos, Terrain: gs.terrain.Mode()}, true, ""

	case in.Input.IsMouse(protocol.MouseRight):
		if !pos.InBounds() || gs.grid.Get(pos).IsOccupied() {
			return Action{}, false, "terrain goes on unowned cells"
		}
		return Action{Kind: ActionMakeTerrain, Position: pos, Terrain: core.TerrainNone}, true, ""

	case in.Input.IsKey(protocol.KeyM):
		return Action{Kind: ActionSetTerrainMode, Terrain: core.TerrainMountain}, true, ""

	case in.Input.IsKey(protocol.KeyW):
		return Action{Kind: ActionSetTerrainMode, Terrain: core.TerrainWater}, true, ""

	case in.Input.IsKey(protocol.KeyReturn):
		return Action{Kind: ActionEndTerrainPlacement}, true, ""
	}

	return Action{}, false, "input does nothing while placing terrain"
}
