package game

import (
	"fmt"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// ActionKind is the type of a validated action
type ActionKind int

const (
	ActionAttack ActionKind = iota
	ActionUpgrade
	ActionMakeFarm
	ActionSelect
	ActionDeselect
	ActionMakeTerrain
	ActionSetTerrainMode
	ActionEndTerrainPlacement
)

func (k ActionKind) String() string {
	switch k {
	case ActionAttack:
		return "Attack"
	case ActionUpgrade:
		return "Upgrade"
	case ActionMakeFarm:
		return "MakeFarm"
	case ActionSelect:
		return "Select"
	case ActionDeselect:
		return "Deselect"
	case ActionMakeTerrain:
		return "MakeTerrain"
	case ActionSetTerrainMode:
		return "SetTerrainMode"
	case ActionEndTerrainPlacement:
		return "EndTerrainPlacement"
	default:
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
}

// Action is an intent that passed validation. Which fields are set depends
// on Kind:
//
//	Attack              Targets
//	Upgrade, MakeFarm   Position
//	Select              Position, Level
//	MakeTerrain         Position, Terrain
//	SetTerrainMode      Terrain
type Action struct {
	Kind     ActionKind
	Player   core.Player
	Position core.Coordinate
	Targets  []core.Coordinate
	Level    int
	Terrain  core.Terrain
}

// TurnEnding reports whether resolving the action passes the turn
func (a Action) TurnEnding() bool {
	switch a.Kind {
	case ActionAttack, ActionUpgrade, ActionMakeFarm, ActionEndTerrainPlacement:
		return true
	default:
		return false
	}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionAttack:
		return fmt.Sprintf("%s %s %v", a.Player, a.Kind, a.Targets)
	case ActionSelect:
		return fmt.Sprintf("%s %s %s level %d", a.Player, a.Kind, a.Position, a.Level)
	case ActionMakeTerrain:
		return fmt.Sprintf("%s %s %s %s", a.Player, a.Kind, a.Position, a.Terrain)
	case ActionSetTerrainMode:
		return fmt.Sprintf("%s %s %s", a.Player, a.Kind, a.Terrain)
	case ActionDeselect, ActionEndTerrainPlacement:
		return fmt.Sprintf("%s %s", a.Player, a.Kind)
	default:
		return fmt.Sprintf("%s %s %s", a.Player, a.Kind, a.Position)
	}
}
