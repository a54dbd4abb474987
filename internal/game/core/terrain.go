package core

import "fmt"

// Terrain is the ground type of a cell. It survives ownership changes.
type Terrain int

const (
	TerrainNone Terrain = iota
	TerrainWater
	TerrainMountain
)

// BaseHealth is the hp a cell gets when captured on this terrain
func (t Terrain) BaseHealth() int {
	switch t {
	case TerrainWater:
		return 0
	case TerrainMountain:
		return 2
	default:
		return 1
	}
}

func (t Terrain) String() string {
	switch t {
	case TerrainNone:
		return "None"
	case TerrainWater:
		return "Water"
	case TerrainMountain:
		return "Mountain"
	default:
		return fmt.Sprintf("Terrain(%d)", int(t))
	}
}

// GamePhase is the in-match phase. It only ever moves forward.
type GamePhase int

const (
	PhaseTerrainPlacement GamePhase = iota
	PhaseGame
)

func (p GamePhase) String() string {
	switch p {
	case PhaseTerrainPlacement:
		return "TerrainPlacement"
	case PhaseGame:
		return "Game"
	default:
		return fmt.Sprintf("GamePhase(%d)", int(p))
	}
}
