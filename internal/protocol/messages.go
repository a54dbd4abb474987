package protocol

import (
	"fmt"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// IntentKind is the client to server message type
type IntentKind uint8

const (
	IntentTileAction IntentKind = iota
	IntentToggleSelect
	IntentTerrainAction
)

func (k IntentKind) String() string {
	switch k {
	case IntentTileAction:
		return "TileAction"
	case IntentToggleSelect:
		return "ToggleSelect"
	case IntentTerrainAction:
		return "TerrainAction"
	default:
		return fmt.Sprintf("IntentKind(%d)", int(k))
	}
}

// Intent is a client request. ToggleSelect carries no Input.
type Intent struct {
	Kind     IntentKind      `msgpack:"-"`
	ClientID uint64          `msgpack:"client_id"`
	Position core.Coordinate `msgpack:"position"`
	Input    Input           `msgpack:"input"`
}

// Server to client message types
const (
	TypeInit        = "init"
	TypeTileChanges = "tile_changes"
	TypeSelect      = "select"
	TypeDeselect    = "deselect"
	TypeTurn        = "turn"
	TypeTerrainMode = "terrain_mode"
	TypeFarms       = "farms"
	TypeGamePhase   = "game_phase"
	TypeGameOver    = "game_over"
	TypeWelcome     = "welcome"
)

// Client to server message types
const (
	TypeTileAction    = "tile_action"
	TypeToggleSelect  = "toggle_select"
	TypeTerrainAction = "terrain_action"
)

// ClientEvent is a message broadcast from the server to clients
type ClientEvent interface {
	EventType() string
}

// Init carries the full grid in index order
type Init struct {
	Grid []core.Tile `msgpack:"grid"`
}

type TileChanges struct {
	Changes []core.TileChange `msgpack:"changes"`
}

type Select struct {
	Position core.Coordinate `msgpack:"position"`
}

type Deselect struct{}

type Turn struct {
	Player core.Player `msgpack:"player"`
}

type TerrainMode struct {
	Terrain core.Terrain `msgpack:"terrain"`
}

// Farms carries each player's available economy
type Farms struct {
	Counts [core.NumPlayers]int `msgpack:"counts"`
}

type GamePhase struct {
	Phase core.GamePhase `msgpack:"phase"`
}

// GameOver is sent once a player is eliminated. Winner is unset on a draw.
type GameOver struct {
	Winner core.Player `msgpack:"winner"`
	Draw   bool        `msgpack:"draw,omitempty"`
}

// Welcome tells a connection its id and seat
type Welcome struct {
	ClientID uint64      `msgpack:"client_id"`
	Player   core.Player `msgpack:"player"`
}

func (Init) EventType() string        { return TypeInit }
func (TileChanges) EventType() string { return TypeTileChanges }
func (Select) EventType() string      { return TypeSelect }
func (Deselect) EventType() string    { return TypeDeselect }
func (Turn) EventType() string        { return TypeTurn }
func (TerrainMode) EventType() string { return TypeTerrainMode }
func (Farms) EventType() string       { return TypeFarms }
func (GamePhase) EventType() string   { return TypeGamePhase }
func (GameOver) EventType() string    { return TypeGameOver }
func (Welcome) EventType() string     { return TypeWelcome }
