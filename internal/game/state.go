// Package game resolves player intents against the match state: it validates
// an intent into an action, applies the action to the grid and produces the
// events clients need to stay in sync.
package game

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/economy"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/protocol"
)

// Config holds the tunables of one match
type Config struct {
	// MaxMountains and MaxWater are per-player placement caps
	MaxMountains int
	MaxWater     int
	Logger       zerolog.Logger
}

// GameState is the authoritative state of one match. It is not safe for
// concurrent use; the server loop is its only owner.
type GameState struct {
	grid    *core.Grid
	turn    TurnState
	economy economy.Counters
	terrain *economy.TerrainCounter
	seats   map[uint64]core.Player

	config Config
	logger zerolog.Logger
}

// NewGameState creates a match with both bases placed and Red to place
// terrain. The terrain caps are used as given; a zero cap forbids that terrain.
func NewGameState(cfg Config) *GameState {
	gs := &GameState{
		seats:  make(map[uint64]core.Player),
		config: cfg,
		logger: cfg.Logger.With().Str("component", "GameState").Logger(),
	}
	gs.Reset()
	return gs
}

// Reset recreates the grid, counters and turn state for a rematch. Seats are kept.
func (gs *GameState) Reset() {
	gs.grid = core.NewGrid()
	gs.turn = NewTurnState()
	gs.economy = economy.NewCounters()
	gs.terrain = economy.NewTerrainCounter(gs.config.MaxMountains, gs.config.MaxWater)
	gs.economy.Recompute(gs.grid)
}

func (gs *GameState) Grid() *core.Grid                        { return gs.grid }
func (gs *GameState) Turn() TurnState                         { return gs.turn }
func (gs *GameState) Economy() economy.Counters               { return gs.economy }
func (gs *GameState) TerrainCounter() *economy.TerrainCounter { return gs.terrain }

// Seat binds a connection to a player
func (gs *GameState) Seat(clientID uint64, p core.Player) {
	gs.seats[clientID] = p
}

// Unseat forgets a connection
func (gs *GameState) Unseat(clientID uint64) {
	delete(gs.seats, clientID)
}

// PlayerOf returns the player a connection is seated as
func (gs *GameState) PlayerOf(clientID uint64) (core.Player, bool) {
	p, ok := gs.seats[clientID]
	return p, ok
}

// SyncEvents is the full state a client needs after connecting or a rematch
func (gs *GameState) SyncEvents() []protocol.ClientEvent {
	return []protocol.ClientEvent{
		protocol.Init{Grid: gs.grid.Snapshot()},
		protocol.GamePhase{Phase: gs.turn.Phase},
		protocol.Turn{Player: gs.turn.Player},
		protocol.TerrainMode{Terrain: gs.terrain.Mode()},
		protocol.Farms{Counts: gs.economy.Available()},
	}
}
