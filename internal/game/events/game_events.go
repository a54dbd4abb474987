package events

import (
	"time"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// Event type constants
const (
	TypeMatchStarted      = "match.started"
	TypeMatchEnded        = "match.ended"
	TypeMatchReset        = "match.reset"
	TypePlayerJoined      = "player.joined"
	TypePlayerLeft        = "player.left"
	TypePlayerEliminated  = "player.eliminated"
	TypeActionResolved    = "action.resolved"
	TypeActionRejected    = "action.rejected"
	TypeTilesCaptured     = "tiles.captured"
	TypeTilesDisconnected = "tiles.disconnected"
	TypePhaseChanged      = "phase.changed"
	TypeStateTransition   = "state.transition"
)

// MatchStartedEvent is published once both seats are filled
type MatchStartedEvent struct {
	BaseEvent
	RedClient  uint64
	BlueClient uint64
}

// NewMatchStartedEvent creates a new MatchStartedEvent
func NewMatchStartedEvent(matchID string, redClient, blueClient uint64) *MatchStartedEvent {
	return &MatchStartedEvent{
		BaseEvent:  newBase(TypeMatchStarted, matchID),
		RedClient:  redClient,
		BlueClient: blueClient,
	}
}

// MatchEndedEvent is published when a player is eliminated or both are
type MatchEndedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Winner   core.Player
	Draw     bool
	Duration time.Duration
}

// NewMatchEndedEvent creates a new MatchEndedEvent
func NewMatchEndedEvent(matchID string, winner core.Player, draw bool, duration time.Duration, sequence int) *MatchEndedEvent {
	return &MatchEndedEvent{
		BaseEvent: newBase(TypeMatchEnded, matchID),
		Metadata:  EventMetadata{Sequence: sequence},
		Winner:    winner,
		Draw:      draw,
		Duration:  duration,
	}
}

// MatchResetEvent is published when a rematch recreates the grid
type MatchResetEvent struct {
	BaseEvent
	Reason string
}

// NewMatchResetEvent creates a new MatchResetEvent
func NewMatchResetEvent(matchID, reason string) *MatchResetEvent {
	return &MatchResetEvent{
		BaseEvent: newBase(TypeMatchReset, matchID),
		Reason:    reason,
	}
}

// PlayerJoinedEvent is published when a connection takes a seat
type PlayerJoinedEvent struct {
	BaseEvent
	ClientID uint64
	Player   core.Player
}

// NewPlayerJoinedEvent creates a new PlayerJoinedEvent
func NewPlayerJoinedEvent(matchID string, clientID uint64, p core.Player) *PlayerJoinedEvent {
	return &PlayerJoinedEvent{
		BaseEvent: newBase(TypePlayerJoined, matchID),
		ClientID:  clientID,
		Player:    p,
	}
}

// PlayerLeftEvent is published when a seated connection goes away
type PlayerLeftEvent struct {
	BaseEvent
	ClientID uint64
	Player   core.Player
	Reason   string
}

// NewPlayerLeftEvent creates a new PlayerLeftEvent
func NewPlayerLeftEvent(matchID string, clientID uint64, p core.Player, reason string) *PlayerLeftEvent {
	return &PlayerLeftEvent{
		BaseEvent: newBase(TypePlayerLeft, matchID),
		ClientID:  clientID,
		Player:    p,
		Reason:    reason,
	}
}

// PlayerEliminatedEvent is published when a player loses their last non-base cell
type PlayerEliminatedEvent struct {
	BaseEvent
	Metadata     EventMetadata
	Player       core.Player
	EliminatedBy core.Player
}

// NewPlayerEliminatedEvent creates a new PlayerEliminatedEvent
func NewPlayerEliminatedEvent(matchID string, p, by core.Player, sequence int) *PlayerEliminatedEvent {
	return &PlayerEliminatedEvent{
		BaseEvent:    newBase(TypePlayerEliminated, matchID),
		Metadata:     EventMetadata{Player: p.String(), Sequence: sequence},
		Player:       p,
		EliminatedBy: by,
	}
}

// ActionResolvedEvent is published after an action is applied
type ActionResolvedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Player   core.Player
	Action   string
	Changes  int
}

// NewActionResolvedEvent creates a new ActionResolvedEvent
func NewActionResolvedEvent(matchID string, p core.Player, action string, changes, sequence int) *ActionResolvedEvent {
	return &ActionResolvedEvent{
		BaseEvent: newBase(TypeActionResolved, matchID),
		Metadata:  EventMetadata{Player: p.String(), Sequence: sequence},
		Player:    p,
		Action:    action,
		Changes:   changes,
	}
}

// ActionRejectedEvent is published when an intent fails validation
type ActionRejectedEvent struct {
	BaseEvent
	ClientID uint64
	Intent   string
	Position core.Coordinate
}

// NewActionRejectedEvent creates a new ActionRejectedEvent
func NewActionRejectedEvent(matchID string, clientID uint64, intent string, pos core.Coordinate) *ActionRejectedEvent {
	return &ActionRejectedEvent{
		BaseEvent: newBase(TypeActionRejected, matchID),
		ClientID:  clientID,
		Intent:    intent,
		Position:  pos,
	}
}

// TilesCapturedEvent is published when an attack takes cells
type TilesCapturedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Player    core.Player
	Positions []core.Coordinate
}

// NewTilesCapturedEvent creates a new TilesCapturedEvent
func NewTilesCapturedEvent(matchID string, p core.Player, positions []core.Coordinate, sequence int) *TilesCapturedEvent {
	return &TilesCapturedEvent{
		BaseEvent: newBase(TypeTilesCaptured, matchID),
		Metadata:  EventMetadata{Player: p.String(), Sequence: sequence},
		Player:    p,
		Positions: positions,
	}
}

// TilesDisconnectedEvent is published when the sweep empties cells cut off from their base
type TilesDisconnectedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Positions []core.Coordinate
}

// NewTilesDisconnectedEvent creates a new TilesDisconnectedEvent
func NewTilesDisconnectedEvent(matchID string, positions []core.Coordinate, sequence int) *TilesDisconnectedEvent {
	return &TilesDisconnectedEvent{
		BaseEvent: newBase(TypeTilesDisconnected, matchID),
		Metadata:  EventMetadata{Sequence: sequence},
		Positions: positions,
	}
}

// PhaseChangedEvent is published when terrain placement ends
type PhaseChangedEvent struct {
	BaseEvent
	From core.GamePhase
	To   core.GamePhase
}

// NewPhaseChangedEvent creates a new PhaseChangedEvent
func NewPhaseChangedEvent(matchID string, from, to core.GamePhase) *PhaseChangedEvent {
	return &PhaseChangedEvent{
		BaseEvent: newBase(TypePhaseChanged, matchID),
		From:      from,
		To:        to,
	}
}

// StateTransitionEvent is published when the match lifecycle moves between phases
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(matchID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, matchID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
