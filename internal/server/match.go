// Package server hosts a single two-player match: the loop goroutine that
// owns the match state, the WebSocket transport for players and the gRPC
// admin plane.
package server

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/events"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/rules"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/states"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/protocol"
)

// MatchConfig holds the tunables of a match
type MatchConfig struct {
	MaxMountains int
	MaxWater     int
	// DevMode attaches raw event payloads to event log lines
	DevMode bool
}

// Match ties the resolver to its lifecycle and seats. It is owned by the loop
// goroutine and is not safe for concurrent use.
type Match struct {
	ID string

	state   *game.GameState
	win     *rules.WinConditionChecker
	machine *states.StateMachine
	bus     *events.EventBus

	seats    [core.NumPlayers]uint64
	seated   [core.NumPlayers]bool
	sequence int

	logger zerolog.Logger
}

// NewMatch creates a match in the Lobby phase
func NewMatch(cfg MatchConfig, logger zerolog.Logger) (*Match, error) {
	id := uuid.New().String()
	logger = logger.With().Str("component", "Match").Str("match_id", id).Logger()

	bus := events.NewEventBus(logger)
	eventLog := subscribers.NewLoggerSubscriber("event-log", logger, zerolog.DebugLevel)
	eventLog.SetDevMode(cfg.DevMode)
	bus.Subscribe(eventLog)

	m := &Match{
		ID: id,
		state: game.NewGameState(game.Config{
			MaxMountains: cfg.MaxMountains,
			MaxWater:     cfg.MaxWater,
			Logger:       logger,
		}),
		win:     rules.NewWinConditionChecker(logger),
		machine: states.NewStateMachine(states.NewMatchContext(id, logger), bus),
		bus:     bus,
		logger:  logger,
	}

	if err := m.machine.TransitionTo(states.PhaseLobby, "match created"); err != nil {
		return nil, fmt.Errorf("open lobby: %w", err)
	}
	return m, nil
}

// Bus exposes the match event bus for extra subscribers
func (m *Match) Bus() *events.EventBus { return m.bus }

// Phase returns the lifecycle phase
func (m *Match) Phase() states.MatchPhase { return m.machine.CurrentPhase() }

// State returns the resolver state
func (m *Match) State() *game.GameState { return m.state }

// Join seats a connection as Red, or Blue if Red is taken. The returned
// broadcast is non-empty when this join filled the match and started it.
func (m *Match) Join(clientID uint64) (core.Player, []protocol.ClientEvent, error) {
	if !m.Phase().CanAddPlayers() {
		if m.Phase() == states.PhaseEnded {
			return 0, nil, core.WrapClientError(clientID, "join", core.ErrMatchEnded)
		}
		return 0, nil, core.WrapClientError(clientID, "join", core.ErrMatchFull)
	}

	p, ok := m.freeSeat()
	if !ok {
		return 0, nil, core.WrapClientError(clientID, "join", core.ErrMatchFull)
	}

	m.seats[p] = clientID
	m.seated[p] = true
	m.state.Seat(clientID, p)
	m.context().Seated++
	m.bus.Publish(events.NewPlayerJoinedEvent(m.ID, clientID, p))

	if !m.context().IsReady() {
		return p, nil, nil
	}

	if err := m.machine.TransitionTo(states.PhaseRunning, "both players connected"); err != nil {
		return p, nil, fmt.Errorf("start match: %w", err)
	}
	m.bus.Publish(events.NewMatchStartedEvent(m.ID, m.seats[core.Red], m.seats[core.Blue]))
	return p, m.state.SyncEvents(), nil
}

func (m *Match) freeSeat() (core.Player, bool) {
	for _, p := range core.Players {
		if !m.seated[p] {
			return p, true
		}
	}
	return 0, false
}

// Leave unseats a connection. Leaving is idempotent; the match keeps running
// without the player.
func (m *Match) Leave(clientID uint64, reason string) {
	p, ok := m.state.PlayerOf(clientID)
	if !ok {
		return
	}
	m.state.Unseat(clientID)
	m.seated[p] = false
	m.seats[p] = 0
	m.context().Seated--
	m.bus.Publish(events.NewPlayerLeftEvent(m.ID, clientID, p, reason))
}

// Submit resolves one intent. Rejected intents produce nothing; accepted ones
// return the events to broadcast, followed by GameOver when the action ended
// the match.
func (m *Match) Submit(in protocol.Intent) []protocol.ClientEvent {
	if !m.Phase().CanReceiveActions() {
		m.logger.Debug().
			Uint64("client_id", in.ClientID).
			Str("phase", m.Phase().String()).
			Msg("Intent outside running match")
		return nil
	}

	action, ok := m.state.Validate(in)
	if !ok {
		m.bus.Publish(events.NewActionRejectedEvent(m.ID, in.ClientID, in.Kind.String(), in.Position))
		return nil
	}

	phaseBefore := m.state.Turn().Phase
	res := m.state.Resolve(action)
	m.sequence++
	m.publishResult(res, phaseBefore)

	if m.state.Turn().Phase != core.PhaseGame || len(res.Captured)+len(res.Disconnected) == 0 {
		return res.Events
	}

	outcome := m.win.Check(m.state.Grid())
	if !outcome.Over {
		return res.Events
	}
	return append(res.Events, m.finish(outcome))
}

func (m *Match) publishResult(res game.Result, phaseBefore core.GamePhase) {
	changes := 0
	for _, ev := range res.Events {
		if tc, ok := ev.(protocol.TileChanges); ok {
			changes += len(tc.Changes)
		}
	}
	m.bus.Publish(events.NewActionResolvedEvent(m.ID, res.Action.Player, res.Action.Kind.String(), changes, m.sequence))

	if len(res.Captured) > 0 {
		m.bus.Publish(events.NewTilesCapturedEvent(m.ID, res.Action.Player, res.Captured, m.sequence))
	}
	if len(res.Disconnected) > 0 {
		m.bus.Publish(events.NewTilesDisconnectedEvent(m.ID, res.Disconnected, m.sequence))
	}
	if res.Started {
		m.bus.Publish(events.NewPhaseChangedEvent(m.ID, phaseBefore, m.state.Turn().Phase))
	}
}

// finish records the outcome and moves the lifecycle to Ended
func (m *Match) finish(outcome rules.Outcome) protocol.ClientEvent {
	for _, p := range outcome.Eliminated {
		m.bus.Publish(events.NewPlayerEliminatedEvent(m.ID, p, p.Other(), m.sequence))
	}

	ctx := m.context()
	ctx.SetResult(outcome.Winner, outcome.Draw)
	duration := ctx.GetElapsedTime()

	if err := m.machine.TransitionTo(states.PhaseEnded, "player eliminated"); err != nil {
		m.logger.Error().Err(err).Msg("Failed to end match")
	}
	m.bus.Publish(events.NewMatchEndedEvent(m.ID, outcome.Winner, outcome.Draw, duration, m.sequence))

	return protocol.GameOver{Winner: outcome.Winner, Draw: outcome.Draw}
}

// Reset starts a rematch on a fresh grid. Seats are kept, so a full match
// goes straight back to Running. The returned events resync every client.
func (m *Match) Reset(reason string) ([]protocol.ClientEvent, error) {
	if err := m.machine.Rematch(reason); err != nil {
		return nil, fmt.Errorf("rematch: %w", err)
	}

	m.state.Reset()
	m.win.Reset()
	m.sequence = 0
	m.bus.Publish(events.NewMatchResetEvent(m.ID, reason))

	if err := m.machine.TransitionTo(states.PhaseLobby, reason); err != nil {
		return nil, fmt.Errorf("reopen lobby: %w", err)
	}
	if m.context().IsReady() {
		if err := m.machine.TransitionTo(states.PhaseRunning, reason); err != nil {
			return nil, fmt.Errorf("restart match: %w", err)
		}
	}
	return m.state.SyncEvents(), nil
}

func (m *Match) context() *states.MatchContext {
	return m.machine.GetContext()
}

// SeatOf returns the connection holding p's seat
func (m *Match) SeatOf(p core.Player) (uint64, bool) {
	if !p.Valid() || !m.seated[p] {
		return 0, false
	}
	return m.seats[p], true
}

// Snapshot is a read-only view of the match for the admin plane
type Snapshot struct {
	MatchID   string
	Phase     states.MatchPhase
	GamePhase core.GamePhase
	Turn      core.Player
	Seated    int
	Sequence  int
	Farms     [core.NumPlayers]int
	Grid      []core.Tile
	Board     string
	HasResult bool
	Winner    core.Player
	Draw      bool
}

// Snapshot captures the current match state
func (m *Match) Snapshot() Snapshot {
	ctx := m.context()
	return Snapshot{
		MatchID:   m.ID,
		Phase:     m.Phase(),
		GamePhase: m.state.Turn().Phase,
		Turn:      m.state.Turn().Player,
		Seated:    ctx.Seated,
		Sequence:  m.sequence,
		Farms:     m.state.Economy().Available(),
		Grid:      m.state.Grid().Snapshot(),
		Board:     m.state.Grid().Render(false),
		HasResult: ctx.HasResult,
		Winner:    ctx.Winner,
		Draw:      ctx.Draw,
	}
}
