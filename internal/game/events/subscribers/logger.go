package subscribers

import (
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/events"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool)
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables development mode logging
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	eventLogger := ls.logger.With().
		Str("event_type", event.Type()).
		Str("match_id", event.MatchID()).
		Time("timestamp", event.Timestamp()).
		Logger()

	logEvent := eventLogger.WithLevel(ls.level())

	switch e := event.(type) {
	case *events.MatchStartedEvent:
		logEvent.
			Uint64("red_client", e.RedClient).
			Uint64("blue_client", e.BlueClient)

	case *events.MatchEndedEvent:
		logEvent.
			Str("winner", e.Winner.String()).
			Bool("draw", e.Draw).
			Dur("duration", e.Duration).
			Int("sequence", e.Metadata.Sequence)

	case *events.MatchResetEvent:
		logEvent.Str("reason", e.Reason)

	case *events.PlayerJoinedEvent:
		logEvent.
			Uint64("client_id", e.ClientID).
			Str("player", e.Player.String())

	case *events.PlayerLeftEvent:
		logEvent.
			Uint64("client_id", e.ClientID).
			Str("player", e.Player.String()).
			Str("reason", e.Reason)

	case *events.PlayerEliminatedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("eliminated_by", e.EliminatedBy.String())

	case *events.ActionResolvedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Str("action", e.Action).
			Int("changes", e.Changes).
			Int("sequence", e.Metadata.Sequence)

	case *events.ActionRejectedEvent:
		logEvent.
			Uint64("client_id", e.ClientID).
			Str("intent", e.Intent).
			Int("x", e.Position.X).
			Int("y", e.Position.Y)

	case *events.TilesCapturedEvent:
		logEvent.
			Str("player", e.Player.String()).
			Int("captured", len(e.Positions)).
			Interface("positions", e.Positions)

	case *events.TilesDisconnectedEvent:
		logEvent.
			Int("disconnected", len(e.Positions)).
			Interface("positions", e.Positions)

	case *events.PhaseChangedEvent:
		logEvent.
			Str("from", e.From.String()).
			Str("to", e.To.String())

	case *events.StateTransitionEvent:
		logEvent.
			Str("from_phase", e.FromPhase).
			Str("to_phase", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Match event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	default:
		return zerolog.InfoLevel
	}
}
