package states

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// MatchContext provides match information to states for making decisions
type MatchContext struct {
	// MatchID uniquely identifies this match instance
	MatchID string

	// Logger for state-specific logging
	Logger zerolog.Logger

	// Seated is the number of players holding a seat
	Seated int

	// StartTime is when PhaseRunning was entered
	StartTime time.Time

	// Winner is only meaningful when HasResult is set and Draw is not
	Winner    core.Player
	Draw      bool
	HasResult bool

	// Error holds any error that caused transition to PhaseError
	Error error
}

// NewMatchContext creates a new match context
func NewMatchContext(matchID string, logger zerolog.Logger) *MatchContext {
	return &MatchContext{
		MatchID: matchID,
		Logger:  logger.With().Str("match_id", matchID).Logger(),
	}
}

// IsReady returns true once both seats are filled
func (mc *MatchContext) IsReady() bool {
	return mc.Seated == core.NumPlayers
}

// SetResult records the outcome of the match
func (mc *MatchContext) SetResult(winner core.Player, draw bool) {
	mc.Winner = winner
	mc.Draw = draw
	mc.HasResult = true
}

// GetElapsedTime returns the time elapsed since the match started running
func (mc *MatchContext) GetElapsedTime() time.Duration {
	if mc.StartTime.IsZero() {
		return 0
	}
	return time.Since(mc.StartTime)
}
