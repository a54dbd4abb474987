package states

import (
	"errors"
	"fmt"
	"time"
)

// InitializingState represents match construction
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() MatchPhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *MatchContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().Msg("Exiting Initializing state")
	return nil
}

func (s *InitializingState) Validate(ctx *MatchContext) error {
	return nil
}

// LobbyState waits for both players
type LobbyState struct{}

func NewLobbyState() State {
	return &LobbyState{}
}

func (s *LobbyState) Phase() MatchPhase {
	return PhaseLobby
}

func (s *LobbyState) Enter(ctx *MatchContext) error {
	ctx.Logger.Info().Int("seated", ctx.Seated).Msg("Match lobby opened, waiting for players")
	return nil
}

func (s *LobbyState) Exit(ctx *MatchContext) error {
	ctx.Logger.Info().
		Int("seated", ctx.Seated).
		Msg("Closing lobby")
	return nil
}

func (s *LobbyState) Validate(ctx *MatchContext) error {
	if ctx.Seated < 0 || ctx.Seated > 2 {
		return fmt.Errorf("seat count must be between 0 and 2, got %d", ctx.Seated)
	}
	return nil
}

// RunningState represents active play
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() MatchPhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *MatchContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Match started")
	return nil
}

func (s *RunningState) Exit(ctx *MatchContext) error {
	ctx.Logger.Info().
		Dur("elapsed", ctx.GetElapsedTime()).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *MatchContext) error {
	if !ctx.IsReady() {
		return fmt.Errorf("not enough players to start: have %d, need 2", ctx.Seated)
	}
	return nil
}

// EndedState represents a decided match
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() MatchPhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *MatchContext) error {
	e := ctx.Logger.Info().Dur("match_duration", ctx.GetElapsedTime()).Bool("draw", ctx.Draw)
	if !ctx.Draw {
		e = e.Str("winner", ctx.Winner.String())
	}
	e.Msg("Match ended")
	return nil
}

func (s *EndedState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().Msg("Exiting ended state")
	return nil
}

func (s *EndedState) Validate(ctx *MatchContext) error {
	if !ctx.HasResult {
		return errors.New("ended state requires a result")
	}
	return nil
}

// ErrorState represents an error condition
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() MatchPhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *MatchContext) error {
	ctx.Logger.Error().
		Err(ctx.Error).
		Msg("Match entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *MatchContext) error {
	ctx.Logger.Info().Msg("Recovering from error state")
	ctx.Error = nil
	return nil
}

func (s *ErrorState) Validate(ctx *MatchContext) error {
	if ctx.Error == nil {
		return errors.New("error state requires an error in context")
	}
	return nil
}

// ResetState clears the result for a rematch. Seats are kept.
type ResetState struct{}

func NewResetState() State {
	return &ResetState{}
}

func (s *ResetState) Phase() MatchPhase {
	return PhaseReset
}

func (s *ResetState) Enter(ctx *MatchContext) error {
	ctx.Logger.Info().Msg("Resetting match")

	ctx.StartTime = time.Time{}
	ctx.Winner = 0
	ctx.Draw = false
	ctx.HasResult = false
	ctx.Error = nil

	return nil
}

func (s *ResetState) Exit(ctx *MatchContext) error {
	ctx.Logger.Debug().Msg("Match reset complete")
	return nil
}

func (s *ResetState) Validate(ctx *MatchContext) error {
	return nil
}
