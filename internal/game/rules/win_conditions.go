package rules

import (
	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
)

// Outcome is the result of a win check
type Outcome struct {
	Over       bool
	Draw       bool
	Winner     core.Player
	Eliminated []core.Player
}

// WinConditionChecker detects elimination. A player is eliminated once they
// have held at least one non-base cell and then hold none. Players who never
// expanded are not eliminated.
type WinConditionChecker struct {
	logger zerolog.Logger
	held   [core.NumPlayers]bool
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// Reset forgets which players have expanded, for a rematch
func (wc *WinConditionChecker) Reset() {
	wc.held = [core.NumPlayers]bool{}
}

// Check inspects the grid after a resolved action
func (wc *WinConditionChecker) Check(g *core.Grid) Outcome {
	counts := g.CountNonBase()

	var out Outcome
	for _, p := range core.Players {
		if counts[p] > 0 {
			wc.held[p] = true
			continue
		}
		if wc.held[p] {
			out.Eliminated = append(out.Eliminated, p)
		}
	}

	switch len(out.Eliminated) {
	case 0:
		wc.logger.Debug().Ints("non_base_cells", counts[:]).Msg("No player eliminated")
		return out
	case 1:
		out.Over = true
		out.Winner = out.Eliminated[0].Other()
		wc.logger.Info().
			Str("winner", out.Winner.String()).
			Str("eliminated", out.Eliminated[0].String()).
			Msg("Winner determined")
	default:
		out.Over = true
		out.Draw = true
		wc.logger.Info().Msg("No winner found, both players eliminated simultaneously")
	}
	return out
}
