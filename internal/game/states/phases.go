package states

import "fmt"

// MatchPhase is where a match is in its lifecycle. It is separate from the
// in-game phase (terrain placement or play), which only exists while Running.
type MatchPhase int

const (
	// PhaseInitializing - grid and counters are being built
	PhaseInitializing MatchPhase = iota

	// PhaseLobby - waiting for both seats to fill
	PhaseLobby

	// PhaseRunning - intents are accepted
	PhaseRunning

	// PhaseEnded - a player was eliminated or both were
	PhaseEnded

	// PhaseError - error recovery state
	PhaseError

	// PhaseReset - rematch requested, state is being torn down
	PhaseReset
)

// String returns the string representation of a MatchPhase
func (p MatchPhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Initializing"
	case PhaseLobby:
		return "Lobby"
	case PhaseRunning:
		return "Running"
	case PhaseEnded:
		return "Ended"
	case PhaseError:
		return "Error"
	case PhaseReset:
		return "Reset"
	default:
		return fmt.Sprintf("Unknown(%d)", p)
	}
}

// IsTerminal returns true if the phase represents a terminal state
func (p MatchPhase) IsTerminal() bool {
	return p == PhaseEnded || p == PhaseError
}

// CanReceiveActions returns true if intents are resolved in this phase
func (p MatchPhase) CanReceiveActions() bool {
	return p == PhaseRunning
}

// CanAddPlayers returns true if connections may take a seat in this phase
func (p MatchPhase) CanAddPlayers() bool {
	return p == PhaseLobby
}

// AllowedTransitions returns the valid phases this phase can transition to
func (p MatchPhase) AllowedTransitions() []MatchPhase {
	switch p {
	case PhaseInitializing:
		return []MatchPhase{PhaseLobby, PhaseError}
	case PhaseLobby:
		return []MatchPhase{PhaseRunning, PhaseReset, PhaseError}
	case PhaseRunning:
		return []MatchPhase{PhaseEnded, PhaseReset, PhaseError}
	case PhaseEnded:
		return []MatchPhase{PhaseReset}
	case PhaseError:
		return []MatchPhase{PhaseReset}
	case PhaseReset:
		return []MatchPhase{PhaseInitializing}
	default:
		return []MatchPhase{}
	}
}

// CanTransitionTo checks if a transition from this phase to the target phase is allowed
func (p MatchPhase) CanTransitionTo(target MatchPhase) bool {
	for _, phase := range p.AllowedTransitions() {
		if phase == target {
			return true
		}
	}
	return false
}

// ParsePhase converts a string to a MatchPhase
func ParsePhase(s string) MatchPhase {
	switch s {
	case "Lobby":
		return PhaseLobby
	case "Running":
		return PhaseRunning
	case "Ended":
		return PhaseEnded
	case "Error":
		return PhaseError
	case "Reset":
		return PhaseReset
	default:
		return PhaseInitializing
	}
}
