package states

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/events"
)

// State represents a match state with lifecycle callbacks
type State interface {
	// Phase returns the MatchPhase this state represents
	Phase() MatchPhase

	// Enter is called when transitioning into this state
	Enter(ctx *MatchContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *MatchContext) error

	// Validate checks if the state is valid given the context
	Validate(ctx *MatchContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      MatchPhase
	To        MatchPhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages match state transitions and history
type StateMachine struct {
	mu             sync.RWMutex
	currentPhase   MatchPhase
	states         map[MatchPhase]State
	context        *MatchContext
	history        []Transition
	maxHistorySize int
	publisher      events.Publisher
}

// NewStateMachine creates a new state machine. publisher may be nil.
func NewStateMachine(ctx *MatchContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase:   PhaseInitializing,
		states:         make(map[MatchPhase]State),
		context:        ctx,
		history:        make([]Transition, 0, 16),
		maxHistorySize: 1000,
		publisher:      publisher,
	}

	sm.registerDefaultStates()

	return sm
}

func (sm *StateMachine) registerDefaultStates() {
	sm.RegisterState(NewInitializingState())
	sm.RegisterState(NewLobbyState())
	sm.RegisterState(NewRunningState())
	sm.RegisterState(NewEndedState())
	sm.RegisterState(NewErrorState())
	sm.RegisterState(NewResetState())
}

// RegisterState registers a state implementation
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current match phase
func (sm *StateMachine) CurrentPhase() MatchPhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase MatchPhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return sm.transitionLocked(targetPhase, reason)
}

func (sm *StateMachine) transitionLocked(targetPhase MatchPhase, reason string) error {
	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("invalid transition from %s to %s", sm.currentPhase, targetPhase)
	}

	currentState, hasCurrentState := sm.states[sm.currentPhase]
	targetState, hasTargetState := sm.states[targetPhase]

	if !hasTargetState {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}

	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if hasCurrentState {
		if err := currentState.Exit(sm.context); err != nil {
			// the transition still goes ahead
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase

	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.addToHistory(Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.MatchID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Info().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

func (sm *StateMachine) addToHistory(transition Transition) {
	sm.history = append(sm.history, transition)

	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the match context
func (sm *StateMachine) GetContext() *MatchContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase MatchPhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}

// Rematch walks the machine through Reset back to Initializing and clears
// the history
func (sm *StateMachine) Rematch(reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if err := sm.transitionLocked(PhaseReset, reason); err != nil {
		return err
	}
	if err := sm.transitionLocked(PhaseInitializing, reason); err != nil {
		return err
	}
	sm.history = sm.history[:0]
	return nil
}
