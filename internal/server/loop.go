package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/core"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/game/events"
	"github.com/mitchelldurbincs/TerritoryCapture/internal/protocol"
)

// ErrLoopStopped is returned to callers once the loop has exited
var ErrLoopStopped = errors.New("match loop stopped")

// LoopConfig holds the loop tunables
type LoopConfig struct {
	TickInterval time.Duration
	QueueSize    int
	// BoardOut receives a board dump after every resolved action when set
	BoardOut io.Writer
}

// Loop is the only goroutine that touches the match. Intents are queued in
// arrival order and one is resolved per tick; joins, leaves and admin
// requests run between ticks.
type Loop struct {
	match   *Match
	clients *ClientManager

	intents  chan protocol.Intent
	requests chan func()
	done     chan struct{}

	cfg    LoopConfig
	logger zerolog.Logger
}

// NewLoop creates a loop for match. Run must be called for it to do anything.
func NewLoop(match *Match, clients *ClientManager, cfg LoopConfig, logger zerolog.Logger) *Loop {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 10 * time.Millisecond
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 256
	}
	l := &Loop{
		match:    match,
		clients:  clients,
		intents:  make(chan protocol.Intent, cfg.QueueSize),
		requests: make(chan func()),
		done:     make(chan struct{}),
		cfg:      cfg,
		logger:   logger.With().Str("component", "Loop").Str("match_id", match.ID).Logger(),
	}
	if cfg.BoardOut != nil {
		match.Bus().SubscribeFunc(events.TypeActionResolved, l.dumpBoard)
	}
	return l
}

// Run processes the match until ctx is cancelled. Every client is closed on
// the way out.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	defer l.clients.CloseAll()

	ticker := time.NewTicker(l.cfg.TickInterval)
	defer ticker.Stop()

	l.logger.Info().
		Dur("tick_interval", l.cfg.TickInterval).
		Int("queue_size", l.cfg.QueueSize).
		Msg("Match loop started")

	for {
		select {
		case <-ctx.Done():
			l.logger.Info().Int("pending_intents", len(l.intents)).Msg("Match loop stopping")
			return ctx.Err()
		case fn := <-l.requests:
			fn()
		case <-ticker.C:
			l.tick()
		}
	}
}

// Done is closed when Run returns
func (l *Loop) Done() <-chan struct{} { return l.done }

func (l *Loop) tick() {
	select {
	case in := <-l.intents:
		evs := l.match.Submit(in)
		if len(evs) == 0 {
			return
		}
		l.broadcast(evs)
	default:
	}
}

// dumpBoard runs inside Submit, on the loop goroutine
func (l *Loop) dumpBoard(e events.Event) {
	if ev, ok := e.(*events.ActionResolvedEvent); ok {
		fmt.Fprintf(l.cfg.BoardOut, "#%d %s %s\n", ev.Metadata.Sequence, ev.Player, ev.Action)
	}
	fmt.Fprintln(l.cfg.BoardOut, l.match.State().Grid().String())
}

// do runs fn on the loop goroutine and waits for it to finish. Once the loop
// has taken the request, fn always runs to completion, so do waits for it
// even if ctx is cancelled meanwhile.
func (l *Loop) do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	req := func() {
		defer close(finished)
		fn()
	}

	select {
	case l.requests <- req:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	<-finished
	return nil
}

// Join seats client and registers it for broadcasts. The client receives a
// Welcome, and everyone receives a full sync when the match starts.
func (l *Loop) Join(ctx context.Context, client *Client) (core.Player, error) {
	var (
		p       core.Player
		joinErr error
	)
	err := l.do(ctx, func() {
		// the caller may have given up while the request was queued
		if joinErr = ctx.Err(); joinErr != nil {
			return
		}
		var sync []protocol.ClientEvent
		p, sync, joinErr = l.match.Join(client.ID)
		if joinErr != nil {
			return
		}
		client.Player = p
		l.clients.Register(client)
		l.send(client.ID, protocol.Welcome{ClientID: client.ID, Player: p})
		l.broadcast(sync)
	})
	if err != nil {
		return 0, err
	}
	return p, joinErr
}

// Leave unregisters and unseats a client
func (l *Loop) Leave(ctx context.Context, clientID uint64, reason string) error {
	return l.do(ctx, func() {
		l.disconnect(clientID, reason)
	})
}

// Submit queues an intent. It blocks while the queue is full.
func (l *Loop) Submit(ctx context.Context, in protocol.Intent) error {
	// the queue may still have room after the loop is gone
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}

	select {
	case l.intents <- in:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot reads the match state
func (l *Loop) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := l.do(ctx, func() {
		snap = l.match.Snapshot()
	})
	return snap, err
}

// Reset starts a rematch and resyncs every client
func (l *Loop) Reset(ctx context.Context, reason string) (Snapshot, error) {
	var (
		snap     Snapshot
		resetErr error
	)
	err := l.do(ctx, func() {
		var sync []protocol.ClientEvent
		sync, resetErr = l.match.Reset(reason)
		if resetErr != nil {
			return
		}
		l.broadcast(sync)
		snap = l.match.Snapshot()
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, resetErr
}

func (l *Loop) send(clientID uint64, ev protocol.ClientEvent) {
	frame, err := protocol.EncodeEvent(ev)
	if err != nil {
		l.logger.Error().Err(err).Str("event", ev.EventType()).Msg("Failed to encode event")
		return
	}
	if !l.clients.SendTo(clientID, frame) {
		l.disconnect(clientID, "send buffer full")
	}
}

func (l *Loop) broadcast(evs []protocol.ClientEvent) {
	for _, ev := range evs {
		frame, err := protocol.EncodeEvent(ev)
		if err != nil {
			l.logger.Error().Err(err).Str("event", ev.EventType()).Msg("Failed to encode event")
			continue
		}
		for _, id := range l.clients.Broadcast(frame) {
			l.disconnect(id, "send buffer full")
		}
	}
}

func (l *Loop) disconnect(clientID uint64, reason string) {
	if _, seated := l.match.State().PlayerOf(clientID); seated {
		l.logger.Info().
			Uint64("client_id", clientID).
			Str("reason", reason).
			Msg("Disconnecting client")
	}
	l.clients.Unregister(clientID)
	l.match.Leave(clientID, reason)
}
