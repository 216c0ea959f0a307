package discovery

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/artyom-g-dv/grandiose/internal/logging"
)

const (
	// PollInterval is the fixed delay before each poll of the Finder.
	PollInterval = 50 * time.Millisecond

	// DefaultWait is used when the wait budget is zero or negative.
	DefaultWait = 10 * time.Second
)

// State is a step of the bounded discovery operation.
type State int

const (
	StateCreated State = iota
	StatePolling
	StateSucceeded
	StateTimedOut
	StateErrored
	StateDisposing
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StatePolling:
		return "polling"
	case StateSucceeded:
		return "succeeded"
	case StateTimedOut:
		return "timed_out"
	case StateErrored:
		return "errored"
	case StateDisposing:
		return "disposing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether s ends polling.
func (s State) Terminal() bool {
	return s == StateSucceeded || s == StateTimedOut || s == StateErrored
}

// NormalizeWait returns DefaultWait for a zero or negative budget.
func NormalizeWait(wait time.Duration) time.Duration {
	if wait <= 0 {
		return DefaultWait
	}
	return wait
}

// WaitFromMillis converts a millisecond budget, applying NormalizeWait.
func WaitFromMillis(ms int) time.Duration {
	return NormalizeWait(time.Duration(ms) * time.Millisecond)
}

// Operation answers "which sources exist within Wait" with a single call.
// The zero value is not usable; Factory must be set.
type Operation struct {
	Factory EngineFactory
	Options *Options

	// Wait is the budget; zero or negative means DefaultWait.
	Wait time.Duration

	// OnTransition, if set, is called on every state change.
	OnTransition func(from, to State)

	now   func() time.Time
	state State
}

// Find runs a bounded discovery operation with the given engine factory.
func Find(ctx context.Context, factory EngineFactory, opts *Options, wait time.Duration) ([]Source, error) {
	op := &Operation{
		Factory: factory,
		Options: opts,
		Wait:    wait,
	}
	return op.Run(ctx)
}

// Run creates a Finder, polls it every PollInterval until it reports at
// least one source or the deadline passes, and closes it before returning.
// It returns a timeout Error when the deadline passes first.
func (op *Operation) Run(ctx context.Context) ([]Source, error) {
	if op.now == nil {
		op.now = time.Now
	}

	opts := Options{}
	if op.Options != nil {
		opts = *op.Options
	}
	if opts.ShowLocalSources == nil {
		opts.ShowLocalSources = Bool(true)
	}

	if op.Wait < 0 {
		logging.Warn("Negative discovery wait, using default",
			zap.Duration("wait", op.Wait),
			zap.Duration("default", DefaultWait),
		)
	}
	wait := NormalizeWait(op.Wait)
	deadline := op.now().Add(wait)

	op.state = StateCreated
	finder, err := NewFinder(op.Factory, &opts)
	if err != nil {
		op.transition(StateErrored)
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			// The finder is closed and r re-raised even if OnTransition panics.
			defer func() { panic(r) }()
			defer op.dispose(finder)
			op.transition(StateErrored)
			return
		}
		op.dispose(finder)
	}()

	op.transition(StatePolling)
	timer := time.NewTimer(PollInterval)
	defer timer.Stop()

	for op.now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			op.transition(StateErrored)
			return nil, err
		}

		select {
		case <-ctx.Done():
			op.transition(StateErrored)
			return nil, ctx.Err()
		case <-timer.C:
		}

		found, err := finder.CurrentSources()
		if err != nil {
			op.transition(StateErrored)
			return nil, err
		}
		if len(found) > 0 {
			op.transition(StateSucceeded)
			return found, nil
		}
		timer.Reset(PollInterval)
	}

	op.transition(StateTimedOut)
	return nil, newTimeoutError(wait)
}

// dispose closes the finder after a terminal state, even when OnTransition
// panics. A release failure is logged and never replaces the operation's
// result.
func (op *Operation) dispose(finder *Finder) {
	defer func() {
		if err := finder.Close(); err != nil {
			logging.Warn("Ignoring finder release failure", zap.Error(err))
		}
	}()
	op.transition(StateDisposing)
}

func (op *Operation) transition(to State) {
	from := op.state
	op.state = to
	logging.LogTransition(from.String(), to.String())
	if op.OnTransition != nil {
		op.OnTransition(from, to)
	}
}
