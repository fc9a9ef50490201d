package terrascope

import (
	"context"
	"fmt"
	"time"
)

// Waiter defaults applied by NewWaiter when no options are given.
const (
	// DefaultWaitDelay is the default pause between polls.
	DefaultWaitDelay = 5 * time.Second

	// DefaultWaitMaxAttempts is the default poll budget. Zero in
	// WaitOptions means unlimited attempts; the default is deliberately
	// bounded so that callers opt in to unbounded waits.
	DefaultWaitMaxAttempts = 200
)

// StateFetch returns the current state of the watched resource. It is
// invoked once per poll; results are never cached.
type StateFetch func(ctx context.Context) (string, error)

// WaitOptions tunes a Waiter.
type WaitOptions struct {
	// Delay is the pause between polls. Elapsed fetch time is subtracted
	// from it so cadence approximates real time.
	Delay time.Duration

	// MaxAttempts bounds polls after the initial fetch; 0 means unlimited
	// (bounded only by context cancellation).
	MaxAttempts int

	// OnObserve, if non-nil, is invoked with every observed state.
	OnObserve func(state string)
}

// Waiter polls a single resource until it reaches a target or terminal
// state. Each instance owns its attempt counter exclusively; a Waiter must
// not be shared between goroutines.
type Waiter struct {
	resource    string
	target      string
	states      StateSequence
	fetch       StateFetch
	delay       time.Duration
	maxAttempts int
	onObserve   func(string)
}

// NewWaiter builds a waiter over fetch for the named resource. The target
// must be a member of states; validation is deferred to Wait so that the
// error surfaces on the calling goroutine.
func NewWaiter(resource, target string, states StateSequence, fetch StateFetch, opts *WaitOptions) *Waiter {
	waiter := &Waiter{
		resource:    resource,
		target:      target,
		states:      states,
		fetch:       fetch,
		delay:       DefaultWaitDelay,
		maxAttempts: DefaultWaitMaxAttempts,
	}

	if opts != nil {
		waiter.delay = opts.Delay
		waiter.maxAttempts = opts.MaxAttempts
		waiter.onObserve = opts.OnObserve
	}

	return waiter
}

// Wait polls until the resource reaches the target state, passes it, or
// lands in a terminal state, and returns the final observed state. The
// first fetch happens immediately; each later poll sleeps the configured
// delay minus the time the previous fetch took. When the attempt budget is
// exhausted Wait returns ErrWaitExceeded with the last observed state.
func (w *Waiter) Wait(ctx context.Context) (string, error) {
	if w.fetch == nil {
		return "", ErrStateFetchRequired
	}

	if _, err := w.states.Index(w.target); err != nil {
		return "", err
	}

	started := time.Now()

	state, done, err := w.observe(ctx)
	if err != nil || done {
		return state, err
	}

	attempts := 0

	for {
		if w.maxAttempts > 0 && attempts >= w.maxAttempts {
			return state, fmt.Errorf("%w: %d attempts waiting on %q (last state %q)",
				ErrWaitExceeded, attempts, w.resource, state)
		}

		attempts++

		if err := w.sleep(ctx, w.delay-time.Since(started)); err != nil {
			return state, err
		}

		started = time.Now()

		state, done, err = w.observe(ctx)
		if err != nil || done {
			return state, err
		}
	}
}

// observe fetches the current state, reports it, and evaluates the
// termination predicates.
func (w *Waiter) observe(ctx context.Context) (string, bool, error) {
	state, err := w.fetch(ctx)
	if err != nil {
		return "", false, fmt.Errorf("fetching state of %q: %w", w.resource, err)
	}

	if w.onObserve != nil {
		w.onObserve(state)
	}

	reached, err := w.states.Reached(state, w.target)
	if err != nil {
		return state, false, err
	}

	if reached {
		return state, true, nil
	}

	final, err := w.states.Final(state)
	if err != nil {
		return state, false, err
	}

	return state, final, nil
}

func (w *Waiter) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		// Still yield to cancellation between back-to-back polls.
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting on %q: %w", w.resource, ctx.Err())
		default:
			return nil
		}
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("waiting on %q: %w", w.resource, ctx.Err())
	case <-timer.C:
		return nil
	}
}
