package terrascope_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terrascope-io/terrascope-client/pkg/terrascope"
)

// scriptedFetch replays a fixed sequence of states, sticking on the last
// one, and counts fetches.
type scriptedFetch struct {
	states  []string
	fetches int
}

func (s *scriptedFetch) fetch(ctx context.Context) (string, error) {
	index := s.fetches
	if index >= len(s.states) {
		index = len(s.states) - 1
	}

	s.fetches++

	return s.states[index], nil
}

//nolint:funlen // Scenario coverage keeps this long
func TestWaiter_Wait(t *testing.T) {
	t.Parallel()
	t.Run("returns immediately when already at target", func(t *testing.T) {
		t.Parallel()

		script := &scriptedFetch{states: []string{"success"}}
		waiter := terrascope.NewWaiter("order-1", "success", terrascope.OrderStates, script.fetch, &terrascope.WaitOptions{})

		state, err := waiter.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "success", state)
		assert.Equal(t, 1, script.fetches)
	})

	t.Run("polls through queued and running to success", func(t *testing.T) {
		t.Parallel()

		var observed []string

		script := &scriptedFetch{states: []string{"queued", "running", "success"}}
		waiter := terrascope.NewWaiter("order-1", "success", terrascope.OrderStates, script.fetch, &terrascope.WaitOptions{
			OnObserve: func(state string) { observed = append(observed, state) },
		})

		state, err := waiter.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "success", state)
		assert.Equal(t, 3, script.fetches)
		assert.Equal(t, []string{"queued", "running", "success"}, observed)
	})

	t.Run("terminal state short of target ends the wait", func(t *testing.T) {
		t.Parallel()

		// "failed" precedes "success" in the order sequence but is
		// terminal, so waiting for success must stop there.
		script := &scriptedFetch{states: []string{"running", "failed"}}
		waiter := terrascope.NewWaiter("order-1", "success", terrascope.OrderStates, script.fetch, &terrascope.WaitOptions{})

		state, err := waiter.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "failed", state)
		assert.Equal(t, 2, script.fetches)
	})

	t.Run("budget exhaustion on a stuck resource", func(t *testing.T) {
		t.Parallel()

		var observed []string

		script := &scriptedFetch{states: []string{"queued"}}
		waiter := terrascope.NewWaiter("order-1", "running", terrascope.OrderStates, script.fetch, &terrascope.WaitOptions{
			MaxAttempts: 1,
			OnObserve:   func(state string) { observed = append(observed, state) },
		})

		state, err := waiter.Wait(context.Background())
		require.ErrorIs(t, err, terrascope.ErrWaitExceeded)
		assert.Equal(t, "queued", state)

		// The initial fetch is free; the budget covers one poll.
		assert.Equal(t, 2, script.fetches)
		assert.Equal(t, []string{"queued", "queued"}, observed)
		assert.Contains(t, err.Error(), "order-1")
		assert.Contains(t, err.Error(), "1 attempts")
	})

	t.Run("unknown target state", func(t *testing.T) {
		t.Parallel()

		script := &scriptedFetch{states: []string{"queued"}}
		waiter := terrascope.NewWaiter("order-1", "exploded", terrascope.OrderStates, script.fetch, &terrascope.WaitOptions{})

		_, err := waiter.Wait(context.Background())
		require.ErrorIs(t, err, terrascope.ErrUnknownState)
		assert.Zero(t, script.fetches)
	})

	t.Run("fetch errors propagate", func(t *testing.T) {
		t.Parallel()

		fetch := func(ctx context.Context) (string, error) {
			return "", assert.AnError
		}

		waiter := terrascope.NewWaiter("order-1", "success", terrascope.OrderStates, fetch, &terrascope.WaitOptions{})

		_, err := waiter.Wait(context.Background())
		require.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "order-1")
	})

	t.Run("nil fetch", func(t *testing.T) {
		t.Parallel()

		waiter := terrascope.NewWaiter("order-1", "success", terrascope.OrderStates, nil, nil)

		_, err := waiter.Wait(context.Background())
		require.ErrorIs(t, err, terrascope.ErrStateFetchRequired)
	})

	t.Run("cancellation interrupts the delay", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())

		script := &scriptedFetch{states: []string{"queued"}}
		waiter := terrascope.NewWaiter("order-1", "success", terrascope.OrderStates, script.fetch, &terrascope.WaitOptions{
			Delay: time.Hour,
		})

		go func() {
			time.Sleep(20 * time.Millisecond)
			cancel()
		}()

		start := time.Now()

		_, err := waiter.Wait(ctx)
		require.ErrorIs(t, err, context.Canceled)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("fetch time is subtracted from the delay", func(t *testing.T) {
		t.Parallel()

		fetches := 0
		fetch := func(ctx context.Context) (string, error) {
			fetches++

			// Each fetch takes longer than the configured delay, so no
			// additional sleeping should happen.
			time.Sleep(30 * time.Millisecond)

			if fetches < 3 {
				return "running", nil
			}

			return "success", nil
		}

		waiter := terrascope.NewWaiter("order-1", "success", terrascope.OrderStates, fetch, &terrascope.WaitOptions{
			Delay: 20 * time.Millisecond,
		})

		start := time.Now()

		state, err := waiter.Wait(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "success", state)

		// Three 30ms fetches and no extra delay beyond scheduling noise.
		assert.Less(t, time.Since(start), 150*time.Millisecond)
	})
}

func TestWaiter_Passed(t *testing.T) {
	t.Parallel()

	// A resource can move past the target between polls; reaching any
	// later position satisfies the wait.
	script := &scriptedFetch{states: []string{"queued", "partial"}}
	waiter := terrascope.NewWaiter("order-1", "running", terrascope.OrderStates, script.fetch, &terrascope.WaitOptions{})

	state, err := waiter.Wait(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "partial", state)
}
