package terrascope

import (
	"fmt"
	"strings"
)

// lastActiveState is the final non-terminal entry of every state sequence.
// Everything ordered after it is terminal.
const lastActiveState = "running"

// StateSequence is the fixed, totally ordered list of states a server-side
// resource moves through. Ordering is defined only by position in the
// sequence, never by observation time.
type StateSequence []string

// OrderStates is the state sequence for imagery orders.
var OrderStates = StateSequence{"queued", "running", "failed", "success", "partial", "cancelled"}

// TaskingOrderStates is the state sequence for tasking orders.
var TaskingOrderStates = StateSequence{"queued", "running", "success", "failed", "cancelled"}

// Index returns the position of state in the sequence.
func (s StateSequence) Index(state string) (int, error) {
	for i, name := range s {
		if name == state {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%w: %q (expected one of: %s)", ErrUnknownState, state, strings.Join(s, ", "))
}

// Reached reports whether state equals or is ordered after target.
func (s StateSequence) Reached(state, target string) (bool, error) {
	statePos, err := s.Index(state)
	if err != nil {
		return false, err
	}

	targetPos, err := s.Index(target)
	if err != nil {
		return false, err
	}

	return statePos >= targetPos, nil
}

// Passed reports whether state is ordered strictly after target.
func (s StateSequence) Passed(state, target string) (bool, error) {
	statePos, err := s.Index(state)
	if err != nil {
		return false, err
	}

	targetPos, err := s.Index(target)
	if err != nil {
		return false, err
	}

	return statePos > targetPos, nil
}

// Final reports whether state is terminal, i.e. ordered after the last
// active state.
func (s StateSequence) Final(state string) (bool, error) {
	statePos, err := s.Index(state)
	if err != nil {
		return false, err
	}

	activePos, err := s.Index(lastActiveState)
	if err != nil {
		return false, err
	}

	return statePos > activePos, nil
}
