package automaton

import (
	"errors"
	"strconv"
)

var (
	// ErrCapacityExceeded is returned when the arena has no room left for
	// the states a character would need.
	ErrCapacityExceeded = errors.New("automaton: state capacity exceeded")
	// ErrPropagationAlreadyRun is returned by a second ComputeCounts call.
	ErrPropagationAlreadyRun = errors.New("automaton: occurrence counts already computed")
	// ErrQueryBeforeCountsComputed is returned when querying an automaton
	// that did not come out of ComputeCounts.
	ErrQueryBeforeCountsComputed = errors.New("automaton: occurrence counts not computed")
	// ErrSealed is returned by Extend once counts have been computed.
	ErrSealed = errors.New("automaton: cannot extend after occurrence counts are computed")
)

// CapacityError reports how many states were needed against the configured maximum.
type CapacityError struct {
	MaxStates int
	Needed    int
}

func (e *CapacityError) Error() string {
	return ErrCapacityExceeded.Error() +
		" (max_states=" + strconv.Itoa(e.MaxStates) +
		", needed=" + strconv.Itoa(e.Needed) + ")"
}

func (e *CapacityError) Unwrap() error {
	return ErrCapacityExceeded
}
