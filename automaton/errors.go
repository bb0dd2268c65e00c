package automaton

import (
	"github.com/pkg/errors"

	"github.com/rtweeks/fair-cg/charset"
)

// Definition-time errors, returned by Builder and StateBuilder methods.
var (
	ErrDuplicateAction         = errors.New("duplicate action")
	ErrDuplicateState          = errors.New("duplicate state")
	ErrLateAction              = errors.New("action declared after first state")
	ErrDuplicateDefault        = errors.New("default transition already set for this state")
	ErrDuplicateMachineDefault = errors.New("machine-wide default transition already set")
	ErrUndefinedAction         = errors.New("undefined action")
	ErrInvalidKey              = errors.New("invalid transition key")
	ErrFrozen                  = errors.New("automaton is frozen")
)

// ErrOverlappingTransition reports that a newly registered explicit key
// intersects one already registered on the same state.
type ErrOverlappingTransition struct {
	State string
	Chars charset.CodePointSet
}

func (e *ErrOverlappingTransition) Error() string {
	return "state " + e.State + ": overlapping transition on " + charset.Pretty(e.Chars)
}

// ErrActionOutOfOrder reports that a transition's action list did not
// strictly increase by OrderKey at the named action.
type ErrActionOutOfOrder struct {
	Name string
}

func (e *ErrActionOutOfOrder) Error() string {
	return "action out of order: " + e.Name
}

// ErrUnknownState reports that a transition named a state that was never
// declared (raised by analyzer.New and Builder.Validate, not at
// registration or Freeze, since transitions may forward-reference states).
type ErrUnknownState struct {
	Name string
}

func (e *ErrUnknownState) Error() string {
	return "unknown state: " + e.Name
}
