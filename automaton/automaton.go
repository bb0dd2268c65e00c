package automaton

import "github.com/rtweeks/fair-cg/charset"

// Automaton is the frozen, immutable record of a finite state machine:
// its ordered action registry, its ordered state registry, the start
// state, and an optional machine-wide default transition.
type Automaton struct {
	actions     []*Action
	actionIndex map[string]*Action

	states     []*State
	stateIndex map[string]*State

	startState     string
	machineDefault *Transition

	errorStateDeclared bool
}

// Actions returns the action registry in declaration order (== OrderKey
// order, since OrderKey is assigned as a dense prefix at declaration).
func (a *Automaton) Actions() []*Action {
	return append([]*Action(nil), a.actions...)
}

// Action looks up a declared action by name.
func (a *Automaton) Action(name string) (*Action, bool) {
	act, ok := a.actionIndex[name]
	return act, ok
}

// States returns the state registry in declaration order. If the user
// never declared "error", it is appended as a final entry representing
// the implicit sink (see ErrorStateDeclared).
func (a *Automaton) States() []*State {
	return append([]*State(nil), a.states...)
}

// State looks up a declared state by name, including the implicit
// "error" sink if it was auto-inserted.
func (a *Automaton) State(name string) (*State, bool) {
	s, ok := a.stateIndex[name]
	return s, ok
}

// ErrorStateDeclared reports whether the caller explicitly declared a
// state named "error" (in which case its Final flag and transitions are
// authoritative) as opposed to it having been auto-inserted as an empty
// non-final sink.
func (a *Automaton) ErrorStateDeclared() bool {
	return a.errorStateDeclared
}

// StartState is the name of the first state registered.
func (a *Automaton) StartState() string {
	return a.startState
}

// MachineDefault is the machine-wide default transition, if set.
func (a *Automaton) MachineDefault() (Transition, bool) {
	if a.machineDefault == nil {
		return Transition{}, false
	}
	return *a.machineDefault, true
}

// Resolve implements the per-state, per-representative-code-point
// resolution rule: explicit match on this state, else this state's
// default, else the machine-wide default, else the error sink with an
// empty action set.
func (a *Automaton) Resolve(state *State, r rune) (end string, actions []string) {
	if t, ok := state.find(r); ok {
		return t.EndState, t.Actions
	}
	if t, ok := state.DefaultTransition(); ok {
		return t.EndState, t.Actions
	}
	if a.machineDefault != nil {
		return a.machineDefault.EndState, a.machineDefault.Actions
	}
	return ErrorStateName, nil
}

// AllExplicitKeys returns every explicit character-set key registered on
// any state, in the order they were registered across the whole
// automaton (state registration order, then per-state transition order).
// This is the Partitioner's input sequence.
func (a *Automaton) AllExplicitKeys() []charset.CodePointSet {
	var out []charset.CodePointSet
	for _, s := range a.states {
		for _, et := range s.explicit {
			out = append(out, et.key)
		}
	}
	return out
}
