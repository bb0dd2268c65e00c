package analyzer

import (
	"github.com/joeshaw/multierror"
	"github.com/pkg/errors"

	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/partition"
)

// Analyzer wraps a frozen *automaton.Automaton with the derived
// character-class partition and a resolution API shaped for code
// generation: callers ask "from this state, on this class (or
// cc_other), where do we go and what fires", not "what's the raw
// per-code-point transition table".
type Analyzer struct {
	a       *automaton.Automaton
	classes *partition.Partition
}

// New validates every transition's end-state reference across the whole
// automaton and, if all are sound, builds the character-class partition
// and returns a ready Analyzer. The partition is built once, from
// automaton.AllExplicitKeys(), and is immutable for the Analyzer's
// lifetime. A single dangling reference fails with a wrapped
// *automaton.ErrUnknownState; several fail with a *multierror.MultiError
// listing each one.
func New(a *automaton.Automaton) (*Analyzer, error) {
	if err := checkStateReferences(a); err != nil {
		return nil, err
	}
	return &Analyzer{
		a:       a,
		classes: partition.Build(a.AllExplicitKeys()),
	}, nil
}

func checkStateReferences(a *automaton.Automaton) error {
	var errs multierror.Errors
	known := func(name string) bool {
		_, ok := a.State(name)
		return ok
	}
	check := func(from, to string) {
		if !known(to) {
			errs = append(errs, errors.Wrapf(&automaton.ErrUnknownState{Name: to}, "state %q", from))
		}
	}
	for _, s := range a.States() {
		for _, et := range s.Explicit() {
			check(s.Name, et.Trans.EndState)
		}
		if t, ok := s.DefaultTransition(); ok {
			check(s.Name, t.EndState)
		}
	}
	if t, ok := a.MachineDefault(); ok {
		check("<machine-default>", t.EndState)
	}
	// A lone dangling reference is returned as-is so that errors.As can
	// reach the *automaton.ErrUnknownState; *multierror.MultiError has no
	// Unwrap.
	if len(errs) == 1 {
		return errs[0]
	}
	return errs.Err()
}

// States returns the automaton's state names in declaration order,
// including the trailing "error" entry if it was auto-inserted.
func (an *Analyzer) States() []string {
	states := an.a.States()
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.Name
	}
	return out
}

// FinalStates returns the set of state names flagged final.
func (an *Analyzer) FinalStates() map[string]bool {
	out := make(map[string]bool)
	for _, s := range an.a.States() {
		if s.Final {
			out[s.Name] = true
		}
	}
	return out
}

// Actions returns the automaton's action registry, in OrderKey order.
func (an *Analyzer) Actions() []*automaton.Action {
	return an.a.Actions()
}

// Classes returns the derived character-class partition.
func (an *Analyzer) Classes() *partition.Partition {
	return an.classes
}

// StartState is the automaton's start state name.
func (an *Analyzer) StartState() string {
	return an.a.StartState()
}

// TransitionOf resolves the transition that fires from state on the
// given character class. classIdx is an index into Classes().Classes(),
// or -1 for the cc_other sentinel (every code point belonging to none of
// the partition's members).
//
// The returned actionMask has bit (1 << action.OrderKey) set for every
// action named by the resolved transition, letting an emitter test for a
// specific action with a single bitwise AND rather than a name lookup.
func (an *Analyzer) TransitionOf(stateName string, classIdx int) (endState string, actionMask uint64, err error) {
	state, ok := an.a.State(stateName)
	if !ok {
		return "", 0, errors.WithStack(&automaton.ErrUnknownState{Name: stateName})
	}

	var end string
	var actions []string
	if classIdx == -1 {
		end, actions = an.resolveOther(state)
	} else {
		classes := an.classes.Classes()
		if classIdx < 0 || classIdx >= len(classes) {
			return "", 0, errors.Wrapf(ErrInvalidClass, "index %d", classIdx)
		}
		members := classes[classIdx].Sorted()
		if len(members) == 0 {
			return "", 0, errors.Wrapf(ErrInvalidClass, "index %d is empty", classIdx)
		}
		// Every code point in a single partition class resolves
		// identically for a given state: the partition is built so
		// that any explicit key touching this state is the union of
		// whole classes, never a fragment of one, so the first
		// member is as representative as any other.
		end, actions = an.a.Resolve(state, members[0])
	}

	mask := uint64(0)
	for _, name := range actions {
		act, ok := an.a.Action(name)
		if !ok {
			return "", 0, errors.Errorf("state %q: resolved transition names undeclared action %q", stateName, name)
		}
		mask |= 1 << uint(act.OrderKey)
	}
	return end, mask, nil
}

// resolveOther implements cc_other resolution directly rather than by
// hunting for some representative code point outside every partition
// class: cc_other is defined as "matches no explicit key anywhere", so
// by construction no state's explicit transitions can ever apply to it.
// Only a state's own default, then the machine-wide default, then the
// error sink, are in play.
func (an *Analyzer) resolveOther(state *automaton.State) (string, []string) {
	if t, ok := state.DefaultTransition(); ok {
		return t.EndState, t.Actions
	}
	if t, ok := an.a.MachineDefault(); ok {
		return t.EndState, t.Actions
	}
	return automaton.ErrorStateName, nil
}
