package automaton

import (
	"github.com/joeshaw/multierror"
	"github.com/pkg/errors"
)

// Builder accumulates actions, states and transitions. Nothing it
// produces is visible to an Analyzer until Freeze returns an *Automaton.
type Builder struct {
	actions     []*Action
	actionIndex map[string]*Action

	states     []*State
	stateIndex map[string]*State

	startState     string
	machineDefault *Transition

	frozen bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		actionIndex: make(map[string]*Action),
		stateIndex:  make(map[string]*State),
	}
}

// DeclareAction registers a new action. Actions must all be declared
// before the first state.
func (b *Builder) DeclareAction(name string, options ActionOptions, frag CodeFragment) (*Action, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	if len(b.states) > 0 {
		return nil, errors.Wrapf(ErrLateAction, "action %q", name)
	}
	if _, exists := b.actionIndex[name]; exists {
		return nil, errors.Wrapf(ErrDuplicateAction, "action %q", name)
	}
	act := &Action{
		Name:         name,
		OrderKey:     len(b.actions),
		Options:      options,
		CodeFragment: frag,
	}
	b.actions = append(b.actions, act)
	b.actionIndex[name] = act
	return act, nil
}

// DeclareState registers a new state. The first state declared becomes
// the start state.
func (b *Builder) DeclareState(name string, final bool) (*StateBuilder, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	if _, exists := b.stateIndex[name]; exists {
		return nil, errors.Wrapf(ErrDuplicateState, "state %q", name)
	}
	s := &State{Name: name, Final: final}
	if len(b.states) == 0 {
		b.startState = name
	}
	b.states = append(b.states, s)
	b.stateIndex[name] = s
	return &StateBuilder{b: b, s: s}, nil
}

// validateActionOrder checks that actionSeq names declared actions whose
// OrderKey strictly increases, per spec.md's Transition invariant.
func (b *Builder) validateActionOrder(actionSeq []string) error {
	prev := -1
	for _, name := range actionSeq {
		act, ok := b.actionIndex[name]
		if !ok {
			return errors.Wrapf(ErrUndefinedAction, "action %q", name)
		}
		if act.OrderKey <= prev {
			return &ErrActionOutOfOrder{Name: name}
		}
		prev = act.OrderKey
	}
	return nil
}

// SetMachineDefault sets the machine-wide default transition, fired when
// a state has no explicit nor state-local default match.
func (b *Builder) SetMachineDefault(endState string, actionSeq []string) error {
	if b.frozen {
		return ErrFrozen
	}
	if b.machineDefault != nil {
		return ErrDuplicateMachineDefault
	}
	if err := b.validateActionOrder(actionSeq); err != nil {
		return err
	}
	b.machineDefault = &Transition{EndState: endState, Actions: actionSeq}
	return nil
}

// StateBuilder registers transitions for the state it was returned for.
type StateBuilder struct {
	b *Builder
	s *State
}

// AddTransition registers a transition under key, which is either an
// Explicit character set or the state's Default.
func (sb *StateBuilder) AddTransition(key TransitionKey, endState string, actionSeq []string) error {
	if sb.b.frozen {
		return ErrFrozen
	}
	if err := sb.b.validateActionOrder(actionSeq); err != nil {
		return err
	}
	trans := Transition{EndState: endState, Actions: actionSeq}
	if key.IsDefault() {
		if sb.s.def != nil {
			return errors.Wrapf(ErrDuplicateDefault, "state %q", sb.s.Name)
		}
		sb.s.def = &trans
		return nil
	}
	chars := key.Chars()
	if chars.IsEmpty() {
		return errors.Wrapf(ErrInvalidKey, "state %q: empty explicit key", sb.s.Name)
	}
	for _, et := range sb.s.explicit {
		if overlap := et.key.Intersect(chars); !overlap.IsEmpty() {
			return &ErrOverlappingTransition{State: sb.s.Name, Chars: overlap}
		}
	}
	sb.s.explicit = append(sb.s.explicit, explicitTransition{key: chars.Clone(), trans: trans})
	return nil
}

// Freeze resolves the reserved "error" pseudo-state per the adopted
// policy (a user-declared "error" state is authoritative; otherwise a
// non-final, transition-less sink is auto-inserted) and returns an
// immutable Automaton. No further declaring, transition-adding or
// Freeze call succeeds afterwards (each fails ErrFrozen); Validate
// still runs.
func (b *Builder) Freeze() (*Automaton, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	b.frozen = true

	errorDeclared := false
	if _, exists := b.stateIndex[ErrorStateName]; exists {
		errorDeclared = true
	} else {
		sink := &State{Name: ErrorStateName, Final: false}
		b.states = append(b.states, sink)
		b.stateIndex[ErrorStateName] = sink
	}

	return &Automaton{
		actions:            append([]*Action(nil), b.actions...),
		actionIndex:        b.actionIndex,
		states:             append([]*State(nil), b.states...),
		stateIndex:         b.stateIndex,
		startState:         b.startState,
		machineDefault:     b.machineDefault,
		errorStateDeclared: errorDeclared,
	}, nil
}

// Validate re-walks every transition's end-state reference and collects
// every dangling one into a single aggregated error via
// github.com/joeshaw/multierror, instead of the fail-fast single-error
// behavior of AddTransition/SetMachineDefault (which never check
// end-state existence, since a transition may legitimately forward-
// reference a state not yet declared). It does not freeze the builder;
// it is meant to run as an optional pre-flight check, e.g. from a CLI,
// before Freeze and analysis.
func (b *Builder) Validate() error {
	var errs multierror.Errors
	knownState := func(name string) bool {
		if name == ErrorStateName {
			return true
		}
		_, ok := b.stateIndex[name]
		return ok
	}
	checkEnd := func(stateName, endState string) {
		if !knownState(endState) {
			errs = append(errs, errors.Wrapf(&ErrUnknownState{Name: endState}, "state %q", stateName))
		}
	}
	for _, s := range b.states {
		for _, et := range s.explicit {
			checkEnd(s.Name, et.trans.EndState)
		}
		if s.def != nil {
			checkEnd(s.Name, s.def.EndState)
		}
	}
	if b.machineDefault != nil {
		checkEnd("<machine-default>", b.machineDefault.EndState)
	}
	return errs.Err()
}
