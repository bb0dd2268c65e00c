package automaton

import "github.com/rtweeks/fair-cg/charset"

// TransitionKey selects which of a state's transitions fires for a given
// code point: either an explicit character set, or the state's default.
type TransitionKey struct {
	explicit charset.CodePointSet
	isDefault bool
}

// Explicit builds a TransitionKey for an explicit character set.
func Explicit(chars charset.CodePointSet) TransitionKey {
	return TransitionKey{explicit: chars}
}

// Default builds the TransitionKey for a state's default transition.
func Default() TransitionKey {
	return TransitionKey{isDefault: true}
}

func (k TransitionKey) IsDefault() bool { return k.isDefault }
func (k TransitionKey) Chars() charset.CodePointSet { return k.explicit }

// Transition is a (character set, action sequence, destination state)
// tuple, immutable once built. EndState may name a state that has not yet
// been declared; Freeze does not check it, analyzer.New (or an explicit
// Builder.Validate) reports a reference that never gets declared.
type Transition struct {
	EndState string
	Actions  []string // ordered action names; strictly increasing by OrderKey
}
