// Package analyzer ties the automaton and partition packages together
// into the single read-only view an emitter needs: the character-class
// partition derived from the automaton's explicit keys, and a per-state,
// per-class transition lookup expressed as an end state plus an action
// bitmask keyed by each action's OrderKey.
//
// Constructing an Analyzer is also where dangling state references are
// finally caught. automaton.Builder deliberately allows a transition to
// name a state not yet declared (forward references are routine when
// states are defined in the order an author thinks of them), so nothing
// checks end-state existence until here.
package analyzer
