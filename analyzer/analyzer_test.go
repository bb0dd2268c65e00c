package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/charset"
)

// buildSignedInt mirrors automaton_test.go's fixture: actions
// set_sign/accumulate, states start(initial)/digits(final), no defaults
// anywhere, so cc_other always lands in the error sink.
func buildSignedInt(t *testing.T) *automaton.Automaton {
	b := automaton.NewBuilder()
	_, err := b.DeclareAction("set_sign", automaton.ActionOptions{CharVar: "ch"}, automaton.StringFragment("sign = ch;"))
	require.NoError(t, err)
	_, err = b.DeclareAction("accumulate", automaton.ActionOptions{CharVar: "ch"}, automaton.StringFragment("value = value*10 + (ch - '0');"))
	require.NoError(t, err)

	start, err := b.DeclareState("start", false)
	require.NoError(t, err)
	digits, err := b.DeclareState("digits", true)
	require.NoError(t, err)

	signs, err := charset.ParseKey("+-")
	require.NoError(t, err)
	nums, err := charset.ParseKey("0-9")
	require.NoError(t, err)

	require.NoError(t, start.AddTransition(automaton.Explicit(signs), "start", []string{"set_sign"}))
	require.NoError(t, start.AddTransition(automaton.Explicit(nums), "digits", []string{"accumulate"}))
	require.NoError(t, digits.AddTransition(automaton.Explicit(nums), "digits", []string{"accumulate"}))

	a, err := b.Freeze()
	require.NoError(t, err)
	return a
}

func TestNewRejectsUnknownStateReferences(t *testing.T) {
	b := automaton.NewBuilder()
	s, err := b.DeclareState("s", false)
	require.NoError(t, err)
	key, err := charset.ParseKey("a")
	require.NoError(t, err)
	require.NoError(t, s.AddTransition(automaton.Explicit(key), "nowhere", nil))

	a, err := b.Freeze()
	require.NoError(t, err)

	_, err = New(a)
	require.Error(t, err)
	var unk *automaton.ErrUnknownState
	require.ErrorAs(t, err, &unk)
	assert.Equal(t, "nowhere", unk.Name)
}

func TestSignedIntResolutionSequence(t *testing.T) {
	a := buildSignedInt(t)
	an, err := New(a)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"start", "digits", "error"}, an.States())
	assert.Equal(t, "start", an.StartState())

	final := an.FinalStates()
	assert.True(t, final["digits"])
	assert.False(t, final["start"])

	classes := an.Classes()
	require.Equal(t, 2, classes.Len())

	signIdx, ok := classes.Classify('+')
	require.True(t, ok)
	digitIdx, ok := classes.Classify('5')
	require.True(t, ok)

	// "-3" -> start on '-', start on '3'
	end, mask, err := an.TransitionOf("start", signIdx)
	require.NoError(t, err)
	assert.Equal(t, "start", end)
	setSign, _ := a.Action("set_sign")
	assert.Equal(t, uint64(1)<<uint(setSign.OrderKey), mask)

	end, mask, err = an.TransitionOf("start", digitIdx)
	require.NoError(t, err)
	assert.Equal(t, "digits", end)
	accumulate, _ := a.Action("accumulate")
	assert.Equal(t, uint64(1)<<uint(accumulate.OrderKey), mask)

	end, mask, err = an.TransitionOf("digits", digitIdx)
	require.NoError(t, err)
	assert.Equal(t, "digits", end)
	assert.Equal(t, uint64(1)<<uint(accumulate.OrderKey), mask)

	// anything else from either state falls to cc_other -> error, no actions
	end, mask, err = an.TransitionOf("start", -1)
	require.NoError(t, err)
	assert.Equal(t, automaton.ErrorStateName, end)
	assert.Zero(t, mask)

	end, mask, err = an.TransitionOf("digits", -1)
	require.NoError(t, err)
	assert.Equal(t, automaton.ErrorStateName, end)
	assert.Zero(t, mask)
}

func TestStateDefaultBeatsMachineDefaultThroughAnalyzer(t *testing.T) {
	b := automaton.NewBuilder()
	s, err := b.DeclareState("s", false)
	require.NoError(t, err)
	_, err = b.DeclareState("state-default-target", false)
	require.NoError(t, err)
	_, err = b.DeclareState("machine-default-target", false)
	require.NoError(t, err)

	require.NoError(t, s.AddTransition(automaton.Default(), "state-default-target", nil))
	require.NoError(t, b.SetMachineDefault("machine-default-target", nil))

	a, err := b.Freeze()
	require.NoError(t, err)
	an, err := New(a)
	require.NoError(t, err)

	end, mask, err := an.TransitionOf("s", -1)
	require.NoError(t, err)
	assert.Equal(t, "state-default-target", end)
	assert.Zero(t, mask)
}

func TestActionBitmaskOrdering(t *testing.T) {
	b := automaton.NewBuilder()
	_, err := b.DeclareAction("a", automaton.ActionOptions{}, nil)
	require.NoError(t, err)
	_, err = b.DeclareAction("b", automaton.ActionOptions{}, nil)
	require.NoError(t, err)
	_, err = b.DeclareAction("c", automaton.ActionOptions{}, nil)
	require.NoError(t, err)

	s, err := b.DeclareState("s", false)
	require.NoError(t, err)
	key, err := charset.ParseKey("x")
	require.NoError(t, err)
	require.NoError(t, s.AddTransition(automaton.Explicit(key), "s", []string{"a", "c"}))

	a, err := b.Freeze()
	require.NoError(t, err)
	an, err := New(a)
	require.NoError(t, err)

	classIdx, ok := an.Classes().Classify('x')
	require.True(t, ok)
	_, mask, err := an.TransitionOf("s", classIdx)
	require.NoError(t, err)
	assert.Equal(t, uint64(0b101), mask)
}

func TestTransitionOfRejectsUnknownStateAndClass(t *testing.T) {
	a := buildSignedInt(t)
	an, err := New(a)
	require.NoError(t, err)

	_, _, err = an.TransitionOf("nope", -1)
	var unk *automaton.ErrUnknownState
	require.ErrorAs(t, err, &unk)

	_, _, err = an.TransitionOf("start", 99)
	assert.ErrorIs(t, err, ErrInvalidClass)
}

// TestTransitionTotality exercises every (state, class-or-other) pair and
// requires that each resolves without error: the resolution chain
// (explicit -> state default -> machine default -> error sink) is total
// by construction once an Analyzer exists.
func TestTransitionTotality(t *testing.T) {
	a := buildSignedInt(t)
	an, err := New(a)
	require.NoError(t, err)

	n := an.Classes().Len()
	for _, state := range an.States() {
		for idx := -1; idx < n; idx++ {
			_, _, err := an.TransitionOf(state, idx)
			assert.NoError(t, err, "state %q class %d", state, idx)
		}
	}
}
