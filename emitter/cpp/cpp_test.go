package cpp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rtweeks/fair-cg/analyzer"
	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/charset"
	"github.com/rtweeks/fair-cg/config"
	"github.com/rtweeks/fair-cg/emitter"
)

func buildSignedIntAnalyzer(t *testing.T) *analyzer.Analyzer {
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
	an, err := analyzer.New(a)
	require.NoError(t, err)
	return an
}

func TestGenerateProducesClassSkeleton(t *testing.T) {
	an := buildSignedIntAnalyzer(t)
	var buf bytes.Buffer
	cw := emitter.NewCodeWriter(&buf, "    ")

	err := Generate(an, "SignedInt", config.Default(), cw)
	require.NoError(t, err)
	_, err = cw.Finalize()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "class SignedInt {")
	assert.Contains(t, out, "bool processChar(wchar_t ch);")
	assert.Contains(t, out, "enum StateType {")
	assert.Contains(t, out, "s_start,")
	assert.Contains(t, out, "s_digits,")
	assert.Contains(t, out, "s_error,")
	assert.Contains(t, out, "enum CharacterClass {")
	assert.Contains(t, out, "cc_0,")
	assert.Contains(t, out, "cc_other,")
	assert.Contains(t, out, "enum ActionType {")
	assert.Contains(t, out, "a_set_sign = 1 << 0,")
	assert.Contains(t, out, "a_accumulate = 1 << 1,")
	assert.Contains(t, out, "void do_set_sign(wchar_t ch);")
	assert.Contains(t, out, "SignedInt::SignedInt() : state_(s_start) {")
}

func TestGenerateBitmaskOrdersActionsByOrderKey(t *testing.T) {
	b := automaton.NewBuilder()
	_, err := b.DeclareAction("a", automaton.ActionOptions{}, nil)
	require.NoError(t, err)
	_, err = b.DeclareAction("c", automaton.ActionOptions{}, nil)
	require.NoError(t, err)

	s, err := b.DeclareState("s", false)
	require.NoError(t, err)
	key, err := charset.ParseKey("x")
	require.NoError(t, err)
	require.NoError(t, s.AddTransition(automaton.Explicit(key), "s", []string{"a", "c"}))

	auto, err := b.Freeze()
	require.NoError(t, err)
	an, err := analyzer.New(auto)
	require.NoError(t, err)

	var buf bytes.Buffer
	cw := emitter.NewCodeWriter(&buf, "    ")
	require.NoError(t, Generate(an, "X", config.Default(), cw))
	_, err = cw.Finalize()
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "a_a | a_c,")
}

func TestGenerateFailsOnNameCollision(t *testing.T) {
	b := automaton.NewBuilder()
	_, err := b.DeclareState("a-b", false)
	require.NoError(t, err)
	_, err = b.DeclareState("a_b", false)
	require.NoError(t, err)

	auto, err := b.Freeze()
	require.NoError(t, err)
	an, err := analyzer.New(auto)
	require.NoError(t, err)

	var buf bytes.Buffer
	cw := emitter.NewCodeWriter(&buf, "    ")
	err = Generate(an, "X", config.Default(), cw)
	require.Error(t, err)
	var collision *ErrNameCollision
	require.ErrorAs(t, err, &collision)
	assert.Equal(t, "a_b", collision.Sanitized)
}

func TestSanitizeReplacesNonIdentifierRunes(t *testing.T) {
	assert.Equal(t, "a_b", Sanitize("a-b"))
	assert.Equal(t, "a_b_c", Sanitize("a.b c"))
	assert.Equal(t, "plain", Sanitize("plain"))
}
