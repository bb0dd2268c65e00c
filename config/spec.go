package config

import (
	"io/ioutil"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/charset"
)

// ActionSpec is one entry of an AutomatonSpec's action list.
type ActionSpec struct {
	Name string `yaml:"name"`
	Char string `yaml:"char,omitempty"`
	Code string `yaml:"code"`
}

// TransitionSpec is one entry of a StateSpec's transition list. A
// transition is either explicit (Key set, e.g. "a-f" or "xyz") or the
// state's default (Default: true, Key ignored).
type TransitionSpec struct {
	Key     string   `yaml:"key,omitempty"`
	Default bool     `yaml:"default,omitempty"`
	To      string   `yaml:"to"`
	Actions []string `yaml:"actions,omitempty"`
}

// StateSpec is one entry of an AutomatonSpec's state list.
type StateSpec struct {
	Name        string           `yaml:"name"`
	Final       bool             `yaml:"final,omitempty"`
	Transitions []TransitionSpec `yaml:"transitions,omitempty"`
}

// AutomatonSpec is the on-disk YAML fixture format consumed by the
// fairgen CLI's build subcommand: actions first (all of them, order
// fixes their OrderKey), then states in declaration order (the first is
// the start state), each carrying its own transitions, then an optional
// machine-wide default.
type AutomatonSpec struct {
	Actions        []ActionSpec    `yaml:"actions,omitempty"`
	States         []StateSpec     `yaml:"states"`
	MachineDefault *TransitionSpec `yaml:"machine_default,omitempty"`
}

// LoadSpec reads and decodes an AutomatonSpec from path.
func LoadSpec(path string) (AutomatonSpec, error) {
	var spec AutomatonSpec
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return spec, errors.Wrapf(err, "reading automaton spec %q", path)
	}
	if err := yaml.Unmarshal(raw, &spec); err != nil {
		return spec, errors.Wrapf(err, "parsing automaton spec %q", path)
	}
	return spec, nil
}

// Build compiles an AutomatonSpec into a frozen *automaton.Automaton,
// running it through exactly the builder API a programmatic caller would
// use: declare every action, declare every state, register every
// transition, then Freeze.
func Build(spec AutomatonSpec) (*automaton.Automaton, error) {
	b := automaton.NewBuilder()

	for _, as := range spec.Actions {
		opts := automaton.ActionOptions{CharVar: as.Char}
		if _, err := b.DeclareAction(as.Name, opts, automaton.StringFragment(as.Code)); err != nil {
			return nil, errors.Wrapf(err, "action %q", as.Name)
		}
	}

	builders := make(map[string]*automaton.StateBuilder, len(spec.States))
	for _, ss := range spec.States {
		sb, err := b.DeclareState(ss.Name, ss.Final)
		if err != nil {
			return nil, errors.Wrapf(err, "state %q", ss.Name)
		}
		builders[ss.Name] = sb
	}

	for _, ss := range spec.States {
		sb := builders[ss.Name]
		for _, ts := range ss.Transitions {
			key, err := transitionKey(ts)
			if err != nil {
				return nil, errors.Wrapf(err, "state %q", ss.Name)
			}
			if err := sb.AddTransition(key, ts.To, ts.Actions); err != nil {
				return nil, errors.Wrapf(err, "state %q", ss.Name)
			}
		}
	}

	if spec.MachineDefault != nil {
		if err := b.SetMachineDefault(spec.MachineDefault.To, spec.MachineDefault.Actions); err != nil {
			return nil, errors.Wrap(err, "machine default")
		}
	}

	return b.Freeze()
}

func transitionKey(ts TransitionSpec) (automaton.TransitionKey, error) {
	if ts.Default {
		return automaton.Default(), nil
	}
	chars, err := charset.ParseKey(ts.Key)
	if err != nil {
		return automaton.TransitionKey{}, errors.Wrapf(err, "transition key %q", ts.Key)
	}
	return automaton.Explicit(chars), nil
}
