package emitter

import (
	"io"

	"github.com/pkg/errors"

	"github.com/rtweeks/fair-cg/analyzer"
	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/config"
)

// Output is an emitter registered by name. An Analyzer is only built from
// a frozen Automaton when something actually needs character-class
// resolution (the cpp package), so implementations that work directly
// off the Automaton (the dot package) may ignore an.
type Output interface {
	Generate(a *automaton.Automaton, an *analyzer.Analyzer, cfg config.EmitConfig, w io.Writer) error
}

type registry map[string]Output

// Registry allows instantiating emitters by name, the way fairgen's
// build subcommand resolves --emit cpp,dot without importing emitter/cpp
// and emitter/dot directly.
var Registry = registry{}

func (r registry) Register(name string, output Output) error {
	if _, exists := r[name]; exists {
		return errors.Errorf("output %s already registered", name)
	}
	r[name] = output
	return nil
}

func (r registry) MustRegister(name string, output Output) {
	if err := r.Register(name, output); err != nil {
		panic(err)
	}
}

func (r registry) Get(name string) (Output, error) {
	if output, found := r[name]; found {
		return output, nil
	}
	return nil, errors.Errorf("unsupported output: %s", name)
}
