package dot

import (
	"io"

	"github.com/rtweeks/fair-cg/analyzer"
	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/config"
	"github.com/rtweeks/fair-cg/emitter"
)

// output adapts Generate to emitter.Output. The Analyzer argument is
// ignored: the dot emitter works off the Automaton directly and never
// needs a partition.
type output struct{}

func init() {
	emitter.Registry.MustRegister("dot", output{})
}

func (output) Generate(a *automaton.Automaton, _ *analyzer.Analyzer, cfg config.EmitConfig, w io.Writer) error {
	return Generate(a, cfg, w)
}
