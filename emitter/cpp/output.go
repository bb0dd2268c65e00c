package cpp

import (
	"io"

	"github.com/rtweeks/fair-cg/analyzer"
	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/config"
	"github.com/rtweeks/fair-cg/emitter"
)

// output adapts Generate to emitter.Output, so the fairgen CLI can
// select "cpp" by name instead of importing this package directly.
type output struct{}

func init() {
	emitter.Registry.MustRegister("cpp", output{})
}

func (output) Generate(a *automaton.Automaton, an *analyzer.Analyzer, cfg config.EmitConfig, w io.Writer) error {
	if an == nil {
		var err error
		an, err = analyzer.New(a)
		if err != nil {
			return err
		}
	}
	className := cfg.ClassName
	if className == "" {
		className = "Parser"
	}
	cw := emitter.NewCodeWriter(w, "    ")
	if err := Generate(an, className, cfg, cw); err != nil {
		return err
	}
	_, err := cw.Finalize()
	return err
}
