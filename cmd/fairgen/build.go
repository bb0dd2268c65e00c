package fairgen

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtweeks/fair-cg/analyzer"
	"github.com/rtweeks/fair-cg/config"
	"github.com/rtweeks/fair-cg/emitter"

	// Register the emitters this command dispatches by name.
	_ "github.com/rtweeks/fair-cg/emitter/cpp"
	_ "github.com/rtweeks/fair-cg/emitter/dot"

	"github.com/rtweeks/fair-cg/util"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build an automaton from a YAML spec and run the requested emitters",
	Run:   buildRun,
}

func init() {
	buildCmd.Flags().String("spec", "", "Path to a YAML automaton spec")
	buildCmd.Flags().String("class", "Parser", "Generated C++ class name")
	buildCmd.Flags().String("out", "", "Output file base (writes <out>.<ext> per emitter); empty means stdout")
	buildCmd.Flags().StringSlice("emit", []string{"cpp", "dot"}, "Comma-separated list of emitters to run")
	buildCmd.Flags().String("char-type", "", "Override the generated character type (default wchar_t)")
	buildCmd.Flags().String("namespace", "", "Wrap the generated C++ class in this namespace")
	buildCmd.Flags().String("message", "", "Top-of-file comment inserted into generated output")
	buildCmd.Flags().String("rankdir", "", "Graphviz rankdir override (default LR)")
	buildCmd.Flags().CountP("verbose", "v", "Increase log verbosity")
	buildCmd.MarkFlagRequired("spec")
}

var extensionByEmitter = map[string]string{
	"cpp": "cpp",
	"dot": "dot",
}

func buildRun(cmd *cobra.Command, args []string) {
	specPath, err := cmd.Flags().GetString("spec")
	if err != nil {
		log.Panic(err)
	}

	spec, err := config.LoadSpec(specPath)
	if err != nil {
		LogError("failed to load automaton spec", "path", specPath, "reason", err)
		return
	}

	a, err := config.Build(spec)
	if err != nil {
		LogError("failed to build automaton", "path", specPath, "reason", err)
		return
	}

	cfg, err := config.NewFromCommand(cmd)
	if err != nil {
		LogError("failed to read flags", "reason", err)
		return
	}

	emitNames, err := cmd.Flags().GetStringSlice("emit")
	if err != nil {
		log.Panic(err)
	}

	var an *analyzer.Analyzer
	for _, name := range emitNames {
		if name == "cpp" {
			an, err = analyzer.New(a)
			if err != nil {
				LogError("failed to analyze automaton", "path", specPath, "reason", err)
				return
			}
			break
		}
	}

	outBase, err := cmd.Flags().GetString("out")
	if err != nil {
		log.Panic(err)
	}

	for _, name := range emitNames {
		out, err := emitter.Registry.Get(name)
		if err != nil {
			LogError("unsupported emitter", "name", name)
			continue
		}

		dest, closer, err := openOutput(outBase, name)
		if err != nil {
			LogError("failed to open output", "emitter", name, "reason", err)
			continue
		}

		cw := util.NewCountingWriter(dest)
		genErr := out.Generate(a, an, cfg, cw)
		if closer != nil {
			closer.Close()
		}
		if genErr != nil {
			LogError("emitter failed", "emitter", name, "reason", genErr)
			continue
		}
		log.Printf("INFO %d bytes for emitter %q (class %s)\n", cw.Count(), name, cfg.ClassName)
	}
}

func openOutput(base, emitterName string) (*os.File, *os.File, error) {
	if base == "" {
		return os.Stdout, nil, nil
	}
	ext := extensionByEmitter[emitterName]
	f, err := os.Create(base + "." + ext)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}
