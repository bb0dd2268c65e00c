package fairgen

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/rtweeks/fair-cg/config"
	"github.com/rtweeks/fair-cg/emitter/dot"
)

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Build an automaton from a YAML spec and emit its Graphviz diagram",
	Run:   dotRun,
}

func init() {
	dotCmd.Flags().String("spec", "", "Path to a YAML automaton spec")
	dotCmd.Flags().String("out", "", "Output file (empty means stdout)")
	dotCmd.Flags().String("rankdir", "", "Graphviz rankdir override (default LR)")
	dotCmd.Flags().String("render", "", "If set (e.g. \"svg\", \"png\"), pipe through an external dot binary and write the rendered image instead of the raw digraph")
	dotCmd.MarkFlagRequired("spec")
}

func dotRun(cmd *cobra.Command, args []string) {
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

	outPath, err := cmd.Flags().GetString("out")
	if err != nil {
		log.Panic(err)
	}
	dest := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			LogError("failed to open output", "path", outPath, "reason", err)
			return
		}
		defer f.Close()
		dest = f
	}

	format, err := cmd.Flags().GetString("render")
	if err != nil {
		log.Panic(err)
	}
	if format != "" {
		rendered, err := dot.Render(a, cfg, format)
		if err != nil {
			LogError("external dot render failed", "reason", err)
			return
		}
		if _, err := dest.Write(rendered); err != nil {
			LogError("failed to write rendered output", "reason", err)
		}
		return
	}

	if err := dot.Generate(a, cfg, dest); err != nil {
		LogError("dot emitter failed", "reason", err)
	}
}
