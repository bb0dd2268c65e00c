package config

import (
	"github.com/rtweeks/fair-cg/util"
)

// EmitConfig carries every knob an emitter needs that isn't part of the
// automaton itself: target language details, output routing, and
// Graphviz presentation overrides.
type EmitConfig struct {
	ClassName string
	CharType  string
	Namespace string

	// Output routing fields for the C++ emitter. NewFromCommand fills
	// FileBase from --out; no emitter in this module reads FileBase, To,
	// ToHeader or ToImpl. The registered "cpp" output writes header and
	// implementation together into the one writer it is given, and no
	// separate ".h" file is produced.
	FileBase string
	To       string
	ToHeader string
	ToImpl   string

	Message string

	Graphviz GraphvizConfig

	Verbosity util.VerbosityLevel

	// Logger receives Debugf traces of per-state/per-edge emission
	// decisions from the cpp and dot generators. Never populated from
	// YAML (an interface has no decodable shape); NewFromCommand derives
	// it from Verbosity instead.
	Logger util.Logger
}

// GraphvizConfig collects the dot emitter's presentation hooks.
type GraphvizConfig struct {
	RankDir    string
	GraphAttrs map[string]string
	NodeAttrs  map[string]string
	EdgeAttrs  map[string]string

	// StateAttrs overrides node attributes for one named state.
	StateAttrs map[string]map[string]string
	// EdgeAttrOverrides overrides edge attributes keyed by "from->to".
	EdgeAttrOverrides map[string]map[string]string

	// Prologue is emitted verbatim after the rankdir and the graph, node
	// and edge attribute lines, before the start node, for callers that
	// want extra subgraph/rank content.
	Prologue string
}

// Default returns the baseline EmitConfig: wchar_t characters, no
// namespace, left-to-right dot layout.
func Default() EmitConfig {
	return EmitConfig{
		CharType: "wchar_t",
		Graphviz: GraphvizConfig{
			RankDir: "LR",
		},
		Logger: util.DontLog{},
	}
}
