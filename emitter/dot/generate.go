package dot

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/charset"
	"github.com/rtweeks/fair-cg/config"
	"github.com/rtweeks/fair-cg/emitter"
	"github.com/rtweeks/fair-cg/util"
)

// logger returns cfg.Logger, falling back to a no-op logger for a
// zero-value EmitConfig that never went through config.Default().
func logger(cfg config.EmitConfig) util.Logger {
	if cfg.Logger == nil {
		return util.DontLog{}
	}
	return cfg.Logger
}

// Generate writes a as a Graphviz digraph to w: left-to-right rank
// direction by default, an invisible start node feeding start_state, one
// node per state (doublecircle for final states), and one edge per
// explicit or state-default transition.
func Generate(a *automaton.Automaton, cfg config.EmitConfig, w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph {\n")

	rankdir := cfg.Graphviz.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}
	fmt.Fprintf(&b, "  rankdir=%s;\n", quoteID(rankdir))

	if len(cfg.Graphviz.GraphAttrs) > 0 {
		fmt.Fprintf(&b, "  %s;\n", renderAttrs(cfg.Graphviz.GraphAttrs))
	}
	fmt.Fprintf(&b, "  node [%s];\n", renderAttrs(mergeDefault(map[string]string{"shape": "circle"}, cfg.Graphviz.NodeAttrs)))
	if len(cfg.Graphviz.EdgeAttrs) > 0 {
		fmt.Fprintf(&b, "  edge [%s];\n", renderAttrs(cfg.Graphviz.EdgeAttrs))
	}
	if cfg.Graphviz.Prologue != "" {
		b.WriteString(cfg.Graphviz.Prologue)
		b.WriteString("\n")
	}

	start := a.StartState()
	fmt.Fprintf(&b, "  %s [shape=point,style=invis];\n", quoteID("__start"))
	fmt.Fprintf(&b, "  %s -> %s;\n", quoteID("__start"), quoteID(start))

	final := make(map[string]bool)
	for _, s := range a.States() {
		if s.Final {
			final[s.Name] = true
		}
	}

	for _, s := range a.States() {
		shape := "circle"
		if final[s.Name] {
			shape = "doublecircle"
		}
		attrs := map[string]string{"shape": shape}
		for k, v := range cfg.Graphviz.StateAttrs[s.Name] {
			attrs[k] = v
		}
		fmt.Fprintf(&b, "  %s [%s];\n", quoteID(s.Name), renderAttrs(attrs))
	}

	log := logger(cfg)
	for _, s := range a.States() {
		log.Debugf("dot: emitting %d explicit edge(s) for state %q", len(s.Explicit()), s.Name)
		for _, et := range s.Explicit() {
			if err := writeEdge(&b, cfg, s.Name, et.Trans.EndState, edgeLabel(et.Key, et.Trans.Actions)); err != nil {
				return err
			}
		}
		if t, ok := s.DefaultTransition(); ok {
			log.Debugf("dot: emitting default edge for state %q -> %q", s.Name, t.EndState)
			if err := writeEdge(&b, cfg, s.Name, t.EndState, edgeLabel(nil, t.Actions)); err != nil {
				return err
			}
		}
	}

	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return errors.Wrap(emitter.ErrIO, err.Error())
	}
	return nil
}

func writeEdge(b *strings.Builder, cfg config.EmitConfig, from, to, label string) error {
	attrs := map[string]string{"label": label}
	key := from + "->" + to
	for k, v := range cfg.Graphviz.EdgeAttrOverrides[key] {
		attrs[k] = v
	}
	fmt.Fprintf(b, "  %s -> %s [%s];\n", quoteID(from), quoteID(to), renderAttrs(attrs))
	return nil
}

// edgeLabel renders an edge's label as the Charset pretty-print of its
// triggering key (or the literal "other" for a default transition,
// key == nil) followed by a newline and its comma-separated action list.
func edgeLabel(key charset.CodePointSet, actions []string) string {
	var head string
	if key == nil {
		head = "other"
	} else {
		head = stripQuotes(charset.Pretty(key))
	}
	return head + "\n" + strings.Join(actions, ",")
}

func stripQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

// quoteID quotes s for use as a Graphviz identifier or label, escaping
// '"' and '\' per spec.md §4.6.
func quoteID(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

func mergeDefault(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(overrides))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

// renderAttrs renders a Graphviz attribute map as "key=value, ..." with
// keys sorted for stable output, each value quoted.
func renderAttrs(attrs map[string]string) string {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, quoteID(attrs[k]))
	}
	return strings.Join(parts, ", ")
}
