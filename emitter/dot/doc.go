// Package dot renders an automaton.Automaton as a Graphviz digraph: one
// node per state, one edge per transition, labeled with the charset
// pretty-printer's rendering of the triggering character set. It
// consumes the model directly and never needs the Partitioner or an
// Analyzer.
package dot
