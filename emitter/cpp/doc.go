// Package cpp renders an analyzer.Analyzer as a C++ streaming
// character-by-character parser: state/class/action enums, the
// transition and action tables, a classification switch, and the
// processChar dispatch loop. It consumes only the Analyzer, never the
// Automaton or Builder directly.
package cpp
