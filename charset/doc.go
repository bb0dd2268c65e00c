// Package charset decodes raw bytes into code points and renders sets of
// code points as compact, human-readable listings for diagnostics and for
// Graphviz edge labels.
package charset
