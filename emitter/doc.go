// Package emitter holds the append-only text-assembly helper shared by
// the emitter/cpp and emitter/dot packages, and the small Output
// registry that lets a caller (the fairgen CLI) select an emitter by
// name instead of importing each one directly.
package emitter
