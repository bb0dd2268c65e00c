package dot

import (
	"bytes"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/rtweeks/fair-cg/automaton"
	"github.com/rtweeks/fair-cg/config"
)

// ErrExternalToolFailed reports that the external dot binary exited
// with an error, or could not be started at all.
var ErrExternalToolFailed = errors.New("external dot tool failed")

// Render pipes a's Generate output to an external "dot" binary's stdin
// and returns its stdout, rendered as format (e.g. "svg", "png"). This
// is boundary plumbing: spec.md's "writes to a child process's standard
// input and relies on normal termination" model, not part of the core
// analysis engine. Callers that only need the textual digraph should
// call Generate directly.
func Render(a *automaton.Automaton, cfg config.EmitConfig, format string) ([]byte, error) {
	var src bytes.Buffer
	if err := Generate(a, cfg, &src); err != nil {
		return nil, err
	}

	cmd := exec.Command("dot", "-T"+format)
	cmd.Stdin = &src
	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(ErrExternalToolFailed, "%v: %s", err, stderr.String())
	}
	return out.Bytes(), nil
}
