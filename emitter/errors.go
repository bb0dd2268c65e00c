package emitter

import "github.com/pkg/errors"

// ErrIO reports a failure writing generated output to its destination
// (a short write, or the underlying io.Writer/io.WriteString error
// itself, carried as the wrapping message per errors.Wrap's convention
// elsewhere in this module).
var ErrIO = errors.New("i/o error writing generated output")
