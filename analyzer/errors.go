package analyzer

import "github.com/pkg/errors"

// ErrInvalidClass reports that TransitionOf was asked about a class index
// outside the range produced by the Analyzer's own Partition.
var ErrInvalidClass = errors.New("invalid character class index")
