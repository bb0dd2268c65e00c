package charset

import (
	"github.com/pkg/errors"
)

// ParseKey expands a builder-facing key literal into a CodePointSet.
// Within the string, "a-b" denotes an inclusive range of code points from
// a to b; every other rune stands for itself. A trailing or isolated '-'
// (one not forming an a-b span) is taken literally, which is what lets
// Pretty's dangling-dash convention round-trip.
func ParseKey(s string) (CodePointSet, error) {
	runes := []rune(s)
	out := make(CodePointSet)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '-' {
			// A leading or trailing '-', or one that isn't a valid span
			// (checked below), is literal.
			out['-'] = struct{}{}
			continue
		}
		if i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] != '-' {
			lo, hi := runes[i], runes[i+2]
			if hi < lo {
				return nil, errors.Errorf("invalid range %q: end before start", string(runes[i:i+3]))
			}
			for cp := lo; cp <= hi; cp++ {
				out[cp] = struct{}{}
			}
			i += 2
			continue
		}
		out[runes[i]] = struct{}{}
	}
	return out, nil
}
