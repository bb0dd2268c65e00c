package cpp

import "strings"

// Sanitize replaces every code point outside [A-Za-z0-9_] with '_', the
// rule spec.md's identifier sanitization names for state and action
// names.
func Sanitize(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// sanitizeAll sanitizes every name in names, in order, and fails
// ErrNameCollision the first time two distinct input names land on the
// same sanitized identifier.
func sanitizeAll(names []string) (map[string]string, error) {
	out := make(map[string]string, len(names))
	bySanitized := make(map[string]string, len(names))
	for _, n := range names {
		s := Sanitize(n)
		if prior, exists := bySanitized[s]; exists && prior != n {
			return nil, &ErrNameCollision{Sanitized: s, First: prior, Second: n}
		}
		bySanitized[s] = n
		out[n] = s
	}
	return out, nil
}
