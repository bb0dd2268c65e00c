package charset

import (
	"strconv"
	"strings"
)

// Pretty renders cps as a compact, human-readable listing suitable for
// embedding in a diagnostic message or a Graphviz edge label: printable
// ASCII runs are written inline and compressed ("a-z"), everything else is
// listed numerically. A literal '-' is pulled out of the inline run and
// re-appended at the end so it never reads as a range marker.
func Pretty(cps CodePointSet) string {
	if cps.IsEmpty() {
		return `""`
	}

	var printable, other []rune
	hasDash := false
	for _, cp := range cps.Sorted() {
		switch {
		case cp == '-':
			hasDash = true
		case isPrintableASCII(cp):
			printable = append(printable, cp)
		default:
			other = append(other, cp)
		}
	}

	var parts []string
	if len(printable) > 0 || hasDash {
		parts = append(parts, quoteLiteral(compressRuns(printable)+danglingDash(hasDash)))
	}
	if len(other) > 0 {
		parts = append(parts, quoteLiteral(numericList(other)))
	}
	if len(parts) == 0 {
		// Not reached for a non-empty set: a lone dash is already
		// rendered by the printable branch above.
		return quoteLiteral("-")
	}
	return strings.Join(parts, "+")
}

func danglingDash(hasDash bool) string {
	if hasDash {
		return "-"
	}
	return ""
}

func isPrintableASCII(cp rune) bool {
	return cp >= 0x20 && cp < 0x7F
}

// compressRuns replaces maximal runs of >= 3 consecutive code points with
// "first-last"; a run of exactly 2 is left as two adjacent characters.
func compressRuns(sorted []rune) string {
	var sb strings.Builder
	for i := 0; i < len(sorted); {
		j := i
		for j+1 < len(sorted) && sorted[j+1] == sorted[j]+1 {
			j++
		}
		runLen := j - i + 1
		if runLen >= 3 {
			sb.WriteRune(sorted[i])
			sb.WriteByte('-')
			sb.WriteRune(sorted[j])
		} else {
			for k := i; k <= j; k++ {
				sb.WriteRune(sorted[k])
			}
		}
		i = j + 1
	}
	return sb.String()
}

func numericList(sorted []rune) string {
	strs := make([]string, len(sorted))
	for i, cp := range sorted {
		strs[i] = strconv.Itoa(int(cp))
	}
	return strings.Join(strs, ",")
}

// quoteLiteral wraps s in double quotes, escaping '"' and '\' for diagnostic
// embedding.
func quoteLiteral(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	sb.WriteByte('"')
	return sb.String()
}
