package fairgen

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const signedIntSpecYAML = `
actions:
  - name: set_sign
    char: ch
    code: "sign = ch;"
  - name: accumulate
    char: ch
    code: "value = value*10 + (ch - '0');"
states:
  - name: start
    transitions:
      - key: "+-"
        to: start
        actions: [set_sign]
      - key: "0-9"
        to: digits
        actions: [accumulate]
  - name: digits
    final: true
    transitions:
      - key: "0-9"
        to: digits
        actions: [accumulate]
`

func writeSignedIntSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signed_int.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(signedIntSpecYAML), 0o644))
	return path
}

// TestBuildCommandEmitsCppAndDot runs the build subcommand end to end
// against the signed-integer recognizer fixture and checks the emitted
// C++ and dot text for the expected enum members, mirroring the
// teacher's generator table tests (extended here to the CLI, since the
// cobra commands themselves wrap testable pure functions rather than
// doing anything untestable).
func TestBuildCommandEmitsCppAndDot(t *testing.T) {
	specPath := writeSignedIntSpec(t)
	outBase := filepath.Join(t.TempDir(), "signed_int")

	rootCmd.SetArgs([]string{
		"build",
		"--spec", specPath,
		"--out", outBase,
		"--emit", "cpp,dot",
		"--class", "SignedIntParser",
	})
	require.NoError(t, rootCmd.Execute())

	cpp, err := ioutil.ReadFile(outBase + ".cpp")
	require.NoError(t, err)
	cppText := string(cpp)
	assert.Contains(t, cppText, "s_start")
	assert.Contains(t, cppText, "s_digits")
	assert.Contains(t, cppText, "a_set_sign")
	assert.Contains(t, cppText, "a_accumulate")
	assert.Contains(t, cppText, "SignedIntParser::processChar")

	dot, err := ioutil.ReadFile(outBase + ".dot")
	require.NoError(t, err)
	dotText := string(dot)
	assert.Contains(t, dotText, "digraph {")
	assert.Contains(t, dotText, `"start"`)
	assert.Contains(t, dotText, `"digits"`)
}

// TestDotCommandWritesDigraph exercises the dedicated dot subcommand
// separately from build's combined --emit path.
func TestDotCommandWritesDigraph(t *testing.T) {
	specPath := writeSignedIntSpec(t)
	outPath := filepath.Join(t.TempDir(), "signed_int.dot")

	rootCmd.SetArgs([]string{
		"dot",
		"--spec", specPath,
		"--out", outPath,
		"--rankdir", "TB",
	})
	require.NoError(t, rootCmd.Execute())

	dot, err := ioutil.ReadFile(outPath)
	require.NoError(t, err)
	dotText := string(dot)
	assert.Contains(t, dotText, "digraph {")
	assert.Contains(t, dotText, "rankdir=\"TB\"")
}
