package fairgen

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joeshaw/multierror"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fairgen",
	Short: "Generates C++ parsers and Graphviz diagrams from a declarative automaton definition",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(dotCmd)
}

// LogError mirrors the teacher's structured error logging: a message
// plus key=value pairs, with any *multierror.MultiError value truncated
// to MaxPrintErrors before printing.
func LogError(msg string, keysAndValues ...interface{}) {
	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(msg)
	for i := 0; i < len(keysAndValues); i += 2 {
		sb.WriteString(fmt.Sprintf(" %s=%v", keysAndValues[i], limitError(keysAndValues[i+1])))
	}
	if len(keysAndValues)&1 != 0 {
		sb.WriteString(fmt.Sprintf(" %s=%v", "_unmatched_", limitError(keysAndValues[len(keysAndValues)-1])))
	}
	log.Println(sb.String())
}

const MaxPrintErrors = 10

func limitError(val interface{}) interface{} {
	err, ok := val.(error)
	if !ok {
		return val
	}
	var merr *multierror.MultiError
	if errors.As(err, &merr) {
		if n := len(merr.Errors); n > MaxPrintErrors {
			merr.Errors = append(merr.Errors[:MaxPrintErrors],
				fmt.Errorf("... and %d more", n-MaxPrintErrors))
		}
	}
	return val
}
