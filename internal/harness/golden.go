package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Transcript renders a scenario run as deterministic text, one line per
// step. The run id is left out so repeated runs produce identical output.
//
//	scenario: group_move_to_lower
//	initial: [1 2 3 4 5 6 7 8 9]
//	#1 group_move anchor=3 match=min:7 -> count=3 [1 2 3 7 8 9 4 5 6]
//	final: [1 2 3 7 8 9 4 5 6]
func Transcript(scenario *Scenario, result *Result) []byte {
	var buf bytes.Buffer

	initial := scenario.Initial
	if initial == nil {
		initial = []string{}
	}

	fmt.Fprintf(&buf, "scenario: %s\n", scenario.Name)
	fmt.Fprintf(&buf, "initial: %v\n", initial)
	for _, e := range result.Trace {
		fmt.Fprintf(&buf, "#%d %s %s -> %s %v\n", e.Seq, e.Op, e.Args, e.Outcome, e.Sequence)
	}
	fmt.Fprintf(&buf, "final: %v\n", result.Final)

	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares its transcript against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the transcript doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	AssertGolden(t, scenario, result)

	return result, nil
}

// AssertGolden compares an existing result's transcript against the golden
// file named after the scenario, without re-running it.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, Transcript(scenario, result))
}
