package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/reorder"
)

// TraceEvent records one applied step.
type TraceEvent struct {
	Seq      int64    `json:"seq"`
	Op       string   `json:"op"`
	Args     string   `json:"args"`
	Outcome  string   `json:"outcome"`
	Changed  bool     `json:"changed"`
	Sequence []string `json:"sequence"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if no invariant, expectation, or assertion failed.
	Pass bool `json:"pass"`

	// RunID correlates the log records of one execution.
	RunID string `json:"run_id"`

	// Trace contains one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Final is the sequence after the last step.
	Final []string `json:"final"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for test execution.
func NewResult(runID string) *Result {
	return &Result{
		Pass:   true,
		RunID:  runID,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// describeArgs renders the step arguments in a fixed order.
func describeArgs(step *Step) string {
	var parts []string
	if step.Value != nil {
		parts = append(parts, "value="+*step.Value)
	}
	for _, arg := range []struct {
		name string
		v    *int
	}{
		{argIndex, step.Index},
		{argFrom, step.From},
		{argTo, step.To},
		{argAnchor, step.Anchor},
	} {
		if arg.v != nil {
			parts = append(parts, fmt.Sprintf("%s=%d", arg.name, *arg.v))
		}
	}
	if step.Match != nil {
		parts = append(parts, "match="+step.Match.String())
	}
	return strings.Join(parts, " ")
}

// describeOutcome renders what a step reported.
func describeOutcome(kind opKind, out Outcome) string {
	switch {
	case out.Err != nil && reorder.IsInvalidIndex(out.Err):
		return "error=" + ErrorInvalidIndex
	case out.Err != nil:
		return "error=" + out.Err.Error()
	case kind == kindBatch:
		return fmt.Sprintf("count=%d", out.Count)
	case kind == kindInsert && out.Inserted:
		return "inserted"
	case kind == kindInsert:
		return "present"
	case out.Moved:
		return "moved"
	default:
		return "unchanged"
	}
}
