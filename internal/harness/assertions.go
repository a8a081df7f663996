package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/roach88/reorder"
)

// AssertionError is returned when an assertion fails.
// It includes the final sequence to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Final    []string // Final sequence for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	fmt.Fprintf(&buf, "  Final sequence: %v\n", e.Final)

	return buf.String()
}

// EvaluateAssertions runs every assertion against the result and returns
// the messages of those that failed.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(result, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(result *Result, a Assertion) error {
	switch a.Type {
	case AssertFinalSequence:
		return assertFinalSequence(result.Final, a)
	case AssertContainsAny:
		return assertMembership(result.Final, a, reorder.ContainsAny[[]string])
	case AssertContainsAll:
		return assertMembership(result.Final, a, reorder.ContainsAll[[]string])
	case AssertSize:
		return assertSize(result.Final, a)
	case AssertTraceCount:
		return assertTraceCount(result.Trace, result.Final, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

// assertFinalSequence checks the final sequence element by element.
func assertFinalSequence(final []string, a Assertion) error {
	if slices.Equal(final, a.Sequence) {
		return nil
	}
	return &AssertionError{
		Type:     AssertFinalSequence,
		Expected: fmt.Sprintf("%v", a.Sequence),
		Actual:   fmt.Sprintf("%v", final),
		Final:    final,
	}
}

// assertMembership checks a contains_any / contains_all query.
// Want defaults to true.
func assertMembership(final []string, a Assertion, query func([]string, []string) bool) error {
	want := a.Want == nil || *a.Want
	got := query(final, a.Values)
	if got == want {
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("%s %v = %v", a.Type, a.Values, want),
		Actual:   fmt.Sprintf("%v", got),
		Final:    final,
	}
}

// assertSize checks the length of the final sequence.
func assertSize(final []string, a Assertion) error {
	if len(final) == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertSize,
		Expected: fmt.Sprintf("size %d", *a.Count),
		Actual:   fmt.Sprintf("size %d", len(final)),
		Final:    final,
	}
}

// assertTraceCount counts the steps of an op that changed the sequence.
func assertTraceCount(trace []TraceEvent, final []string, a Assertion) error {
	count := lo.CountBy(trace, func(e TraceEvent) bool {
		return e.Op == a.Op && e.Changed
	})
	if count == *a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceCount,
		Expected: fmt.Sprintf("%s changed the sequence %d times", a.Op, *a.Count),
		Actual:   fmt.Sprintf("%d times", count),
		Final:    final,
	}
}
