package harness

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/roach88/reorder"
)

// Harness is the test execution engine for one scenario run.
type Harness struct {
	logger *slog.Logger
}

// Run executes a test scenario and returns the result.
// Logs are discarded; use RunWithLogger to keep them.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(scenario, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger executes a test scenario, logging through logger.
//
// Execution flow:
// 1. Validate the scenario
// 2. Copy the initial sequence (the scenario itself is never mutated)
// 3. Apply each step, checking invariants and the step's expect clause
// 4. Evaluate assertions on the final sequence
//
// A returned error means the scenario could not be executed. Failed checks
// are reported through Result.Errors.
func RunWithLogger(scenario *Scenario, logger *slog.Logger) (*Result, error) {
	if scenario == nil {
		return nil, fmt.Errorf("scenario is required")
	}
	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	runID := uuid.Must(uuid.NewV7()).String()
	h := &Harness{
		logger: logger.With("run_id", runID, "scenario", scenario.Name),
	}

	result := NewResult(runID)
	seq := slices.Clone(scenario.Initial)
	if seq == nil {
		seq = []string{}
	}

	h.logger.Info("scenario starting", "steps", len(scenario.Steps), "size", len(seq))

	for i := range scenario.Steps {
		if err := h.executeStep(i, &scenario.Steps[i], &seq, result); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	result.Final = seq

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	h.logger.Info("scenario finished",
		"pass", result.Pass,
		"errors", len(result.Errors),
	)

	return result, nil
}

// executeStep applies one step and records its trace event.
func (h *Harness) executeStep(index int, step *Step, seq *[]string, result *Result) error {
	def, ok := opTable[step.Op]
	if !ok {
		return fmt.Errorf("unknown op %q", step.Op)
	}

	var pred func(string) bool
	if step.Match != nil {
		var err error
		if pred, err = step.Match.Predicate(); err != nil {
			return fmt.Errorf("match: %w", err)
		}
	}

	before := slices.Clone(*seq)
	out := def.run(seq, step, pred)
	changed := !slices.Equal(before, *seq)

	event := TraceEvent{
		Seq:      int64(index + 1),
		Op:       step.Op,
		Args:     describeArgs(step),
		Outcome:  describeOutcome(def.kind, out),
		Changed:  changed,
		Sequence: slices.Clone(*seq),
	}
	result.Trace = append(result.Trace, event)

	h.logger.Debug("step applied",
		"step", index,
		"op", step.Op,
		"args", event.Args,
		"outcome", event.Outcome,
		"changed", changed,
	)

	for _, msg := range checkInvariants(def.kind, step, before, *seq, out, changed) {
		h.logger.Warn("invariant violated", "step", index, "op", step.Op, "error", msg)
		result.AddError(fmt.Sprintf("steps[%d] %s: %s", index, step.Op, msg))
	}
	for _, msg := range checkExpect(step.Expect, out, changed) {
		result.AddError(fmt.Sprintf("steps[%d] %s: %s", index, step.Op, msg))
	}

	return nil
}

// checkInvariants verifies the properties every operation must keep,
// independent of what the scenario expects.
func checkInvariants(kind opKind, step *Step, before, after []string, out Outcome, changed bool) []string {
	var errs []string

	if out.Err != nil && changed {
		errs = append(errs, fmt.Sprintf("failed with %v but changed the sequence", out.Err))
	}

	switch kind {
	case kindInsert:
		switch {
		case out.Inserted && (len(after) != len(before)+1 || after[len(after)-1] != *step.Value):
			errs = append(errs, fmt.Sprintf("reported insert but sequence is %v", after))
		case !out.Inserted && changed:
			errs = append(errs, "reported no insert but sequence changed")
		}
		return errs
	case kindSingle:
		if out.Err == nil && out.Moved != changed {
			errs = append(errs, fmt.Sprintf("reported moved=%v but changed=%v", out.Moved, changed))
		}
	case kindBatch:
		if out.Count == 0 && changed {
			errs = append(errs, "reported count=0 but sequence changed")
		}
	}

	if len(after) != len(before) {
		errs = append(errs, fmt.Sprintf("size changed from %d to %d", len(before), len(after)))
	} else if !maps.Equal(lo.CountValues(before), lo.CountValues(after)) {
		errs = append(errs, fmt.Sprintf("multiset changed from %v to %v", before, after))
	}

	return errs
}

// checkExpect compares the step outcome with its expect clause. A step
// without an expected error must not fail.
func checkExpect(expect *Expect, out Outcome, changed bool) []string {
	if expect == nil {
		expect = &Expect{}
	}
	var errs []string

	switch {
	case expect.Error == ErrorInvalidIndex && !reorder.IsInvalidIndex(out.Err):
		errs = append(errs, fmt.Sprintf("expected error %s, got %v", ErrorInvalidIndex, out.Err))
	case expect.Error == "" && out.Err != nil:
		errs = append(errs, fmt.Sprintf("unexpected error: %v", out.Err))
	}

	if expect.Moved != nil && *expect.Moved != changed {
		errs = append(errs, fmt.Sprintf("expected moved=%v, got %v", *expect.Moved, changed))
	}
	if expect.Count != nil && *expect.Count != out.Count {
		errs = append(errs, fmt.Sprintf("expected count=%d, got %d", *expect.Count, out.Count))
	}
	if expect.Inserted != nil && *expect.Inserted != out.Inserted {
		errs = append(errs, fmt.Sprintf("expected inserted=%v, got %v", *expect.Inserted, out.Inserted))
	}

	return errs
}
