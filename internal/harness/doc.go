// Package harness provides conformance testing for the reorder engine.
//
// The harness loads scenarios, replays their steps against the engine on a
// []string sequence, checks per-step invariants and expectations, and
// evaluates assertions on the final sequence.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	initial: [a, b, c, d]
//	steps:
//	  - op: move_to_top
//	    value: c
//	    expect: { moved: true }
//	  - op: group_move
//	    anchor: 1
//	    match: { in: [a, d] }
//	    expect: { count: 2 }
//	  - op: move_up_at
//	    index: 9
//	    expect: { error: invalid_index }
//	assertions:
//	  - type: final_sequence
//	    sequence: [c, a, d, b]
//
// The same structure may be written in CUE (.cue files). CUE scenarios are
// unified with the #Scenario definition in scenario_schema.cue before they
// are decoded, so shape errors are reported with file positions.
//
// # Matchers
//
// Predicate-driven steps take a match clause with exactly one of:
//
//   - equals: element equals the value
//   - in: element is one of the listed values
//   - prefix: element starts with the value
//   - min: element >= value, numerically when both sides parse as integers
//
// # Assertion Types
//
//   - final_sequence: the sequence after the last step, exactly
//   - contains_any / contains_all: membership of values, compared to want
//   - size: length of the final sequence
//   - trace_count: number of steps of an op that changed the sequence
//
// # Invariants
//
// Every step that repositions elements is checked for size and multiset
// invariance, and a step that fails leaves the sequence untouched. These
// checks run regardless of the scenario's own expectations.
//
// # Deterministic Traces
//
// Each step is recorded as a TraceEvent. RunWithGolden renders the trace as
// text and compares it against testdata/golden/{name}.golden:
//
//	go test ./internal/harness -update
package harness
