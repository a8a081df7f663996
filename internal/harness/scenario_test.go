package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes content to dir/name and returns the path.
func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "test.yaml", `
name: test_scenario
description: "Test scenario for validation"
initial: [a, b, c]
steps:
  - op: move_to_top
    value: c
    expect: { moved: true }
  - op: group_move
    anchor: 1
    match: { in: [a, b] }
assertions:
  - type: final_sequence
    sequence: [c, a, b]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	assert.Equal(t, []string{"a", "b", "c"}, scenario.Initial)
	require.Len(t, scenario.Steps, 2)
	assert.Equal(t, "move_to_top", scenario.Steps[0].Op)
	assert.Equal(t, "c", *scenario.Steps[0].Value)
	require.NotNil(t, scenario.Steps[0].Expect)
	assert.True(t, *scenario.Steps[0].Expect.Moved)
	assert.Equal(t, 1, *scenario.Steps[1].Anchor)
	assert.Equal(t, []string{"a", "b"}, scenario.Steps[1].Match.In)
	assert.Len(t, scenario.Assertions, 1)
}

func TestLoadScenario_IntegerElements(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "ints.yaml", `
name: ints
description: "Unquoted integers decode as strings"
initial: [1, 2, 3]
steps:
  - op: move_to_bottom
    value: 1
assertions:
  - type: final_sequence
    sequence: [2, 3, 1]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3"}, scenario.Initial)
	assert.Equal(t, "1", *scenario.Steps[0].Value)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnsupportedExtension(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "scenario.json", `{}`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported scenario file extension")
}

func TestLoadScenario_UnknownField(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "typo.yaml", `
name: typo
description: "Misspelled assertions key"
initial: [a]
steps:
  - op: move_to_top
    value: a
assertion:
  - type: size
    count: 1
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
	assert.Contains(t, err.Error(), "assertion")
}

func TestLoadScenario_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing name",
			content: `
description: "no name"
steps: [{ op: move_to_top, value: a }]
assertions: [{ type: size, count: 0 }]
`,
			wantErr: "name is required",
		},
		{
			name: "missing description",
			content: `
name: x
steps: [{ op: move_to_top, value: a }]
assertions: [{ type: size, count: 0 }]
`,
			wantErr: "description is required",
		},
		{
			name: "empty steps",
			content: `
name: x
description: d
steps: []
assertions: [{ type: size, count: 0 }]
`,
			wantErr: "steps list is required",
		},
		{
			name: "empty assertions",
			content: `
name: x
description: d
steps: [{ op: move_to_top, value: a }]
`,
			wantErr: "assertions list is required",
		},
		{
			name: "unknown op",
			content: `
name: x
description: d
steps: [{ op: shuffle }]
assertions: [{ type: size, count: 0 }]
`,
			wantErr: `steps[0]: unknown op "shuffle"`,
		},
		{
			name: "missing argument",
			content: `
name: x
description: d
steps: [{ op: move, value: a }]
assertions: [{ type: size, count: 0 }]
`,
			wantErr: "steps[0]: to is required for move",
		},
		{
			name: "extra argument",
			content: `
name: x
description: d
steps: [{ op: move_up_at, index: 0, value: a }]
assertions: [{ type: size, count: 0 }]
`,
			wantErr: "steps[0]: value is not accepted by move_up_at",
		},
		{
			name: "matcher with two fields",
			content: `
name: x
description: d
steps: [{ op: move_to_top_where, match: { equals: a, prefix: b } }]
assertions: [{ type: size, count: 0 }]
`,
			wantErr: "steps[0].match: exactly one of",
		},
		{
			name: "count on single op",
			content: `
name: x
description: d
steps: [{ op: move_to_top, value: a, expect: { count: 1 } }]
assertions: [{ type: size, count: 0 }]
`,
			wantErr: "count applies to batch operations only",
		},
		{
			name: "moved on batch op",
			content: `
name: x
description: d
steps: [{ op: move_all_to_top, value: a, expect: { moved: true } }]
assertions: [{ type: size, count: 0 }]
`,
			wantErr: "moved applies to single-element operations only",
		},
		{
			name: "unknown error kind",
			content: `
name: x
description: d
steps: [{ op: move_up_at, index: 0, expect: { error: out_of_range } }]
assertions: [{ type: size, count: 0 }]
`,
			wantErr: `unknown error kind "out_of_range"`,
		},
		{
			name: "unknown assertion type",
			content: `
name: x
description: d
steps: [{ op: move_to_top, value: a }]
assertions: [{ type: sorted }]
`,
			wantErr: `assertions[0]: unknown assertion type "sorted"`,
		},
		{
			name: "final_sequence without sequence",
			content: `
name: x
description: d
steps: [{ op: move_to_top, value: a }]
assertions: [{ type: final_sequence }]
`,
			wantErr: "sequence is required for final_sequence",
		},
		{
			name: "trace_count with unknown op",
			content: `
name: x
description: d
steps: [{ op: move_to_top, value: a }]
assertions: [{ type: trace_count, op: shuffle, count: 1 }]
`,
			wantErr: "known op is required for trace_count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "scenario.yaml", tt.content)

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_NormalizesToNFC(t *testing.T) {
	// YAML escapes spell "café" with a combining acute accent.
	path := writeScenario(t, t.TempDir(), "nfc.yaml", `
name: nfc
description: "Decomposed input"
initial: ["cafe\u0301", tea]
steps:
  - op: move_to_top_where
    match: { prefix: "cafe\u0301" }
assertions:
  - type: contains_all
    values: ["cafe\u0301"]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)

	composed := "caf\u00e9"
	assert.Equal(t, composed, scenario.Initial[0])
	assert.Equal(t, composed, *scenario.Steps[0].Match.Prefix)
	assert.Equal(t, []string{composed}, scenario.Assertions[0].Values)
}

func TestLoadScenario_CUE(t *testing.T) {
	scenario, err := LoadScenario(filepath.Join("testdata", "scenarios", "group_move_to_upper.cue"))
	require.NoError(t, err)

	assert.Equal(t, "group_move_to_upper", scenario.Name)
	assert.Len(t, scenario.Initial, 9)
	require.Len(t, scenario.Steps, 1)
	assert.Equal(t, "group_move", scenario.Steps[0].Op)
	assert.Equal(t, 6, *scenario.Steps[0].Anchor)
	assert.Equal(t, []string{"2", "3", "4"}, scenario.Steps[0].Match.In)
	assert.Equal(t, 3, *scenario.Steps[0].Expect.Count)
}

func TestLoadScenario_CUESchemaViolation(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "bad.cue", `
name:        "bad"
description: "anchor must be an int"
initial: ["a"]
steps: [{
	op:     "group_move"
	anchor: "first"
	match: equals: "a"
}]
assertions: [{type: "size", count: 1}]
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")

	var scenarioErr *ScenarioError
	if assert.ErrorAs(t, err, &scenarioErr) {
		assert.True(t, scenarioErr.Pos.IsValid())
	}
}

func TestLoadScenario_CUESyntaxError(t *testing.T) {
	path := writeScenario(t, t.TempDir(), "broken.cue", `name: "broken`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse CUE")
}

func TestIsScenarioFile(t *testing.T) {
	assert.True(t, IsScenarioFile("a.yaml"))
	assert.True(t, IsScenarioFile("a.YML"))
	assert.True(t, IsScenarioFile("dir/a.cue"))
	assert.False(t, IsScenarioFile("a.golden"))
	assert.False(t, IsScenarioFile("README.md"))
}

func TestMatcher_Predicate(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name    string
		matcher Matcher
		yes     []string
		no      []string
	}{
		{"equals", Matcher{Equals: str("b")}, []string{"b"}, []string{"a", "bb"}},
		{"in", Matcher{In: []string{"a", "c"}}, []string{"a", "c"}, []string{"b"}},
		{"prefix", Matcher{Prefix: str("Al")}, []string{"Alpha", "Al"}, []string{"alpha", "Beta"}},
		{"min numeric", Matcher{Min: str("7")}, []string{"7", "10"}, []string{"6", "-1"}},
		{"min lexical", Matcher{Min: str("m")}, []string{"m", "z"}, []string{"a", "10"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := tt.matcher.Predicate()
			require.NoError(t, err)
			for _, v := range tt.yes {
				assert.True(t, pred(v), v)
			}
			for _, v := range tt.no {
				assert.False(t, pred(v), v)
			}
		})
	}
}

func TestMatcher_Arity(t *testing.T) {
	a, b := "a", "b"

	_, err := (&Matcher{}).Predicate()
	assert.ErrorIs(t, err, errMatcherArity)

	_, err = (&Matcher{Equals: &a, Prefix: &b}).Predicate()
	assert.ErrorIs(t, err, errMatcherArity)
}

func TestMatcher_String(t *testing.T) {
	v := "7"
	assert.Equal(t, "min:7", (&Matcher{Min: &v}).String())
	assert.Equal(t, "in:[2 3 4]", (&Matcher{In: []string{"2", "3", "4"}}).String())
	assert.Equal(t, "none", (&Matcher{}).String())
}
