package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// A scenario replays a list of steps over an initial sequence and asserts on
// the outcome of each step and on the final sequence.
//
// Struct tags serve both decoders: yaml for .yaml files, json for the CUE
// decoder, which follows encoding/json naming.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name" json:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description" json:"description"`

	// Initial is the sequence the first step operates on.
	// An empty list is a valid starting point.
	Initial []string `yaml:"initial" json:"initial"`

	// Steps are applied in order to the same sequence.
	Steps []Step `yaml:"steps" json:"steps"`

	// Assertions are evaluated after the last step.
	Assertions []Assertion `yaml:"assertions" json:"assertions"`
}

// Step applies one engine operation.
// Which arguments are required depends on Op; see opTable.
type Step struct {
	// Op names the operation (e.g. "group_move", "move_up_at").
	Op string `yaml:"op" json:"op"`

	// Value is the element argument of value-based operations.
	Value *string `yaml:"value,omitempty" json:"value,omitempty"`

	// Index is the position argument of move_up_at / move_down_at.
	Index *int `yaml:"index,omitempty" json:"index,omitempty"`

	// From is the source index of move_at.
	From *int `yaml:"from,omitempty" json:"from,omitempty"`

	// To is the target index of move and move_at.
	To *int `yaml:"to,omitempty" json:"to,omitempty"`

	// Anchor is the group_move anchor.
	Anchor *int `yaml:"anchor,omitempty" json:"anchor,omitempty"`

	// Match builds the predicate of predicate-driven operations.
	Match *Matcher `yaml:"match,omitempty" json:"match,omitempty"`

	// Expect, if set, is checked against the step outcome.
	Expect *Expect `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// Expect specifies the expected outcome of a step.
// Only the fields that are set are checked.
type Expect struct {
	// Moved is whether the sequence changed (single-element operations).
	Moved *bool `yaml:"moved,omitempty" json:"moved,omitempty"`

	// Count is the number reported by a batch operation.
	Count *int `yaml:"count,omitempty" json:"count,omitempty"`

	// Inserted is the add_if_absent result.
	Inserted *bool `yaml:"inserted,omitempty" json:"inserted,omitempty"`

	// Error is the expected error kind. Only "invalid_index" exists.
	Error string `yaml:"error,omitempty" json:"error,omitempty"`
}

// ErrorInvalidIndex is the Expect.Error value for out-of-range indices.
const ErrorInvalidIndex = "invalid_index"

// Assertion validates the final sequence.
type Assertion struct {
	// Type specifies the assertion type:
	// - "final_sequence": sequence equals Sequence
	// - "contains_any": ContainsAny(final, Values) == Want
	// - "contains_all": ContainsAll(final, Values) == Want
	// - "size": len(final) == Count
	// - "trace_count": steps of Op that changed the sequence == Count
	Type string `yaml:"type" json:"type"`

	// Sequence is the expected final sequence (final_sequence).
	Sequence []string `yaml:"sequence,omitempty" json:"sequence,omitempty"`

	// Values are the probe elements (contains_any, contains_all).
	Values []string `yaml:"values,omitempty" json:"values,omitempty"`

	// Want is the expected membership result. Defaults to true.
	Want *bool `yaml:"want,omitempty" json:"want,omitempty"`

	// Count is the expected size or step count.
	Count *int `yaml:"count,omitempty" json:"count,omitempty"`

	// Op is the operation counted by trace_count.
	Op string `yaml:"op,omitempty" json:"op,omitempty"`
}

// Assertion type constants.
const (
	AssertFinalSequence = "final_sequence"
	AssertContainsAny   = "contains_any"
	AssertContainsAll   = "contains_all"
	AssertSize          = "size"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads and parses a scenario file.
// The format follows the extension: .yaml/.yml or .cue.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or fails validation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario *Scenario
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		scenario, err = parseYAMLScenario(data)
	case ".cue":
		scenario, err = parseCUEScenario(path, data)
	default:
		return nil, fmt.Errorf("unsupported scenario file extension %q", ext)
	}
	if err != nil {
		return nil, err
	}

	scenario.normalize()

	if err := validateScenario(scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return scenario, nil
}

// IsScenarioFile reports whether path has a scenario file extension.
func IsScenarioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".cue":
		return true
	}
	return false
}

func parseYAMLScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &scenario, nil
}

// normalize rewrites every element string to Unicode NFC so that composed
// and decomposed spellings of the same text compare equal.
func (s *Scenario) normalize() {
	nfcAll(s.Initial)
	for i := range s.Steps {
		step := &s.Steps[i]
		if step.Value != nil {
			v := norm.NFC.String(*step.Value)
			step.Value = &v
		}
		if step.Match != nil {
			step.Match.normalize()
		}
	}
	for i := range s.Assertions {
		nfcAll(s.Assertions[i].Sequence)
		nfcAll(s.Assertions[i].Values)
	}
}

func nfcAll(values []string) {
	for i, v := range values {
		values[i] = norm.NFC.String(v)
	}
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i := range s.Steps {
		if err := validateStep(i, &s.Steps[i]); err != nil {
			return err
		}
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i]); err != nil {
			return err
		}
	}

	return nil
}

// validateStep checks a step against the argument list of its operation.
func validateStep(index int, step *Step) error {
	if step.Op == "" {
		return fmt.Errorf("steps[%d]: op is required", index)
	}

	def, ok := opTable[step.Op]
	if !ok {
		return fmt.Errorf("steps[%d]: unknown op %q", index, step.Op)
	}

	present := map[string]bool{
		argValue:  step.Value != nil,
		argIndex:  step.Index != nil,
		argFrom:   step.From != nil,
		argTo:     step.To != nil,
		argAnchor: step.Anchor != nil,
		argMatch:  step.Match != nil,
	}
	for _, name := range def.args {
		if !present[name] {
			return fmt.Errorf("steps[%d]: %s is required for %s", index, name, step.Op)
		}
		delete(present, name)
	}
	for name, set := range present {
		if set {
			return fmt.Errorf("steps[%d]: %s is not accepted by %s", index, name, step.Op)
		}
	}

	if step.Match != nil {
		if _, err := step.Match.Predicate(); err != nil {
			return fmt.Errorf("steps[%d].match: %w", index, err)
		}
	}

	if step.Expect != nil {
		if err := validateExpect(def.kind, step.Expect); err != nil {
			return fmt.Errorf("steps[%d].expect: %w", index, err)
		}
	}

	return nil
}

// validateExpect rejects expectations the operation kind cannot produce.
func validateExpect(kind opKind, e *Expect) error {
	if e.Error != "" && e.Error != ErrorInvalidIndex {
		return fmt.Errorf("unknown error kind %q", e.Error)
	}
	if e.Moved != nil && kind != kindSingle {
		return fmt.Errorf("moved applies to single-element operations only")
	}
	if e.Count != nil && kind != kindBatch {
		return fmt.Errorf("count applies to batch operations only")
	}
	if e.Count != nil && *e.Count < 0 {
		return fmt.Errorf("count must be non-negative")
	}
	if e.Inserted != nil && kind != kindInsert {
		return fmt.Errorf("inserted applies to add_if_absent only")
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFinalSequence:
		if a.Sequence == nil {
			return fmt.Errorf("assertions[%d]: sequence is required for final_sequence", index)
		}
	case AssertContainsAny, AssertContainsAll:
		if a.Values == nil {
			return fmt.Errorf("assertions[%d]: values is required for %s", index, a.Type)
		}
	case AssertSize:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for size", index)
		}
	case AssertTraceCount:
		if _, ok := opTable[a.Op]; !ok {
			return fmt.Errorf("assertions[%d]: known op is required for trace_count, got %q", index, a.Op)
		}
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
