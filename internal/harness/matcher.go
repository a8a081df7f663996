package harness

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

// Matcher describes the predicate of a predicate-driven step.
// Exactly one field must be set.
type Matcher struct {
	Equals *string  `yaml:"equals,omitempty" json:"equals,omitempty"`
	In     []string `yaml:"in,omitempty" json:"in,omitempty"`
	Prefix *string  `yaml:"prefix,omitempty" json:"prefix,omitempty"`
	Min    *string  `yaml:"min,omitempty" json:"min,omitempty"`
}

var errMatcherArity = errors.New("exactly one of equals, in, prefix, min is required")

// Predicate builds the element predicate.
func (m *Matcher) Predicate() (func(string) bool, error) {
	set := lo.Count([]bool{m.Equals != nil, m.In != nil, m.Prefix != nil, m.Min != nil}, true)
	if set != 1 {
		return nil, errMatcherArity
	}

	switch {
	case m.Equals != nil:
		want := *m.Equals
		return func(v string) bool { return v == want }, nil
	case m.In != nil:
		values := m.In
		return func(v string) bool { return lo.Contains(values, v) }, nil
	case m.Prefix != nil:
		prefix := *m.Prefix
		return func(v string) bool { return strings.HasPrefix(v, prefix) }, nil
	default:
		return atLeast(*m.Min), nil
	}
}

// atLeast compares numerically when both sides are integers and falls back
// to lexical order otherwise.
func atLeast(bound string) func(string) bool {
	n, boundErr := strconv.Atoi(bound)
	return func(v string) bool {
		if boundErr == nil {
			if x, err := strconv.Atoi(v); err == nil {
				return x >= n
			}
		}
		return v >= bound
	}
}

// String renders the matcher for traces, e.g. "in:[a b]".
func (m *Matcher) String() string {
	switch {
	case m.Equals != nil:
		return "equals:" + *m.Equals
	case m.In != nil:
		return fmt.Sprintf("in:%v", m.In)
	case m.Prefix != nil:
		return "prefix:" + *m.Prefix
	case m.Min != nil:
		return "min:" + *m.Min
	}
	return "none"
}

func (m *Matcher) normalize() {
	for _, p := range []**string{&m.Equals, &m.Prefix, &m.Min} {
		if *p != nil {
			v := norm.NFC.String(**p)
			*p = &v
		}
	}
	nfcAll(m.In)
}
