package harness

import (
	"slices"

	"github.com/roach88/reorder"
)

// opKind groups operations by the outcome they report.
type opKind int

const (
	// kindSingle operations report whether the sequence changed.
	kindSingle opKind = iota + 1
	// kindBatch operations report a count of matched or moved elements.
	kindBatch
	// kindInsert is add_if_absent, the only operation that grows the sequence.
	kindInsert
)

// Step argument names, as written in scenario files.
const (
	argValue  = "value"
	argIndex  = "index"
	argFrom   = "from"
	argTo     = "to"
	argAnchor = "anchor"
	argMatch  = "match"
)

// Outcome is what a step reported.
type Outcome struct {
	Moved    bool
	Count    int
	Inserted bool
	Err      error
}

// opDef describes one operation: its required arguments and how to run it.
// pred is nil unless the operation takes a match clause.
type opDef struct {
	kind opKind
	args []string
	run  func(seq *[]string, step *Step, pred func(string) bool) Outcome
}

// opTable maps scenario op names onto engine operations.
var opTable = map[string]opDef{
	"move_to_top": {kindSingle, []string{argValue}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		return Outcome{Moved: reorder.MoveToTop(*seq, *st.Value)}
	}},
	"move_to_bottom": {kindSingle, []string{argValue}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		return Outcome{Moved: reorder.MoveToBottom(*seq, *st.Value)}
	}},
	"move": {kindSingle, []string{argValue, argTo}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		moved, err := reorder.Move(*seq, *st.Value, *st.To)
		return Outcome{Moved: moved, Err: err}
	}},
	"move_at": {kindSingle, []string{argFrom, argTo}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		return changedBy(*seq, func() error { return reorder.MoveAt(*seq, *st.From, *st.To) })
	}},
	"move_up_at": {kindSingle, []string{argIndex}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		return changedBy(*seq, func() error { return reorder.MoveUpAt(*seq, *st.Index) })
	}},
	"move_down_at": {kindSingle, []string{argIndex}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		return changedBy(*seq, func() error { return reorder.MoveDownAt(*seq, *st.Index) })
	}},
	"move_up": {kindSingle, []string{argValue}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		return Outcome{Moved: reorder.MoveUp(*seq, *st.Value)}
	}},
	"move_down": {kindSingle, []string{argValue}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		return Outcome{Moved: reorder.MoveDown(*seq, *st.Value)}
	}},
	"move_to_top_where": {kindSingle, []string{argMatch}, func(seq *[]string, _ *Step, pred func(string) bool) Outcome {
		return Outcome{Moved: reorder.MoveToTopFunc(*seq, pred)}
	}},
	"move_to_bottom_where": {kindSingle, []string{argMatch}, func(seq *[]string, _ *Step, pred func(string) bool) Outcome {
		return Outcome{Moved: reorder.MoveToBottomFunc(*seq, pred)}
	}},
	"move_up_where": {kindSingle, []string{argMatch}, func(seq *[]string, _ *Step, pred func(string) bool) Outcome {
		return Outcome{Moved: reorder.MoveUpFunc(*seq, pred)}
	}},
	"move_down_where": {kindSingle, []string{argMatch}, func(seq *[]string, _ *Step, pred func(string) bool) Outcome {
		return Outcome{Moved: reorder.MoveDownFunc(*seq, pred)}
	}},
	"move_all_to_top": {kindBatch, []string{argValue}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		return Outcome{Count: reorder.MoveAllToTop(*seq, *st.Value)}
	}},
	"move_all_to_top_where": {kindBatch, []string{argMatch}, func(seq *[]string, _ *Step, pred func(string) bool) Outcome {
		return Outcome{Count: reorder.MoveAllToTopFunc(*seq, pred)}
	}},
	"move_all_to_bottom_where": {kindBatch, []string{argMatch}, func(seq *[]string, _ *Step, pred func(string) bool) Outcome {
		return Outcome{Count: reorder.MoveAllToBottomFunc(*seq, pred)}
	}},
	"move_up_all_where": {kindBatch, []string{argMatch}, func(seq *[]string, _ *Step, pred func(string) bool) Outcome {
		return Outcome{Count: reorder.MoveUpAllFunc(*seq, pred)}
	}},
	"move_down_all_where": {kindBatch, []string{argMatch}, func(seq *[]string, _ *Step, pred func(string) bool) Outcome {
		return Outcome{Count: reorder.MoveDownAllFunc(*seq, pred)}
	}},
	"group_move": {kindBatch, []string{argAnchor, argMatch}, func(seq *[]string, st *Step, pred func(string) bool) Outcome {
		n, err := reorder.GroupMove(*seq, *st.Anchor, pred)
		return Outcome{Count: n, Err: err}
	}},
	"add_if_absent": {kindInsert, []string{argValue}, func(seq *[]string, st *Step, _ func(string) bool) Outcome {
		var inserted bool
		*seq, inserted = reorder.AddIfAbsent(*seq, *st.Value)
		return Outcome{Inserted: inserted}
	}},
}

// changedBy runs an index operation, which reports only an error, and
// derives Moved from a before/after comparison.
func changedBy(seq []string, fn func() error) Outcome {
	before := slices.Clone(seq)
	err := fn()
	return Outcome{Moved: !slices.Equal(before, seq), Err: err}
}
