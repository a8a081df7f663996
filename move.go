package reorder

import (
	"github.com/samber/lo"
)

// shift moves s[from] to index to, sliding every element in between one
// position toward the vacated slot. Both indices must be valid.
func shift[S ~[]E, E any](s S, from, to int) {
	if from == to {
		return
	}
	v := s[from]
	if from < to {
		copy(s[from:to], s[from+1:to+1])
	} else {
		copy(s[to+1:from+1], s[to:from])
	}
	s[to] = v
}

// MoveAt moves the element at index from to index to.
// Elements between the two positions slide by one to close the gap.
func MoveAt[S ~[]E, E any](s S, from, to int) error {
	if err := checkIndex("MoveAt", from, len(s)); err != nil {
		return err
	}
	if err := checkIndex("MoveAt", to, len(s)); err != nil {
		return err
	}
	shift(s, from, to)
	return nil
}

// Move moves the first occurrence of v to index to.
//
// The target index is validated before the lookup, so an invalid index fails
// even when v is absent. Returns false with a nil error if v is not in s or
// already sits at to.
func Move[S ~[]E, E comparable](s S, v E, to int) (bool, error) {
	if err := checkIndex("Move", to, len(s)); err != nil {
		return false, err
	}
	i := lo.IndexOf(s, v)
	if i < 0 || i == to {
		return false, nil
	}
	shift(s, i, to)
	return true, nil
}

// MoveUpAt moves the element at index i one position toward the top.
// An element already at index 0 stays put.
func MoveUpAt[S ~[]E, E any](s S, i int) error {
	if err := checkIndex("MoveUpAt", i, len(s)); err != nil {
		return err
	}
	if i > 0 {
		shift(s, i, i-1)
	}
	return nil
}

// MoveDownAt moves the element at index i one position toward the bottom.
// An element already at the last index stays put.
func MoveDownAt[S ~[]E, E any](s S, i int) error {
	if err := checkIndex("MoveDownAt", i, len(s)); err != nil {
		return err
	}
	if i < len(s)-1 {
		shift(s, i, i+1)
	}
	return nil
}

// MoveToTop moves the first occurrence of v to index 0.
// Reports whether s changed.
func MoveToTop[S ~[]E, E comparable](s S, v E) bool {
	return moveIndexTo(s, lo.IndexOf(s, v), 0)
}

// MoveToBottom moves the first occurrence of v to the last index.
// Reports whether s changed.
func MoveToBottom[S ~[]E, E comparable](s S, v E) bool {
	return moveIndexTo(s, lo.IndexOf(s, v), len(s)-1)
}

// MoveUp moves the first occurrence of v one position toward the top.
// Reports false if v is absent or already first.
func MoveUp[S ~[]E, E comparable](s S, v E) bool {
	i := lo.IndexOf(s, v)
	return moveIndexTo(s, i, i-1)
}

// MoveDown moves the first occurrence of v one position toward the bottom.
// Reports false if v is absent or already last.
func MoveDown[S ~[]E, E comparable](s S, v E) bool {
	i := lo.IndexOf(s, v)
	return moveIndexTo(s, i, i+1)
}

// MoveToTopFunc moves the first element satisfying pred to index 0.
func MoveToTopFunc[S ~[]E, E any](s S, pred func(E) bool) bool {
	_, i, _ := lo.FindIndexOf(s, pred)
	return moveIndexTo(s, i, 0)
}

// MoveToBottomFunc moves the first element satisfying pred to the last index.
func MoveToBottomFunc[S ~[]E, E any](s S, pred func(E) bool) bool {
	_, i, _ := lo.FindIndexOf(s, pred)
	return moveIndexTo(s, i, len(s)-1)
}

// MoveUpFunc moves the first element satisfying pred one position toward
// the top. Only the first match moves; see MoveUpAllFunc for the batch form.
func MoveUpFunc[S ~[]E, E any](s S, pred func(E) bool) bool {
	_, i, _ := lo.FindIndexOf(s, pred)
	return moveIndexTo(s, i, i-1)
}

// MoveDownFunc moves the first element satisfying pred one position toward
// the bottom. Only the first match moves; see MoveDownAllFunc for the batch
// form.
func MoveDownFunc[S ~[]E, E any](s S, pred func(E) bool) bool {
	_, i, _ := lo.FindIndexOf(s, pred)
	return moveIndexTo(s, i, i+1)
}

// moveIndexTo shifts s[i] to index to when both are in range and differ.
// A negative i means the lookup failed.
func moveIndexTo[S ~[]E, E any](s S, i, to int) bool {
	if i < 0 || to < 0 || to >= len(s) || i == to {
		return false
	}
	shift(s, i, to)
	return true
}
