package reorder

import (
	"github.com/samber/lo"
)

// GroupMove gathers every element satisfying pred into one contiguous block
// and places the block after min(anchor, unmatched) unmatched elements.
//
// Matched elements keep their relative order, as do unmatched ones. The
// anchor must be a valid index into s; an empty s is a no-op regardless of
// the anchor. Returns the number of matched elements, zero meaning s was
// left untouched.
//
//	s := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
//	GroupMove(s, 6, func(v int) bool { return v >= 2 && v <= 4 })
//	// s == [1 5 6 7 8 9 2 3 4]
func GroupMove[S ~[]E, E any](s S, anchor int, pred func(E) bool) (int, error) {
	if len(s) == 0 {
		return 0, nil
	}
	if err := checkIndex("GroupMove", anchor, len(s)); err != nil {
		return 0, err
	}
	return regroup(s, anchor, pred), nil
}

// MoveAllToTopFunc moves every element satisfying pred to the top as one
// block, preserving the order of the moved elements. Returns the number of
// matched elements.
func MoveAllToTopFunc[S ~[]E, E any](s S, pred func(E) bool) int {
	return regroup(s, 0, pred)
}

// MoveAllToBottomFunc moves every element satisfying pred to the bottom as
// one block, preserving the order of the moved elements. Returns the number
// of matched elements.
func MoveAllToBottomFunc[S ~[]E, E any](s S, pred func(E) bool) int {
	return regroup(s, len(s), pred)
}

// MoveAllToTop moves every occurrence of v to the top.
// Returns the number of occurrences.
func MoveAllToTop[S ~[]E, E comparable](s S, v E) int {
	return regroup(s, 0, func(e E) bool { return e == v })
}

// regroup partitions a snapshot of s and writes the recombined order back.
// The anchor is clamped to the number of unmatched elements.
func regroup[S ~[]E, E any](s S, anchor int, pred func(E) bool) int {
	// Pass 1: partition without touching s.
	matched, unmatched := lo.FilterReject(s, func(v E, _ int) bool {
		return pred(v)
	})
	if len(matched) == 0 {
		return 0
	}

	// Pass 2: unmatched[:k] ++ matched ++ unmatched[k:].
	k := min(anchor, len(unmatched))
	n := copy(s, unmatched[:k])
	n += copy(s[n:], matched)
	copy(s[n:], unmatched[k:])

	return len(matched)
}

// MoveUpAllFunc moves every element satisfying pred one position toward the
// top. A matching element at index 0, or directly below another matching
// element that could not move, stays where it is. Returns the number of
// elements that moved.
func MoveUpAllFunc[S ~[]E, E any](s S, pred func(E) bool) int {
	mask := matchMask(s, pred)
	moved := 0
	for i := 1; i < len(s); i++ {
		if mask[i] && !mask[i-1] {
			s[i-1], s[i] = s[i], s[i-1]
			mask[i-1], mask[i] = true, false
			moved++
		}
	}
	return moved
}

// MoveDownAllFunc moves every element satisfying pred one position toward
// the bottom. A matching element at the last index, or directly above
// another matching element that could not move, stays where it is. Returns
// the number of elements that moved.
func MoveDownAllFunc[S ~[]E, E any](s S, pred func(E) bool) int {
	mask := matchMask(s, pred)
	moved := 0
	for i := len(s) - 2; i >= 0; i-- {
		if mask[i] && !mask[i+1] {
			s[i], s[i+1] = s[i+1], s[i]
			mask[i], mask[i+1] = false, true
			moved++
		}
	}
	return moved
}

// matchMask evaluates pred once per element before any swap happens.
func matchMask[S ~[]E, E any](s S, pred func(E) bool) []bool {
	return lo.Map(s, func(v E, _ int) bool {
		return pred(v)
	})
}
