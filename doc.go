// Package reorder repositions elements of a slice in place.
//
// Every operation takes the caller's slice and rearranges its backing array
// without changing its length, so the slice header the caller holds stays
// valid. The only exception is AddIfAbsent, which follows the append idiom
// and returns the possibly grown slice.
//
// DIRECTIONS:
//
// The vocabulary is fixed across the package:
//   - up moves toward index 0
//   - down moves toward index len-1
//   - top is index 0
//   - bottom is index len-1
//
// LOOKUPS:
//
// Elements are found by value (first occurrence, E comparable), by index, or
// by predicate (first match in current order). A lookup that finds nothing is
// not an error: the operation reports false (or a zero count) and leaves the
// slice untouched. Index arguments outside [0, len) fail with ErrInvalidIndex
// and are never clamped.
//
// BATCH MOVES:
//
// GroupMove and the *All* operations evaluate the predicate once against a
// snapshot of the slice before writing anything back. Removing elements
// while scanning the live slice shifts the trailing indices and skips or
// double-processes elements; the two-pass form has no such dependency.
//
//	s := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
//	n, err := reorder.GroupMove(s, 3, func(v int) bool { return v >= 7 })
//	// s == [1 2 3 7 8 9 4 5 6], n == 3, err == nil
//
// The anchor of a group move counts unmatched elements: the matched block is
// written after exactly min(anchor, unmatched) unmatched elements.
//
// None of the operations are safe for concurrent use on the same slice.
package reorder
