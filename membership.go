package reorder

import (
	"github.com/samber/lo"
)

// ContainsAny reports whether s holds at least one element of other.
// An empty other never matches.
func ContainsAny[S ~[]E, E comparable](s S, other []E) bool {
	return lo.Some(s, other)
}

// ContainsAll reports whether every element of other is present in s.
// An empty other is trivially contained.
func ContainsAll[S ~[]E, E comparable](s S, other []E) bool {
	return lo.Every(s, other)
}

// AddIfAbsent appends v unless an equal element is already present.
// Like append, it returns the updated slice; the bool reports whether v was
// inserted.
func AddIfAbsent[S ~[]E, E comparable](s S, v E) (S, bool) {
	if lo.Contains(s, v) {
		return s, false
	}
	return append(s, v), true
}
