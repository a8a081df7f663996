package reorder_test

import (
	"fmt"
	"strings"

	"github.com/roach88/reorder"
)

func ExampleGroupMove() {
	s := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	n, err := reorder.GroupMove(s, 3, func(v int) bool { return v >= 7 })
	fmt.Println(s, n, err)
	// Output: [1 2 3 7 8 9 4 5 6] 3 <nil>
}

func ExampleMoveAllToTopFunc() {
	s := []string{"Alpha", "Beta", "Gamma", "Apple", "Axel", "Delta", "Epsilon", "Adam"}

	reorder.MoveAllToTopFunc(s, func(v string) bool { return strings.HasPrefix(v, "A") })
	fmt.Println(s)
	// Output: [Alpha Apple Axel Adam Beta Gamma Delta Epsilon]
}

func ExampleMoveUpAt() {
	s := []string{"a", "b", "c"}

	fmt.Println(reorder.MoveUpAt(s, 2), s)
	fmt.Println(reorder.MoveUpAt(s, 3))
	// Output:
	// <nil> [a c b]
	// MoveUpAt: invalid index 3 for sequence of length 3
}

func ExampleAddIfAbsent() {
	s := []string{"a", "b"}

	s, added := reorder.AddIfAbsent(s, "b")
	fmt.Println(s, added)
	s, added = reorder.AddIfAbsent(s, "c")
	fmt.Println(s, added)
	// Output:
	// [a b] false
	// [a b c] true
}
