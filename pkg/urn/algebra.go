package urn

import (
	"iter"
	"slices"
)

// BoundSet holds at most one Bound per label.
type BoundSet map[string]Bound

// Get returns the bound recorded for label, if any.
func (s BoundSet) Get(label string) (Bound, bool) {
	b, ok := s[label]
	return b, ok
}

// Labels returns the constrained labels in ascending order.
func (s BoundSet) Labels() []string {
	labels := make([]string, 0, len(s))
	for label := range s {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

// Reduce combines a sequence of bounds into one bound per label by
// intersecting every bound that shares a label. Since intersection is
// commutative and associative the result does not depend on the order of
// bounds.
func Reduce(bounds []Bound) BoundSet {
	out := make(BoundSet, len(bounds))
	for _, b := range bounds {
		if acc, ok := out[b.label]; ok {
			out[b.label] = acc.and(b)
		} else {
			out[b.label] = b
		}
	}
	return out
}

// Sign returns the inclusion–exclusion sign (-1)^(n+1) of an n-subset.
func Sign(n int) int {
	if n%2 == 0 {
		return -1
	}
	return 1
}

// UnionSubsets enumerates the inclusion–exclusion decomposition of a union
// of disjuncts.
//
// For n = 1..len(disjuncts), and for every n-combination of disjuncts taken
// in input order, it yields n together with the Reduce of all the bounds of
// the chosen disjuncts. The number of items satisfying at least one
// disjunct is then
//
//	Σ Sign(n) · count(reduced)
//
// over everything yielded. There are 2^D - 1 entries for D disjuncts, so
// the cost grows exponentially with the number of OR branches.
//
// Example: disjuncts [[a ∈ [2,7)], [a ∈ [3,5)]] yield
//
//	(1, {a: [2,7)}), (1, {a: [3,5)}), (2, {a: [3,5)})
func UnionSubsets(disjuncts [][]Bound) iter.Seq2[int, BoundSet] {
	return func(yield func(int, BoundSet) bool) {
		for n := 1; n <= len(disjuncts); n++ {
			for idx := range combinations(len(disjuncts), n) {
				var flat []Bound
				for _, i := range idx {
					flat = append(flat, disjuncts[i]...)
				}
				if !yield(n, Reduce(flat)) {
					return
				}
			}
		}
	}
}

// combinations yields every n-combination of the indices 0..size-1 in
// lexicographic order. The yielded slice is reused between iterations.
func combinations(size, n int) iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		if n > size || n <= 0 {
			return
		}
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		for {
			if !yield(idx) {
				return
			}
			// Find the rightmost index that can still move right.
			i := n - 1
			for i >= 0 && idx[i] == size-n+i {
				i--
			}
			if i < 0 {
				return
			}
			idx[i]++
			for j := i + 1; j < n; j++ {
				idx[j] = idx[j-1] + 1
			}
		}
	}
}
