package urn

import (
	"fmt"
	"slices"
)

// Sizes is an ordered set of selection sizes: either a half-open range
// [start, stop) or an explicit list. Sizes values are immutable.
type Sizes struct {
	isRange     bool
	start, stop int
	values      []int
}

// SizeRange returns the sizes start, start+1, ..., stop-1.
// A range with stop <= start is empty.
func SizeRange(start, stop int) *Sizes {
	if stop < start {
		stop = start
	}
	return &Sizes{isRange: true, start: start, stop: stop}
}

// SizeList returns an explicit sequence of sizes, kept in the given order.
func SizeList(values ...int) *Sizes {
	return &Sizes{values: slices.Clone(values)}
}

// IsRange reports whether the sizes were given as a range.
func (s *Sizes) IsRange() bool {
	return s.isRange
}

// Values returns the sizes in order.
func (s *Sizes) Values() []int {
	if !s.isRange {
		return slices.Clone(s.values)
	}
	out := make([]int, 0, s.stop-s.start)
	for k := s.start; k < s.stop; k++ {
		out = append(out, k)
	}
	return out
}

// Len returns the number of sizes.
func (s *Sizes) Len() int {
	if s.isRange {
		return s.stop - s.start
	}
	return len(s.values)
}

// Upper returns an exclusive upper bound on the sizes: stop for a range,
// max+1 for a list, and 0 for an empty list.
func (s *Sizes) Upper() int {
	if s.isRange {
		return s.stop
	}
	if len(s.values) == 0 {
		return 0
	}
	return slices.Max(s.values) + 1
}

// ClipUpper returns the sizes below limit. A range keeps its start and has
// its stop lowered; a list drops the values >= limit and keeps its order.
func (s *Sizes) ClipUpper(limit int) *Sizes {
	if s.isRange {
		return SizeRange(s.start, min(s.stop, limit))
	}
	out := make([]int, 0, len(s.values))
	for _, v := range s.values {
		if v < limit {
			out = append(out, v)
		}
	}
	return &Sizes{values: out}
}

// min returns the smallest size, or -1 when empty.
func (s *Sizes) min() int {
	if s.Len() == 0 {
		return -1
	}
	if s.isRange {
		return s.start
	}
	return slices.Min(s.values)
}

// String returns "start..stop-1" for ranges and "[a b c]" for lists.
func (s *Sizes) String() string {
	if s.isRange {
		if s.stop <= s.start {
			return fmt.Sprintf("%d..%d (empty)", s.start, s.stop-1)
		}
		return fmt.Sprintf("%d..%d", s.start, s.stop-1)
	}
	return fmt.Sprint(s.values)
}
