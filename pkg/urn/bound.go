package urn

import (
	"fmt"
	"math"
)

// Infinity is the upper limit of a Bound that has no upper limit.
const Infinity = math.MaxInt

// Bound restricts how many copies of one label may appear in a selection.
//
// A Bound admits the half-open range of counts [Min, Max). Max may be
// Infinity. A Bound with Min >= Max is legal and admits nothing; such bounds
// arise naturally when contradictory constraints are intersected.
//
// The label is fixed at construction. Min and Max are plain fields so that
// callers can build bounds directly from parsed comparisons.
//
// Examples:
//
//	Exactly("red", 2)     → [2, 3)
//	AtLeast("red", 2)     → [2, ∞)
//	LessThan("red", 4)    → [0, 4)
//	Between("red", 1, 3)  → [1, 3)
type Bound struct {
	label string
	Min   int
	Max   int
}

// NewBound creates a bound admitting counts in [min, max) for label.
func NewBound(label string, min, max int) Bound {
	return Bound{label: label, Min: min, Max: max}
}

// Unbounded returns the bound [0, ∞) for label, the identity of Intersect.
func Unbounded(label string) Bound {
	return Bound{label: label, Min: 0, Max: Infinity}
}

// Exactly returns the bound admitting only n copies of label.
func Exactly(label string, n int) Bound {
	return Bound{label: label, Min: n, Max: n + 1}
}

// AtLeast returns the bound admitting n or more copies of label.
func AtLeast(label string, n int) Bound {
	return Bound{label: label, Min: n, Max: Infinity}
}

// GreaterThan returns the bound admitting more than n copies of label.
func GreaterThan(label string, n int) Bound {
	return Bound{label: label, Min: n + 1, Max: Infinity}
}

// AtMost returns the bound admitting n or fewer copies of label.
func AtMost(label string, n int) Bound {
	return Bound{label: label, Min: 0, Max: n + 1}
}

// LessThan returns the bound admitting fewer than n copies of label.
func LessThan(label string, n int) Bound {
	return Bound{label: label, Min: 0, Max: n}
}

// Between returns the bound admitting counts in [lo, hi) of label.
func Between(label string, lo, hi int) Bound {
	return Bound{label: label, Min: lo, Max: hi}
}

// Label returns the label the bound applies to.
func (b Bound) Label() string {
	return b.label
}

// Intersect returns the bound admitting the counts admitted by both b and
// other: [max(b.Min, other.Min), min(b.Max, other.Max)).
//
// Returns an ErrLabelMismatch error if the bounds apply to different labels.
func (b Bound) Intersect(other Bound) (Bound, error) {
	if b.label != other.label {
		return Bound{}, ErrLabelMismatch.New(b.label, other.label)
	}
	return b.and(other), nil
}

// and intersects two bounds already known to share a label.
func (b Bound) and(other Bound) Bound {
	return Bound{
		label: b.label,
		Min:   max(b.Min, other.Min),
		Max:   min(b.Max, other.Max),
	}
}

// Contains reports whether n copies of the label are admitted.
func (b Bound) Contains(n int) bool {
	return n >= b.Min && n < b.Max
}

// IsEmpty reports whether the bound admits no count at all.
func (b Bound) IsEmpty() bool {
	return b.Min >= b.Max
}

// Bounded reports whether the bound has a finite upper limit.
func (b Bound) Bounded() bool {
	return b.Max != Infinity
}

// clip returns the admissible counts of b that are also below limit, as a
// half-open degree range [lo, hi). hi may be less than lo.
func (b Bound) clip(limit int) (lo, hi int) {
	return b.Min, min(b.Max, limit)
}

// String returns a readable form of the bound.
//
// Examples:
//
//	Exactly("a", 2).String()     → "a = 2"
//	AtLeast("a", 2).String()     → "a >= 2"
//	LessThan("a", 4).String()    → "a < 4"
//	Between("a", 1, 4).String()  → "1 <= a < 4"
func (b Bound) String() string {
	switch {
	case b.Bounded() && b.Max == b.Min+1:
		return fmt.Sprintf("%s = %d", b.label, b.Min)
	case !b.Bounded():
		return fmt.Sprintf("%s >= %d", b.label, b.Min)
	case b.Min <= 0:
		return fmt.Sprintf("%s < %d", b.label, b.Max)
	default:
		return fmt.Sprintf("%d <= %s < %d", b.Min, b.label, b.Max)
	}
}
