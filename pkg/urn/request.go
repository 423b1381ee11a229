package urn

import (
	"fmt"
	"slices"
	"strings"
)

// Kind is what a computation reports for each selection size.
type Kind int

const (
	// KindCount reports the exact number of admissible selections.
	KindCount Kind = iota
	// KindProbability reports the exact probability of an admissible selection.
	KindProbability
)

// String returns the upper-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindCount:
		return "COUNT"
	case KindProbability:
		return "PROBABILITY"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a case-insensitive name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(s) {
	case "COUNT":
		return KindCount, nil
	case "PROBABILITY", "PROB":
		return KindProbability, nil
	default:
		return 0, ErrUnsupported.New("computation kind", s)
	}
}

// Object is the kind of object being selected.
type Object int

const (
	// ObjectDraw selects a sub-multiset of the collection: unordered without
	// replacement, ordered with replacement.
	ObjectDraw Object = iota
)

// String returns the upper-case name of the object.
func (o Object) String() string {
	switch o {
	case ObjectDraw:
		return "DRAW"
	default:
		return fmt.Sprintf("Object(%d)", int(o))
	}
}

// ParseObject maps a case-insensitive name to an Object.
func ParseObject(s string) (Object, error) {
	switch strings.ToUpper(s) {
	case "DRAW", "DRAWS":
		return ObjectDraw, nil
	default:
		return 0, ErrUnsupported.New("object type", s)
	}
}

// Request describes one computation: how many (or what fraction of)
// selections of each size can be drawn from Collection while satisfying at
// least one disjunct of Constraints.
//
// Constraints is in disjunctive normal form: the request is satisfied by a
// selection meeting every Bound of at least one inner slice. Labels may
// repeat inside a disjunct; their bounds are intersected.
//
// Sizes may be nil. Without replacement the sizes are then inferred from the
// support of the distribution and reported in Result.Sizes. With replacement
// Sizes is mandatory.
//
// A Request must be finalized with Finalize before evaluation. Evaluation
// never modifies the request.
type Request struct {
	Kind            Kind
	Object          Object
	Sizes           *Sizes
	Collection      *Collection
	Constraints     [][]Bound
	WithReplacement bool

	finalized bool
}

// Finalize validates the request and completes it for evaluation:
//
//   - without replacement and without constraints, every label is
//     constrained to [0, count+1), which is no real restriction;
//   - without replacement, sizes above the collection size are dropped;
//   - every constrained label must belong to the collection.
//
// Returns an ErrRequestInvalid error if the collection is missing, a size or
// bound minimum is negative, sizes are missing for a with-replacement draw,
// a with-replacement draw is made from an empty collection, or constraints
// name unknown labels. Finalizing an already finalized request does nothing.
func (r *Request) Finalize() error {
	if r.finalized {
		return nil
	}
	if r.Collection == nil {
		return ErrRequestInvalid.New("collection cannot be nil")
	}
	if r.Sizes != nil && r.Sizes.Len() > 0 && r.Sizes.min() < 0 {
		return ErrRequestInvalid.New(fmt.Sprintf("selection sizes %s include a negative size", r.Sizes))
	}
	if r.WithReplacement {
		if r.Sizes == nil {
			return ErrRequestInvalid.New("selection sizes are required when drawing with replacement")
		}
		if r.CollectionSize() == 0 {
			return ErrRequestInvalid.New("cannot draw with replacement from an empty collection")
		}
	}

	var missing []string
	for _, disjunct := range r.Constraints {
		for _, b := range disjunct {
			if b.Min < 0 {
				return ErrRequestInvalid.New(fmt.Sprintf("bound %s has a negative minimum", b))
			}
			if !r.Collection.Has(b.label) && !slices.Contains(missing, b.label) {
				missing = append(missing, b.label)
			}
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return ErrRequestInvalid.New(fmt.Sprintf("constrained items not in collection: %s", strings.Join(missing, ", ")))
	}

	if !r.WithReplacement {
		if len(r.Constraints) == 0 {
			r.Constraints = [][]Bound{r.defaultDisjunct()}
		}
		if r.Sizes != nil {
			r.Sizes = r.Sizes.ClipUpper(r.CollectionSize() + 1)
		}
	}

	r.finalized = true
	return nil
}

// defaultDisjunct bounds every label by its own count.
func (r *Request) defaultDisjunct() []Bound {
	items := r.Collection.Items()
	out := make([]Bound, len(items))
	for i, it := range items {
		out[i] = Between(it.Label, 0, it.Count+1)
	}
	return out
}

// Finalized reports whether Finalize has completed successfully.
func (r *Request) Finalized() bool {
	return r.finalized
}

// CollectionSize returns the total number of copies in the collection.
func (r *Request) CollectionSize() int {
	if r.Collection == nil {
		return 0
	}
	return r.Collection.Size()
}

// Unconstrained reports whether the request carries no constraints.
func (r *Request) Unconstrained() bool {
	return len(r.Constraints) == 0
}

// XLabel returns the axis label for selection sizes, e.g. "draw size".
func (r *Request) XLabel() string {
	return strings.ToLower(r.Object.String()) + " size"
}

// YLabel returns the axis label for values, e.g. "probability".
func (r *Request) YLabel() string {
	return strings.ToLower(r.Kind.String())
}

// String returns a one-line summary of the request.
func (r *Request) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", r.Kind, r.Object)
	if r.Sizes != nil {
		fmt.Fprintf(&sb, " %s", r.Sizes)
	}
	if r.Collection != nil {
		fmt.Fprintf(&sb, " FROM %s", r.Collection)
	}
	if r.WithReplacement {
		sb.WriteString(" WITH REPLACEMENT")
	}
	for i, disjunct := range r.Constraints {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" OR ")
		}
		parts := make([]string, len(disjunct))
		for j, b := range disjunct {
			parts[j] = b.String()
		}
		sb.WriteString(strings.Join(parts, " AND "))
	}
	return sb.String()
}
