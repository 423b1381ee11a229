package urn

import (
	errors "gopkg.in/src-d/go-errors.v1"
)

// Error kinds returned by the engine. Use Kind.Is to test for them:
//
//	if urn.ErrRequestInvalid.Is(err) { ... }
var (
	// ErrRequestInvalid is returned by Finalize when a request cannot be
	// evaluated: no collection, unknown constrained labels, a with-replacement
	// draw without explicit sizes, or negative counts.
	ErrRequestInvalid = errors.NewKind("invalid request: %s")

	// ErrNotFinalized is returned when evaluating a request that has not
	// been finalized.
	ErrNotFinalized = errors.NewKind("request must be finalized before evaluation (use Finalize)")

	// ErrUnsupported is returned for object types and computation kinds the
	// engine does not implement.
	ErrUnsupported = errors.NewKind("not implemented: %s %s")

	// ErrShapeMismatch is returned when selection sizes and values disagree
	// in length.
	ErrShapeMismatch = errors.NewKind("%d selection sizes but %d values")

	// ErrLabelMismatch is returned when intersecting bounds on different labels.
	ErrLabelMismatch = errors.NewKind("cannot intersect bound on %q with bound on %q")
)
