package urn

import (
	"math/big"
)

// Value is one exact result: a Count for KindCount computations and a
// Rational for KindProbability computations. The set of implementations is
// closed.
type Value interface {
	// Rat returns the value as an exact rational.
	Rat() *big.Rat
	// IsZero reports whether the value is zero.
	IsZero() bool
	String() string

	isValue()
}

// Count is an exact, arbitrarily large, non-negative number of selections.
// The zero value is 0.
type Count struct {
	n *big.Int
}

// NewCount copies n into a Count.
func NewCount(n *big.Int) Count {
	return Count{n: new(big.Int).Set(n)}
}

// CountOf creates a Count from a machine integer.
func CountOf(n int64) Count {
	return Count{n: big.NewInt(n)}
}

func (c Count) int() *big.Int {
	if c.n == nil {
		return new(big.Int)
	}
	return c.n
}

// Int returns a copy of the count.
func (c Count) Int() *big.Int {
	return new(big.Int).Set(c.int())
}

// Rat returns the count as a rational with denominator 1.
func (c Count) Rat() *big.Rat {
	return new(big.Rat).SetInt(c.int())
}

// IsZero reports whether no selection was counted.
func (c Count) IsZero() bool {
	return c.int().Sign() == 0
}

// String returns the decimal digits of the count.
func (c Count) String() string {
	return c.int().String()
}

func (Count) isValue() {}
