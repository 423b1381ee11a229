package urn

import (
	"math/big"
)

// Rational represents an exact rational number of arbitrary size.
// Used for probabilities, which are ratios of counts that routinely exceed
// 64 bits.
//
// Rationals are always in normalized form (lowest terms, positive
// denominator). A Rational is immutable: every operation returns a new value.
//
// The zero value is 0.
type Rational struct {
	r *big.Rat
}

// NewRational creates the rational num/den in normalized form.
// Panics if den is zero.
//
// Examples:
//
//	NewRational(big.NewInt(6), big.NewInt(8))  → 3/4
//	NewRational(big.NewInt(6), big.NewInt(-8)) → -3/4
//	NewRational(big.NewInt(0), big.NewInt(5))  → 0
func NewRational(num, den *big.Int) Rational {
	if den.Sign() == 0 {
		panic("rational: division by zero")
	}
	return Rational{r: new(big.Rat).SetFrac(num, den)}
}

// RationalOf creates the rational num/den from machine integers.
// Panics if den is zero.
func RationalOf(num, den int64) Rational {
	if den == 0 {
		panic("rational: division by zero")
	}
	return Rational{r: big.NewRat(num, den)}
}

// RationalFromRat copies r into a Rational.
func RationalFromRat(r *big.Rat) Rational {
	return Rational{r: new(big.Rat).Set(r)}
}

// rat returns the underlying value, treating the zero Rational as 0.
func (r Rational) rat() *big.Rat {
	if r.r == nil {
		return new(big.Rat)
	}
	return r.r
}

// Add returns r + other.
func (r Rational) Add(other Rational) Rational {
	return Rational{r: new(big.Rat).Add(r.rat(), other.rat())}
}

// Sub returns r - other.
func (r Rational) Sub(other Rational) Rational {
	return Rational{r: new(big.Rat).Sub(r.rat(), other.rat())}
}

// Mul returns r * other.
func (r Rational) Mul(other Rational) Rational {
	return Rational{r: new(big.Rat).Mul(r.rat(), other.rat())}
}

// Div returns r / other.
// Panics if other is zero.
func (r Rational) Div(other Rational) Rational {
	if other.IsZero() {
		panic("rational: division by zero")
	}
	return Rational{r: new(big.Rat).Quo(r.rat(), other.rat())}
}

// Neg returns -r.
func (r Rational) Neg() Rational {
	return Rational{r: new(big.Rat).Neg(r.rat())}
}

// IsZero returns true if the rational number is zero.
func (r Rational) IsZero() bool {
	return r.rat().Sign() == 0
}

// IsPositive returns true if the rational number is greater than zero.
func (r Rational) IsPositive() bool {
	return r.rat().Sign() > 0
}

// IsNegative returns true if the rational number is less than zero.
func (r Rational) IsNegative() bool {
	return r.rat().Sign() < 0
}

// Num returns a copy of the numerator.
func (r Rational) Num() *big.Int {
	return new(big.Int).Set(r.rat().Num())
}

// Den returns a copy of the denominator (always > 0).
func (r Rational) Den() *big.Int {
	return new(big.Int).Set(r.rat().Denom())
}

// Rat returns a copy of the value as a *big.Rat.
func (r Rational) Rat() *big.Rat {
	return new(big.Rat).Set(r.rat())
}

// ToFloat returns the nearest floating-point value.
// Only for display; all arithmetic stays exact.
func (r Rational) ToFloat() float64 {
	f, _ := r.rat().Float64()
	return f
}

// String returns "num/den", or "num" for integers.
//
// Examples:
//
//	RationalOf(3, 4).String()  → "3/4"
//	RationalOf(6, 1).String()  → "6"
//	RationalOf(-5, 2).String() → "-5/2"
func (r Rational) String() string {
	return r.rat().RatString()
}

// Equals returns true if two rational numbers are equal.
func (r Rational) Equals(other Rational) bool {
	return r.rat().Cmp(other.rat()) == 0
}

func (Rational) isValue() {}
