package urn

import (
	"math/big"
)

// degreeRange returns the admissible copy counts [lo, hi) of label under
// bounds, limited by limit. A label without a bound is unconstrained.
func degreeRange(bounds BoundSet, label string, limit int) (lo, hi int) {
	if b, ok := bounds[label]; ok {
		return b.clip(limit)
	}
	return 0, limit
}

// countDrawPolynomials builds the ordinary generating function of each label
// for draws without replacement, in collection order.
//
// For a label with count c and admissible range [lo, hi), the polynomial is
//
//	Σ_{d ∈ [lo, min(hi, c+1, limit))} C(c, d)·x^d
//
// where C(c, d) counts the ways to choose d of the c copies. The product of
// all labels' polynomials has, at x^k, the number of size-k selections that
// satisfy bounds.
//
// Example: collection {a: 5}, no bound, limit 3 → 10*x^2 + 5*x + 1.
func countDrawPolynomials(binom *binomials, c *Collection, bounds BoundSet, limit int) []*intPoly {
	out := make([]*intPoly, 0, c.Len())
	for _, it := range c.Items() {
		lo, hi := degreeRange(bounds, it.Label, limit)
		hi = min(hi, it.Count+1)
		p := newPoly[big.Int, *big.Int](limit)
		for i, coeff := range binom.row(it.Count, lo, hi) {
			p.setCoeff(lo+i, coeff)
		}
		out = append(out, p)
	}
	return out
}

// exponentialDrawPolynomials builds the exponential generating function of
// each label for draws with replacement, in collection order.
//
// For a label with count c and admissible range [lo, hi), the polynomial is
//
//	Σ_{d ∈ [lo, min(hi, limit))} (c^d / d!)·x^d
//
// The count c does not limit the degree since copies are replaced. The
// number of length-k sequences meeting bounds is k! times the coefficient of
// x^k in the product of all labels' polynomials.
//
// Example: collection {a: 2}, no bound, limit 3 → 2*x^2 + 2*x + 1.
func exponentialDrawPolynomials(c *Collection, bounds BoundSet, limit int) []*ratPoly {
	out := make([]*ratPoly, 0, c.Len())
	for _, it := range c.Items() {
		lo, hi := degreeRange(bounds, it.Label, limit)
		p := newPoly[big.Rat, *big.Rat](limit)
		if lo < 0 {
			lo = 0
		}
		if lo < hi {
			count := big.NewInt(int64(it.Count))
			// term = c^lo / lo!, then term·c/(d+1) for each following degree.
			term := new(big.Rat).SetFrac(new(big.Int).Exp(count, big.NewInt(int64(lo)), nil), factorial(lo))
			step := new(big.Rat)
			for d := lo; d < hi; d++ {
				p.setCoeff(d, term)
				step.SetFrac(count, big.NewInt(int64(d+1)))
				term.Mul(term, step)
			}
		}
		out = append(out, p)
	}
	return out
}
