package urn

import (
	"fmt"
	"math/big"
	"strings"
)

// coefficient is the arithmetic a polynomial needs from its coefficients.
// It is satisfied by *big.Int and *big.Rat.
type coefficient[T any] interface {
	*T
	Add(x, y *T) *T
	Sub(x, y *T) *T
	Mul(x, y *T) *T
	Set(x *T) *T
	SetInt64(v int64) *T
	Sign() int
	String() string
}

// poly is a dense polynomial in x truncated below a degree limit: terms of
// degree >= limit are discarded by every operation. The engine only ever
// reads coefficients below the largest requested selection size, so
// truncation never changes a reported value.
//
// coeffs[d] is the coefficient of x^d. Every entry is non-nil; trailing
// zeros are trimmed.
type poly[T any, P coefficient[T]] struct {
	coeffs []P
	limit  int
}

type (
	intPoly = poly[big.Int, *big.Int]
	ratPoly = poly[big.Rat, *big.Rat]
)

// newPoly returns the zero polynomial truncated at limit.
func newPoly[T any, P coefficient[T]](limit int) *poly[T, P] {
	return &poly[T, P]{limit: max(limit, 0)}
}

// onePoly returns the constant polynomial 1 truncated at limit.
func onePoly[T any, P coefficient[T]](limit int) *poly[T, P] {
	p := newPoly[T, P](limit)
	if p.limit > 0 {
		p.coeffs = []P{P(new(T)).SetInt64(1)}
	}
	return p
}

// zero returns a fresh zero coefficient.
func (p *poly[T, P]) zero() P {
	return P(new(T))
}

// grow extends coeffs with zeros up to length n.
func (p *poly[T, P]) grow(n int) {
	for len(p.coeffs) < n {
		p.coeffs = append(p.coeffs, p.zero())
	}
}

// trim drops trailing zero coefficients.
func (p *poly[T, P]) trim() {
	n := len(p.coeffs)
	for n > 0 && p.coeffs[n-1].Sign() == 0 {
		n--
	}
	p.coeffs = p.coeffs[:n]
}

// setCoeff sets the coefficient of x^d to a copy of v. Degrees at or above
// the limit are ignored.
func (p *poly[T, P]) setCoeff(d int, v P) {
	if d < 0 || d >= p.limit {
		return
	}
	p.grow(d + 1)
	p.coeffs[d].Set(v)
	p.trim()
}

// coeff returns a copy of the coefficient of x^d, zero if absent.
func (p *poly[T, P]) coeff(d int) P {
	out := p.zero()
	if d >= 0 && d < len(p.coeffs) {
		out.Set(p.coeffs[d])
	}
	return out
}

// degree returns the degree of p, or -1 for the zero polynomial.
func (p *poly[T, P]) degree() int {
	return len(p.coeffs) - 1
}

// isZero reports whether every coefficient is zero.
func (p *poly[T, P]) isZero() bool {
	return len(p.coeffs) == 0
}

// support returns, in ascending order, the degrees with non-zero coefficients.
func (p *poly[T, P]) support() []int {
	var out []int
	for d, c := range p.coeffs {
		if c.Sign() != 0 {
			out = append(out, d)
		}
	}
	return out
}

// mul returns p·q truncated at the smaller of the two limits.
func (p *poly[T, P]) mul(q *poly[T, P]) *poly[T, P] {
	out := newPoly[T, P](min(p.limit, q.limit))
	if p.isZero() || q.isZero() {
		return out
	}
	n := min(len(p.coeffs)+len(q.coeffs)-1, out.limit)
	out.grow(n)
	term := p.zero()
	for i, a := range p.coeffs {
		if i >= n {
			break
		}
		if a.Sign() == 0 {
			continue
		}
		for j, b := range q.coeffs {
			if i+j >= n {
				break
			}
			if b.Sign() == 0 {
				continue
			}
			term.Mul(a, b)
			out.coeffs[i+j].Add(out.coeffs[i+j], term)
		}
	}
	out.trim()
	return out
}

// addSigned adds q to p in place when sign > 0 and subtracts it otherwise.
func (p *poly[T, P]) addSigned(q *poly[T, P], sign int) {
	n := min(len(q.coeffs), p.limit)
	p.grow(n)
	for d := 0; d < n; d++ {
		if sign > 0 {
			p.coeffs[d].Add(p.coeffs[d], q.coeffs[d])
		} else {
			p.coeffs[d].Sub(p.coeffs[d], q.coeffs[d])
		}
	}
	p.trim()
}

// product multiplies polys together, starting from the constant 1.
func product[T any, P coefficient[T]](limit int, polys []*poly[T, P]) *poly[T, P] {
	acc := onePoly[T, P](limit)
	for _, q := range polys {
		acc = acc.mul(q)
		if acc.isZero() {
			break
		}
	}
	return acc
}

// String renders p highest degree first, e.g. "10*x^2 + 5*x + 1".
func (p *poly[T, P]) String() string {
	if p.isZero() {
		return "0"
	}
	var terms []string
	for d := len(p.coeffs) - 1; d >= 0; d-- {
		c := p.coeffs[d]
		if c.Sign() == 0 {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, c.String())
		case 1:
			terms = append(terms, fmt.Sprintf("%s*x", c))
		default:
			terms = append(terms, fmt.Sprintf("%s*x^%d", c, d))
		}
	}
	return strings.Join(terms, " + ")
}
