package urn

import (
	"io"
	"math/big"

	"github.com/sirupsen/logrus"
)

// Result pairs every evaluated selection size with its exact value.
// Values are Count for KindCount and Rational for KindProbability.
type Result struct {
	Kind   Kind
	Sizes  []int
	Values []Value
}

// NewResult builds a Result, checking that sizes and values line up.
//
// Returns an ErrShapeMismatch error if their lengths differ.
func NewResult(kind Kind, sizes []int, values []Value) (*Result, error) {
	if len(sizes) != len(values) {
		return nil, ErrShapeMismatch.New(len(sizes), len(values))
	}
	return &Result{Kind: kind, Sizes: sizes, Values: values}, nil
}

// Len returns the number of (size, value) pairs.
func (r *Result) Len() int {
	return len(r.Sizes)
}

// Value returns the value for selection size k, if k was evaluated.
func (r *Result) Value(k int) (Value, bool) {
	for i, s := range r.Sizes {
		if s == k {
			return r.Values[i], true
		}
	}
	return nil, false
}

// Evaluator evaluates finalized requests. An Evaluator keeps a cache of
// binomial coefficients across evaluations; it is safe for concurrent use.
type Evaluator struct {
	log   logrus.FieldLogger
	binom *binomials
}

// Option configures an Evaluator.
type Option func(*evaluatorOptions)

type evaluatorOptions struct {
	log       logrus.FieldLogger
	cacheSize int
}

// WithLogger sets the logger the evaluator writes debug traces to.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *evaluatorOptions) {
		o.log = log
	}
}

// WithBinomialCacheSize sets how many binomial coefficients are cached.
// Non-positive sizes select DefaultBinomialCacheSize.
func WithBinomialCacheSize(n int) Option {
	return func(o *evaluatorOptions) {
		o.cacheSize = n
	}
}

// NewEvaluator creates an Evaluator. Without WithLogger nothing is logged.
func NewEvaluator(opts ...Option) (*Evaluator, error) {
	o := evaluatorOptions{cacheSize: DefaultBinomialCacheSize}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		quiet := logrus.New()
		quiet.Out = io.Discard
		o.log = quiet
	}
	binom, err := newBinomials(o.cacheSize)
	if err != nil {
		return nil, err
	}
	return &Evaluator{log: o.log, binom: binom}, nil
}

// Evaluate evaluates req with a fresh default Evaluator.
func Evaluate(req *Request) (*Result, error) {
	e, err := NewEvaluator()
	if err != nil {
		return nil, err
	}
	return e.Evaluate(req)
}

// Evaluate computes the exact count or probability of req for each of its
// selection sizes.
//
// When req has no sizes (draws without replacement only), the sizes are
// the support of the distribution: every size with a non-zero count, in
// ascending order. They are reported in Result.Sizes; req is not modified.
//
// Returns an ErrNotFinalized error if req has not been finalized and an
// ErrUnsupported error for kinds or objects other than COUNT/PROBABILITY and
// DRAW. No partial result is ever returned.
func (e *Evaluator) Evaluate(req *Request) (*Result, error) {
	if req == nil || !req.Finalized() {
		return nil, ErrNotFinalized.New()
	}
	switch req.Kind {
	case KindCount, KindProbability:
	default:
		return nil, ErrUnsupported.New("computation kind", req.Kind)
	}

	switch req.Object {
	case ObjectDraw:
		return e.evaluateDraw(req)
	default:
		return nil, ErrUnsupported.New("object type", req.Object)
	}
}

// evaluateDraw dispatches on the replacement mode.
func (e *Evaluator) evaluateDraw(req *Request) (*Result, error) {
	log := e.log.WithFields(logrus.Fields{
		"kind":        req.Kind.String(),
		"replacement": req.WithReplacement,
		"disjuncts":   len(req.Constraints),
	})

	switch {
	case !req.WithReplacement:
		sizes, counts := e.countWithoutReplacement(req, log)
		return e.drawResult(req, sizes, counts, func(k int) *big.Int {
			return e.binom.get(req.CollectionSize(), k)
		})
	case req.Unconstrained() && req.Kind == KindCount:
		log.Debug("unconstrained draw with replacement, using closed form")
		sizes := req.Sizes.Values()
		n := big.NewInt(int64(req.CollectionSize()))
		counts := make([]*big.Int, len(sizes))
		for i, k := range sizes {
			counts[i] = new(big.Int).Exp(n, big.NewInt(int64(k)), nil)
		}
		return e.drawResult(req, sizes, counts, nil)
	default:
		sizes, counts := e.countWithReplacement(req, log)
		n := big.NewInt(int64(req.CollectionSize()))
		return e.drawResult(req, sizes, counts, func(k int) *big.Int {
			return new(big.Int).Exp(n, big.NewInt(int64(k)), nil)
		})
	}
}

// countWithoutReplacement sums the signed products of binomial generating
// functions over every subset of disjuncts and reads off the counts.
func (e *Evaluator) countWithoutReplacement(req *Request, log logrus.FieldLogger) ([]int, []*big.Int) {
	limit := req.CollectionSize() + 1
	if req.Sizes != nil {
		limit = req.Sizes.Upper()
	}
	total := newPoly[big.Int, *big.Int](limit)
	subsets := 0
	for n, bounds := range UnionSubsets(req.Constraints) {
		polys := countDrawPolynomials(e.binom, req.Collection, bounds, limit)
		total.addSigned(product(limit, polys), Sign(n))
		subsets++
	}
	log.WithFields(logrus.Fields{"limit": limit, "subsets": subsets}).Debug("summed generating functions")

	var sizes []int
	if req.Sizes != nil {
		sizes = req.Sizes.Values()
	} else {
		sizes = total.support()
	}
	counts := make([]*big.Int, len(sizes))
	for i, k := range sizes {
		counts[i] = total.coeff(k)
	}
	return sizes, counts
}

// countWithReplacement sums the signed products of exponential generating
// functions and converts coefficients to sequence counts by multiplying
// with k!.
func (e *Evaluator) countWithReplacement(req *Request, log logrus.FieldLogger) ([]int, []*big.Int) {
	limit := req.Sizes.Upper()
	total := newPoly[big.Rat, *big.Rat](limit)
	subsets := 0
	if req.Unconstrained() {
		total = product(limit, exponentialDrawPolynomials(req.Collection, nil, limit))
		subsets = 1
	}
	for n, bounds := range UnionSubsets(req.Constraints) {
		polys := exponentialDrawPolynomials(req.Collection, bounds, limit)
		total.addSigned(product(limit, polys), Sign(n))
		subsets++
	}
	log.WithFields(logrus.Fields{"limit": limit, "subsets": subsets}).Debug("summed exponential generating functions")

	sizes := req.Sizes.Values()
	counts := make([]*big.Int, len(sizes))
	for i, k := range sizes {
		c := total.coeff(k)
		c.Mul(c, new(big.Rat).SetInt(factorial(k)))
		// k!·coefficient is always an integer.
		counts[i] = new(big.Int).Set(c.Num())
	}
	return sizes, counts
}

// drawResult converts counts to values of the requested kind. total returns
// the number of unconstrained outcomes of size k, the probability
// denominator; it is unused for counts.
func (e *Evaluator) drawResult(req *Request, sizes []int, counts []*big.Int, total func(k int) *big.Int) (*Result, error) {
	values := make([]Value, len(counts))
	switch req.Kind {
	case KindCount:
		for i, c := range counts {
			values[i] = Count{n: c}
		}
	case KindProbability:
		for i, c := range counts {
			values[i] = NewRational(c, total(sizes[i]))
		}
	default:
		return nil, ErrUnsupported.New("computation kind", req.Kind)
	}
	return NewResult(req.Kind, sizes, values)
}
