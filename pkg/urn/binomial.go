package urn

import (
	"math/big"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultBinomialCacheSize is the number of binomial coefficients an
// Evaluator keeps by default.
const DefaultBinomialCacheSize = 4096

type binomialKey struct {
	n, k int
}

// binomials computes binomial coefficients C(n, k) with an LRU cache.
// Probability conversion asks for C(N, k) with the same N for every size,
// and every generating function starts from C(c, lo).
//
// Cached values are shared: callers must treat them as read-only.
type binomials struct {
	cache *lru.Cache[binomialKey, *big.Int]
}

func newBinomials(size int) (*binomials, error) {
	if size <= 0 {
		size = DefaultBinomialCacheSize
	}
	cache, err := lru.New[binomialKey, *big.Int](size)
	if err != nil {
		return nil, err
	}
	return &binomials{cache: cache}, nil
}

// get returns C(n, k), which is 0 when k < 0 or k > n.
func (b *binomials) get(n, k int) *big.Int {
	if k < 0 || k > n || n < 0 {
		return new(big.Int)
	}
	key := binomialKey{n: n, k: min(k, n-k)}
	if v, ok := b.cache.Get(key); ok {
		return v
	}
	v := new(big.Int).Binomial(int64(key.n), int64(key.k))
	b.cache.Add(key, v)
	return v
}

// row returns C(n, d) for d in [lo, hi), computed from C(n, lo) with the
// recurrence C(n, d+1) = C(n, d)·(n-d)/(d+1). The returned values are fresh.
func (b *binomials) row(n, lo, hi int) []*big.Int {
	if lo < 0 {
		lo = 0
	}
	hi = min(hi, n+1)
	if hi <= lo {
		return nil
	}
	out := make([]*big.Int, 0, hi-lo)
	cur := new(big.Int).Set(b.get(n, lo))
	var num, den big.Int
	for d := lo; d < hi; d++ {
		out = append(out, new(big.Int).Set(cur))
		num.SetInt64(int64(n - d))
		den.SetInt64(int64(d + 1))
		cur.Mul(cur, &num)
		cur.Quo(cur, &den)
	}
	return out
}

// factorial returns k!.
func factorial(k int) *big.Int {
	return new(big.Int).MulRange(1, int64(k))
}
