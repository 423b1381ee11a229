package urn

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valueStrings(values []Value) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}

func evaluate(t *testing.T, req *Request) *Result {
	t.Helper()
	require.NoError(t, req.Finalize())
	res, err := Evaluate(req)
	require.NoError(t, err)
	return res
}

func TestEvaluate_Draws(t *testing.T) {
	tests := []struct {
		name      string
		req       *Request
		wantSizes []int
		want      []string
	}{
		{
			name: "binomial row without constraints",
			req: &Request{
				Sizes:      SizeRange(0, 6),
				Collection: MustCollection(Item{"A", 5}),
			},
			wantSizes: []int{0, 1, 2, 3, 4, 5},
			want:      []string{"1", "5", "10", "10", "5", "1"},
		},
		{
			name: "two disjuncts",
			req: &Request{
				Sizes:      SizeList(3, 4, 5, 6, 7),
				Collection: MustCollection(Item{"blue", 12}, Item{"red", 16}, Item{"green", 11}),
				Constraints: [][]Bound{
					{Between("red", 0, 4)},
					{Between("blue", 3, 4)},
				},
			},
			wantSizes: []int{3, 4, 5, 6, 7},
			want:      []string{"9139", "80431", "529529", "2693691", "11257389"},
		},
		{
			name: "clipped range cannot satisfy constraint",
			req: &Request{
				Sizes:       SizeRange(0, 2),
				Collection:  MustCollection(Item{"a", 4}),
				Constraints: [][]Bound{{AtLeast("a", 2)}},
			},
			wantSizes: []int{0, 1},
			want:      []string{"0", "0"},
		},
		{
			name: "sizes beyond the collection are dropped",
			req: &Request{
				Sizes:      SizeRange(1, 100),
				Collection: MustCollection(Item{"a", 2}, Item{"b", 1}),
			},
			wantSizes: []int{1, 2, 3},
			want:      []string{"3", "3", "1"},
		},
		{
			name: "repeated label in a disjunct",
			req: &Request{
				Sizes:       SizeList(4),
				Collection:  MustCollection(Item{"A", 7}, Item{"B", 3}),
				Constraints: [][]Bound{{AtMost("A", 3), GreaterThan("A", 1)}},
			},
			// A=2: C(7,2)·C(3,2)=63, A=3: C(7,3)·C(3,1)=105
			wantSizes: []int{4},
			want:      []string{"168"},
		},
		{
			name: "inferred sizes are the support",
			req: &Request{
				Collection:  MustCollection(Item{"a", 2}, Item{"b", 1}),
				Constraints: [][]Bound{{AtLeast("a", 2)}},
			},
			wantSizes: []int{2, 3},
			want:      []string{"1", "1"},
		},
		{
			name: "empty collection",
			req: &Request{
				Collection: MustCollection(),
			},
			wantSizes: []int{0},
			want:      []string{"1"},
		},
		{
			name: "probability without replacement",
			req: &Request{
				Kind:        KindProbability,
				Sizes:       SizeList(2),
				Collection:  MustCollection(Item{"red", 2}, Item{"blue", 2}),
				Constraints: [][]Bound{{Exactly("red", 1)}},
			},
			wantSizes: []int{2},
			want:      []string{"2/3"},
		},
		{
			name: "unconstrained count with replacement",
			req: &Request{
				Sizes:           SizeList(5, 6, 7),
				Collection:      MustCollection(Item{"blue", 3}, Item{"red", 4}, Item{"green", 5}),
				WithReplacement: true,
			},
			wantSizes: []int{5, 6, 7},
			want:      []string{"248832", "2985984", "35831808"},
		},
		{
			name: "with replacement, exactly one a",
			req: &Request{
				Sizes:           SizeList(2),
				Collection:      MustCollection(Item{"a", 1}, Item{"b", 1}),
				Constraints:     [][]Bound{{Exactly("a", 1)}},
				WithReplacement: true,
			},
			wantSizes: []int{2},
			want:      []string{"2"},
		},
		{
			name: "with replacement, disjuncts",
			req: &Request{
				Sizes:           SizeList(2),
				Collection:      MustCollection(Item{"a", 1}, Item{"b", 1}),
				Constraints:     [][]Bound{{Exactly("a", 2)}, {Exactly("b", 2)}},
				WithReplacement: true,
			},
			wantSizes: []int{2},
			want:      []string{"2"},
		},
		{
			name: "with replacement probability",
			req: &Request{
				Kind:            KindProbability,
				Sizes:           SizeList(2, 3),
				Collection:      MustCollection(Item{"a", 1}, Item{"b", 1}),
				Constraints:     [][]Bound{{Exactly("a", 1)}},
				WithReplacement: true,
			},
			// ab, ba of 4; aab, aba, baa... one a: abb, bab, bba of 8
			wantSizes: []int{2, 3},
			want:      []string{"1/2", "3/8"},
		},
		{
			name: "with replacement, count exceeds copies",
			req: &Request{
				Sizes:           SizeList(3),
				Collection:      MustCollection(Item{"a", 1}, Item{"b", 2}),
				Constraints:     [][]Bound{{AtLeast("a", 3)}},
				WithReplacement: true,
			},
			wantSizes: []int{3},
			want:      []string{"1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := evaluate(t, tt.req)
			assert.Equal(t, tt.wantSizes, res.Sizes)
			assert.Equal(t, tt.want, valueStrings(res.Values))
			assert.Equal(t, tt.req.Kind, res.Kind)
		})
	}
}

func TestEvaluate_DoesNotModifyRequest(t *testing.T) {
	req := &Request{
		Collection:  MustCollection(Item{"a", 2}, Item{"b", 1}),
		Constraints: [][]Bound{{AtLeast("a", 1)}},
	}
	res := evaluate(t, req)
	assert.Equal(t, []int{1, 2, 3}, res.Sizes)
	assert.Nil(t, req.Sizes)
}

// The closed form for unconstrained draws with replacement and the general
// exponential path must agree, including for size zero.
func TestEvaluate_ClosedFormAgreesWithExponentialPath(t *testing.T) {
	collection := MustCollection(Item{"blue", 3}, Item{"red", 4}, Item{"green", 5})
	sizes := SizeList(0, 1, 2, 5, 9)

	closed := evaluate(t, &Request{Sizes: sizes, Collection: collection, WithReplacement: true})

	// A bound every sequence satisfies forces the general path.
	general := evaluate(t, &Request{
		Sizes:           sizes,
		Collection:      collection,
		Constraints:     [][]Bound{{AtLeast("blue", 0)}},
		WithReplacement: true,
	})
	assert.Equal(t, valueStrings(closed.Values), valueStrings(general.Values))
	assert.Equal(t, []string{"1", "12", "144", "248832", "5159780352"}, valueStrings(closed.Values))

	prob := evaluate(t, &Request{
		Kind:            KindProbability,
		Sizes:           sizes,
		Collection:      collection,
		WithReplacement: true,
	})
	for _, v := range prob.Values {
		assert.Equal(t, "1", v.String())
	}
}

func TestEvaluate_ProbabilityNormalization(t *testing.T) {
	collection := MustCollection(Item{"a", 4}, Item{"b", 3}, Item{"c", 2})

	// Unconstrained draws have probability 1 at every size.
	res := evaluate(t, &Request{Kind: KindProbability, Collection: collection})
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, res.Sizes)
	for _, v := range res.Values {
		assert.Equal(t, "1", v.String())
	}

	// The events a = j partition every size.
	for _, replacement := range []bool{false, true} {
		for k := 0; k <= 6; k++ {
			sum := new(big.Rat)
			for j := 0; j <= k; j++ {
				r := evaluate(t, &Request{
					Kind:            KindProbability,
					Sizes:           SizeList(k),
					Collection:      collection,
					Constraints:     [][]Bound{{Exactly("a", j)}},
					WithReplacement: replacement,
				})
				sum.Add(sum, r.Values[0].Rat())
			}
			assert.Equal(t, "1", sum.RatString(), "replacement=%v k=%d", replacement, k)
		}
	}
}

// Inclusion–exclusion over overlapping disjuncts matches a brute-force
// enumeration of every selection.
func TestEvaluate_InclusionExclusionBruteForce(t *testing.T) {
	counts := []int{3, 2, 4}
	labels := []string{"x", "y", "z"}
	collection := MustCollection(Item{"x", 3}, Item{"y", 2}, Item{"z", 4})
	disjuncts := [][]Bound{
		{AtLeast("x", 2)},
		{Exactly("y", 1), AtMost("z", 2)},
		{Between("z", 1, 3), LessThan("x", 2)},
	}

	want := make([]*big.Int, 10)
	for i := range want {
		want[i] = new(big.Int)
	}
	choose := func(n, k int) *big.Int { return new(big.Int).Binomial(int64(n), int64(k)) }
	for x := 0; x <= counts[0]; x++ {
		for y := 0; y <= counts[1]; y++ {
			for z := 0; z <= counts[2]; z++ {
				picked := map[string]int{labels[0]: x, labels[1]: y, labels[2]: z}
				ok := false
				for _, d := range disjuncts {
					all := true
					for _, b := range d {
						all = all && b.Contains(picked[b.Label()])
					}
					ok = ok || all
				}
				if !ok {
					continue
				}
				ways := new(big.Int).Mul(choose(3, x), choose(2, y))
				ways.Mul(ways, choose(4, z))
				want[x+y+z].Add(want[x+y+z], ways)
			}
		}
	}

	res := evaluate(t, &Request{
		Sizes:       SizeRange(0, 10),
		Collection:  collection,
		Constraints: disjuncts,
	})
	for i, k := range res.Sizes {
		assert.Equal(t, want[k].String(), res.Values[i].String(), "size %d", k)
	}
}

func TestEvaluate_Errors(t *testing.T) {
	_, err := Evaluate(&Request{Collection: MustCollection(Item{"a", 1})})
	assert.True(t, ErrNotFinalized.Is(err))

	_, err = Evaluate(nil)
	assert.True(t, ErrNotFinalized.Is(err))

	req := &Request{Object: Object(4), Collection: MustCollection(Item{"a", 1})}
	require.NoError(t, req.Finalize())
	_, err = Evaluate(req)
	assert.True(t, ErrUnsupported.Is(err))
	assert.Contains(t, err.Error(), "Object(4)")

	req = &Request{Kind: Kind(9), Collection: MustCollection(Item{"a", 1})}
	require.NoError(t, req.Finalize())
	_, err = Evaluate(req)
	assert.True(t, ErrUnsupported.Is(err))
	assert.Contains(t, err.Error(), "Kind(9)")
}

func TestNewResult_ShapeMismatch(t *testing.T) {
	_, err := NewResult(KindCount, []int{1, 2}, []Value{CountOf(1)})
	assert.True(t, ErrShapeMismatch.Is(err))

	res, err := NewResult(KindCount, []int{1, 2}, []Value{CountOf(1), CountOf(4)})
	require.NoError(t, err)
	v, ok := res.Value(2)
	assert.True(t, ok)
	assert.Equal(t, "4", v.String())
	_, ok = res.Value(3)
	assert.False(t, ok)
}

func TestEvaluator_Logging(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.Out = &buf
	log.Level = logrus.DebugLevel

	e, err := NewEvaluator(WithLogger(log), WithBinomialCacheSize(8))
	require.NoError(t, err)

	req := &Request{
		Sizes:       SizeRange(0, 4),
		Collection:  MustCollection(Item{"a", 3}),
		Constraints: [][]Bound{{AtLeast("a", 1)}, {AtMost("a", 0)}},
	}
	require.NoError(t, req.Finalize())
	res, err := e.Evaluate(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "3", "1"}, valueStrings(res.Values))
	assert.Contains(t, buf.String(), "subsets=3")
}
