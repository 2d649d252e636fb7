package gsvd_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numgraph/randgsvd/gsvd"
	"github.com/numgraph/randgsvd/matrix"
)

// The decoder is exercised through SolveDense with a stub kernel whose
// rank partition and coefficient vectors are crafted per test.

// TestDecode_TallBranch covers m−k−l ≥ 0: the informative range is
// [k, k+l) and both sequences have length l.
func TestDecode_TallBranch(t *testing.T) {
	a, b := pair33(t) // m = n = p = 3
	stub := &stubPrimitive{
		k:     1,
		l:     2,
		alpha: []float64{1, 0.8, 0.6},
		beta:  []float64{0, 0.6, 0.8},
	}

	res, err := gsvd.SolveDense(a, b, gsvd.WithPrimitive[float64](stub))
	require.NoError(t, err)
	require.Len(t, res.S1, 2, "tall branch decodes l entries")
	require.Len(t, res.S2, 2)
	assert.Equal(t, []float64{0.8, 0.6}, res.S1)
	assert.Equal(t, []float64{0.6, 0.8}, res.S2)
	assert.Equal(t, 1, res.K)
	assert.Equal(t, 2, res.L)
}

// TestDecode_WideBranch covers m−k−l < 0: the informative range is [k, m),
// the conventional alpha=0/beta=1 tail is not materialized.
func TestDecode_WideBranch(t *testing.T) {
	// A is 2×6, B is 3×6; the stub reports k=1, l=3, so m−k−l = −2.
	a, err := matrix.NewDense[float64](2, 6)
	require.NoError(t, err)
	b, err := matrix.NewDense[float64](3, 6)
	require.NoError(t, err)
	stub := &stubPrimitive{
		k:     1,
		l:     3,
		alpha: []float64{1, 0.9, 0, 0, 0, 0},
		beta:  []float64{0, math.Sqrt(1 - 0.81), 1, 1, 0, 0},
	}

	res, err := gsvd.SolveDense(a, b, gsvd.WithPrimitive[float64](stub))
	require.NoError(t, err)
	require.Len(t, res.S1, 1, "wide branch decodes min(m,k+l)−k = m−k entries")
	assert.InDelta(t, 0.9, res.S1[0], 1e-12)
	assert.InDelta(t, math.Sqrt(1-0.81), res.S2[0], 1e-12)
}

// TestDecode_IdentityViolation rejects coefficient pairs whose squares do
// not sum to one within 1e-5.
func TestDecode_IdentityViolation(t *testing.T) {
	a, b := pair33(t)
	stub := &stubPrimitive{
		k:     0,
		l:     3,
		alpha: []float64{0.9, 0.8, 0.7},
		beta:  []float64{0.1, 0.6, math.Sqrt(1 - 0.49)}, // first pair is off
	}

	_, err := gsvd.SolveDense(a, b, gsvd.WithPrimitive[float64](stub))
	assert.ErrorIs(t, err, gsvd.ErrInternalInconsistency)
	assert.Contains(t, err.Error(), "s1²+s2²")
}

// TestDecode_SortViolation rejects an alpha sequence that increases inside
// the informative range.
func TestDecode_SortViolation(t *testing.T) {
	a, b := pair33(t)
	stub := &stubPrimitive{
		k:     0,
		l:     3,
		alpha: []float64{0.6, 0.8, 0.5}, // 0.8 > 0.6 breaks the ordering
		beta:  []float64{0.8, 0.6, math.Sqrt(1 - 0.25)},
	}

	_, err := gsvd.SolveDense(a, b, gsvd.WithPrimitive[float64](stub))
	assert.ErrorIs(t, err, gsvd.ErrInternalInconsistency)
	assert.Contains(t, err.Error(), "alpha increases")
}

// TestDecode_OrthogonalityViolation rejects a non-orthogonal U factor.
func TestDecode_OrthogonalityViolation(t *testing.T) {
	a, b := pair33(t)
	stub := &stubPrimitive{
		k:     0,
		l:     3,
		alpha: []float64{1, 1, 1},
		beta:  []float64{0, 0, 0},
		fillU: func(u []float64, m int) {
			identityInto(u, m)
			u[1] = 0.5 // breaks UᵀU = I well beyond tolerance
		},
	}

	_, err := gsvd.SolveDense(a, b, gsvd.WithPrimitive[float64](stub))
	assert.ErrorIs(t, err, gsvd.ErrInternalInconsistency)
	assert.Contains(t, err.Error(), "U")
}

// TestDecode_BadRankPartition rejects k+l beyond the column count.
func TestDecode_BadRankPartition(t *testing.T) {
	a, b := pair33(t)
	stub := &stubPrimitive{
		k:     2,
		l:     2, // k+l = 4 > n = 3
		alpha: []float64{1, 1, 1},
		beta:  []float64{0, 0, 0},
	}

	_, err := gsvd.SolveDense(a, b, gsvd.WithPrimitive[float64](stub))
	assert.ErrorIs(t, err, gsvd.ErrInternalInconsistency)
	assert.Contains(t, err.Error(), "rank partition")
}

// TestDecode_LooseToleranceOption verifies WithOrthoTol loosens only the
// orthogonality validation, not the cosine/sine identity.
func TestDecode_LooseToleranceOption(t *testing.T) {
	a, b := pair33(t)
	stub := &stubPrimitive{
		k:     0,
		l:     3,
		alpha: []float64{1, 1, 1},
		beta:  []float64{0, 0, 0},
		fillU: func(u []float64, m int) {
			identityInto(u, m)
			u[1] = 1e-3 // inside 1e-2, outside the 1e-5 default
		},
	}

	_, err := gsvd.SolveDense(a, b, gsvd.WithPrimitive[float64](stub))
	assert.ErrorIs(t, err, gsvd.ErrInternalInconsistency, "default tolerance must reject")

	res, err := gsvd.SolveDense(a, b,
		gsvd.WithPrimitive[float64](stub),
		gsvd.WithOrthoTol[float64](1e-2))
	require.NoError(t, err, "loosened tolerance must accept")
	assert.Len(t, res.S1, 3)
}
