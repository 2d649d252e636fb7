package gsvd_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numgraph/randgsvd/approx"
	"github.com/numgraph/randgsvd/gsvd"
	"github.com/numgraph/randgsvd/matrix"
)

// stubApprox counts Range calls and fails on a configured call index;
// otherwise it delegates to the real randomized finder.
type stubApprox struct {
	calls  int
	failOn int // 1-based call index to fail on; 0 = never
	real   *approx.Randomized[float64]
}

func newStubApprox(failOn int) *stubApprox {
	return &stubApprox{failOn: failOn, real: approx.NewRandomized[float64](approx.DefaultSeed)}
}

func (s *stubApprox) Range(h matrix.Handle[float64], b approx.Budget) (*matrix.Dense[float64], bool) {
	s.calls++
	if s.calls == s.failOn {
		return nil, false
	}

	return s.real.Range(h, b)
}

// fixturePair returns the 5×3 / 3×3 reference pair (column-progression A,
// magic-square B) used across the solve tests.
func fixturePair(t *testing.T) (*matrix.Dense[float64], *matrix.Dense[float64]) {
	t.Helper()
	a, err := matrix.NewDenseFromRows([][]float64{
		{1, 6, 11}, {2, 7, 12}, {3, 8, 13}, {4, 9, 14}, {5, 10, 15},
	})
	require.NoError(t, err)
	b, err := matrix.NewDenseFromRows([][]float64{{8, 1, 6}, {3, 5, 7}, {4, 9, 2}})
	require.NoError(t, err)

	return a, b
}

// assertResultInvariants checks the contract every successful solve must
// honor: paired coefficient lengths, values in [0,1], square factors.
func assertResultInvariants(t *testing.T, res *gsvd.Result[float64]) {
	t.Helper()
	require.NotNil(t, res)
	require.Equal(t, len(res.S1), len(res.S2), "coefficient sequences must pair up")
	for i := range res.S1 {
		assert.GreaterOrEqual(t, res.S1[i], 0.0)
		assert.LessOrEqual(t, res.S1[i], 1.0+1e-12)
		assert.GreaterOrEqual(t, res.S2[i], 0.0)
		assert.LessOrEqual(t, res.S2[i], 1.0+1e-12)
	}
	assert.Equal(t, res.U.Rows(), res.U.Cols(), "U must be square")
	assert.Equal(t, res.V.Rows(), res.V.Cols(), "V must be square")
	assert.GreaterOrEqual(t, res.K, 0)
	assert.GreaterOrEqual(t, res.L, 0)
}

func TestNewProblem_NilHandle(t *testing.T) {
	a, _ := fixturePair(t)

	_, err := gsvd.NewProblem[float64](nil, a, approx.RankBudget(2, 0))
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
	_, err = gsvd.NewProblem[float64](a, nil, approx.RankBudget(2, 0))
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}

func TestNewProblem_ColumnMismatch(t *testing.T) {
	a, _ := fixturePair(t)
	b, err := matrix.NewDense[float64](3, 4)
	require.NoError(t, err)
	apx := newStubApprox(0)

	_, err = gsvd.NewProblem[float64](a, b, approx.RankBudget(2, 0),
		gsvd.WithApproximator[float64](apx))
	assert.ErrorIs(t, err, gsvd.ErrDimensionMismatch)
	assert.Contains(t, err.Error(), "3 vs 4")
	assert.Zero(t, apx.calls, "failed construction must do no approximation work")
}

func TestNewProblem_TransposeFixesMismatch(t *testing.T) {
	// a is 5×3 and b is 3×5: incompatible as-is, compatible once b is
	// solved transposed.
	a, _ := fixturePair(t)
	b, err := matrix.NewDense[float64](3, 5)
	require.NoError(t, err)

	_, err = gsvd.NewProblem[float64](a, b, approx.RankBudget(2, 0))
	assert.ErrorIs(t, err, gsvd.ErrDimensionMismatch)

	_, err = gsvd.NewProblem[float64](a, b, approx.RankBudget(2, 0),
		gsvd.WithTransform2[float64](gsvd.Transform{Scale: 1, Transpose: true}))
	assert.NoError(t, err, "transpose must be applied before the column check")
}

func TestNewProblem_BadBudget(t *testing.T) {
	a, b := fixturePair(t)

	_, err := gsvd.NewProblem[float64](a, b, approx.Budget{})
	assert.ErrorIs(t, err, approx.ErrBadBudget)
}

// TestSolve_ApproxFailureAttribution names the failing matrix and never
// reaches the dense kernel.
func TestSolve_ApproxFailureAttribution(t *testing.T) {
	for _, tc := range []struct {
		failOn int
		want   string
	}{
		{failOn: 1, want: "matrix 1"},
		{failOn: 2, want: "matrix 2"},
	} {
		a, b := fixturePair(t)
		apx := newStubApprox(tc.failOn)
		prim := &stubPrimitive{}
		pb, err := gsvd.NewProblem[float64](a, b, approx.RankBudget(3, 0),
			gsvd.WithApproximator[float64](apx),
			gsvd.WithPrimitive[float64](prim))
		require.NoError(t, err)

		_, err = pb.Solve()
		assert.ErrorIs(t, err, gsvd.ErrRangeApproxFailed)
		assert.Contains(t, err.Error(), tc.want)
		assert.Zero(t, prim.calls, "kernel must not run after a failed approximation")
	}
}

// TestSolve_RankPipeline runs the full randomized pipeline end to end on
// the dense fixture pair.
func TestSolve_RankPipeline(t *testing.T) {
	a, b := fixturePair(t)
	pb, err := gsvd.NewProblem[float64](a, b, approx.RankBudget(3, 2))
	require.NoError(t, err)

	res, err := pb.Solve()
	require.NoError(t, err)
	assertResultInvariants(t, res)
	assert.NotEmpty(t, res.S1)
}

// TestSolve_PrecisionPipeline exercises the adaptive budget on the same pair.
func TestSolve_PrecisionPipeline(t *testing.T) {
	a, b := fixturePair(t)
	pb, err := gsvd.NewProblem[float64](a, b, approx.PrecisionBudget(0.5, 2, 3))
	require.NoError(t, err)

	res, err := pb.Solve()
	require.NoError(t, err)
	assertResultInvariants(t, res)
}

// TestSolve_CSRMatchesDense feeds the same values through sparse handles
// and expects the same coefficients up to summation-order noise.
func TestSolve_CSRMatchesDense(t *testing.T) {
	a, b := fixturePair(t)
	sa, err := matrix.NewCSRFromDense(a)
	require.NoError(t, err)
	sb, err := matrix.NewCSRFromDense(b)
	require.NoError(t, err)

	pbDense, err := gsvd.NewProblem[float64](a, b, approx.RankBudget(3, 2))
	require.NoError(t, err)
	dres, err := pbDense.Solve()
	require.NoError(t, err)

	pbSparse, err := gsvd.NewProblem[float64](sa, sb, approx.RankBudget(3, 2))
	require.NoError(t, err)
	sres, err := pbSparse.Solve()
	require.NoError(t, err)

	require.Equal(t, len(dres.S1), len(sres.S1))
	for i := range dres.S1 {
		assert.InDelta(t, dres.S1[i], sres.S1[i], 1e-8)
		assert.InDelta(t, dres.S2[i], sres.S2[i], 1e-8)
	}
}

// TestSolve_Deterministic repeats a solve and expects bitwise-equal
// coefficients (fixed default seed).
func TestSolve_Deterministic(t *testing.T) {
	run := func() *gsvd.Result[float64] {
		a, b := fixturePair(t)
		pb, err := gsvd.NewProblem[float64](a, b, approx.RankBudget(3, 2))
		require.NoError(t, err)
		res, err := pb.Solve()
		require.NoError(t, err)

		return res
	}

	r1, r2 := run(), run()
	assert.Equal(t, r1.S1, r2.S1)
	assert.Equal(t, r1.S2, r2.S2)
	assert.Equal(t, r1.K, r2.K)
	assert.Equal(t, r1.L, r2.L)
}

// TestSolve_LoggerDiagnostics routes the debug events into a buffer.
func TestSolve_LoggerDiagnostics(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	a, b := fixturePair(t)
	pb, err := gsvd.NewProblem[float64](a, b, approx.RankBudget(3, 2),
		gsvd.WithLogger[float64](log))
	require.NoError(t, err)
	_, err = pb.Solve()
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "range bases computed")
	assert.Contains(t, out, "dense gsvd kernel returned")
}

// TestSolveDense_Fixture solves the reference 5×3 / 3×3 pair directly and
// checks the documented expectations: three coefficient pairs, orthogonal
// untruncated factors, exact identity per pair.
func TestSolveDense_Fixture(t *testing.T) {
	a, b := fixturePair(t)

	res, err := gsvd.SolveDense(a, b)
	require.NoError(t, err)
	assertResultInvariants(t, res)
	assert.Len(t, res.S1, 3)
	assert.Equal(t, 5, res.U.Rows())
	assert.Equal(t, 3, res.V.Rows())
	for i := range res.S1 {
		assert.InDelta(t, 1.0, res.S1[i]*res.S1[i]+res.S2[i]*res.S2[i], 1e-10)
	}
	// Non-increasing alpha inside the decoded range.
	for i := 1; i < len(res.S1); i++ {
		assert.LessOrEqual(t, res.S1[i], res.S1[i-1])
	}
}

// TestSolveDense_WideFixture covers the m−k−l < 0 layout with the
// wider-than-tall reference pair (2×6 against 3×6).
func TestSolveDense_WideFixture(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float64{
		{1, 2, 3, 3, 2, 1},
		{4, 5, 6, 7, 8, 8},
	})
	require.NoError(t, err)
	b, err := matrix.NewDenseFromRows([][]float64{
		{1, 2, 3, 4, 5, 6},
		{7, 8, 9, 10, 11, 12},
		{13, 14, 15, 16, 17, 18},
	})
	require.NoError(t, err)

	res, err := gsvd.SolveDense(a, b)
	require.NoError(t, err)
	assertResultInvariants(t, res)
	assert.Equal(t, 2, res.U.Rows())
	assert.Equal(t, 3, res.V.Rows())

	// With m = 2 rows the decoded range is [K, min(m, K+L)).
	wantLen := res.K + res.L
	if res.U.Rows() < wantLen {
		wantLen = res.U.Rows()
	}
	wantLen -= res.K
	if wantLen < 0 {
		wantLen = 0
	}
	assert.Len(t, res.S1, wantLen)
}

// TestSolveDense_TransposeTransform checks that WithTransform1 transpose
// matches an explicitly pre-transposed solve.
func TestSolveDense_TransposeTransform(t *testing.T) {
	a, b := fixturePair(t)
	at := a.Transpose().(*matrix.Dense[float64]) // 3×5 view materialized

	direct, err := gsvd.SolveDense(a, b)
	require.NoError(t, err)
	viaOpt, err := gsvd.SolveDense(at, b,
		gsvd.WithTransform1[float64](gsvd.Transform{Scale: 1, Transpose: true}))
	require.NoError(t, err)

	assert.Equal(t, direct.S1, viaOpt.S1)
	assert.Equal(t, direct.S2, viaOpt.S2)
	assert.Equal(t, direct.K, viaOpt.K)
	assert.Equal(t, direct.L, viaOpt.L)
}

// TestSolveDense_UniformScaleInvariance scales both inputs by the same
// factor; the generalized coefficients must not move.
func TestSolveDense_UniformScaleInvariance(t *testing.T) {
	a, b := fixturePair(t)

	plain, err := gsvd.SolveDense(a, b)
	require.NoError(t, err)
	scaled, err := gsvd.SolveDense(a, b,
		gsvd.WithTransform1[float64](gsvd.Transform{Scale: 2}),
		gsvd.WithTransform2[float64](gsvd.Transform{Scale: 2}))
	require.NoError(t, err)

	require.Equal(t, len(plain.S1), len(scaled.S1))
	for i := range plain.S1 {
		assert.InDelta(t, plain.S1[i], scaled.S1[i], 1e-12)
		assert.InDelta(t, plain.S2[i], scaled.S2[i], 1e-12)
	}
}

// TestSolveDense_Float32 instantiates the whole path at single precision.
func TestSolveDense_Float32(t *testing.T) {
	a, err := matrix.NewDenseFromRows([][]float32{
		{1, 6, 11}, {2, 7, 12}, {3, 8, 13}, {4, 9, 14}, {5, 10, 15},
	})
	require.NoError(t, err)
	b, err := matrix.NewDenseFromRows([][]float32{{8, 1, 6}, {3, 5, 7}, {4, 9, 2}})
	require.NoError(t, err)

	res, err := gsvd.SolveDense(a, b)
	require.NoError(t, err)
	require.Len(t, res.S1, 3)
	for i := range res.S1 {
		assert.InDelta(t, 1.0, float64(res.S1[i]*res.S1[i]+res.S2[i]*res.S2[i]), 1e-5)
	}
}

// TestSolve_ConcurrentProblems solves independent problems in parallel;
// each owns its configuration and scratch space.
func TestSolve_ConcurrentProblems(t *testing.T) {
	a, b := fixturePair(t)
	const workers = 8

	errs := make(chan error, workers)
	for w := 0; w < workers; w++ {
		go func() {
			pb, err := gsvd.NewProblem[float64](a, b, approx.RankBudget(3, 2))
			if err != nil {
				errs <- err

				return
			}
			_, err = pb.Solve()
			errs <- err
		}()
	}
	for w := 0; w < workers; w++ {
		assert.NoError(t, <-errs)
	}
}
