// Package approx: the range-approximator contract and its default
// randomized implementation.
//
// Algorithm outline (rank mode, Halko–Martinsson–Tropp algo 4.4):
//  1. Draw a Gaussian sketch Ω (n×l) and form Y = M·Ω.
//  2. Orthonormalize Y into Q via Householder QR.
//  3. Power iterations: Q ← orth(M·(Mᵀ·Q)), repeated nbIter times to damp
//     the spectral tail.
//
// Precision mode (adaptive blocked variant, algo 4.2): draw probe blocks,
// project out the current basis, stop once the largest residual column norm
// falls under ε/(10·sqrt(2/π)) — the standard a-posteriori bound — or the
// rank cap is reached.

package approx

import (
	"math"
	"math/rand"

	lapackgonum "gonum.org/v1/gonum/lapack/gonum"

	"github.com/numgraph/randgsvd/matrix"
)

// DefaultSeed seeds approximators created by engines that were not given an
// explicit one. Any fixed value keeps runs reproducible.
const DefaultSeed int64 = 1

// Approximator produces an orthonormal basis approximating the column range
// of a matrix under a budget. The basis is present on success; ok=false
// reports failure with no further diagnostic — the caller owns attribution
// (which matrix failed) and error typing.
type Approximator[T matrix.Scalar] interface {
	Range(h matrix.Handle[T], b Budget) (q *matrix.Dense[T], ok bool)
}

// Randomized is the default Gaussian range finder. It is deterministic
// under its seed. A Randomized value must not be shared across goroutines:
// the underlying generator is not synchronized.
type Randomized[T matrix.Scalar] struct {
	rng *rand.Rand
}

// compile-time contract check
var _ Approximator[float64] = (*Randomized[float64])(nil)

// NewRandomized returns a Randomized approximator seeded with seed.
func NewRandomized[T matrix.Scalar](seed int64) *Randomized[T] {
	return &Randomized[T]{rng: rand.New(rand.NewSource(seed))}
}

// Range implements Approximator. A nil handle, an invalid budget, or a
// degenerate problem (no extractable direction) reports ok=false.
func (r *Randomized[T]) Range(h matrix.Handle[T], b Budget) (*matrix.Dense[T], bool) {
	if h == nil || b.Validate() != nil {
		return nil, false
	}
	switch b.Mode() {
	case Rank:
		return r.rankRange(h, b)
	case Precision:
		return r.precisionRange(h, b)
	}

	return nil, false
}

// rankRange runs the fixed-rank sketch with power iterations.
func (r *Randomized[T]) rankRange(h matrix.Handle[T], b Budget) (*matrix.Dense[T], bool) {
	m, n := h.Rows(), h.Cols()
	l := b.TargetRank()
	if m < l {
		l = m
	}
	if n < l {
		l = n
	}
	if l <= 0 {
		return nil, false
	}

	// Stage 1: sketch Y = M·Ω and orthonormalize.
	y, err := h.MulDense(r.gaussian(n, l))
	if err != nil {
		return nil, false
	}
	q, ok := qrOrthonormal(y)
	if !ok {
		return nil, false
	}

	// Stage 2: power iterations Q ← orth(M·(Mᵀ·Q)).
	for it := 0; it < b.PowerIters(); it++ {
		z, zerr := h.TMulDense(q)
		if zerr != nil {
			return nil, false
		}
		w, werr := h.MulDense(z)
		if werr != nil {
			return nil, false
		}
		if q, ok = qrOrthonormal(w); !ok {
			return nil, false
		}
	}

	return q, true
}

// precisionRange grows the basis in probe blocks until the residual
// estimate drops under the Halko bound or the rank cap is hit.
func (r *Randomized[T]) precisionRange(h matrix.Handle[T], b Budget) (*matrix.Dense[T], bool) {
	m, n := h.Rows(), h.Cols()
	rankCap := b.MaxRank()
	if m < rankCap {
		rankCap = m
	}
	if n < rankCap {
		rankCap = n
	}
	if rankCap <= 0 {
		return nil, false
	}
	threshold := b.Epsilon() / (10 * math.Sqrt(2/math.Pi))
	blk := b.BlockSize()

	basis := make([][]float64, 0, rankCap) // unit columns, length m each
	for len(basis) < rankCap {
		// Fresh probe block Y = M·Ω, widened to per-column buffers.
		y, err := h.MulDense(r.gaussian(n, blk))
		if err != nil {
			return nil, false
		}
		yf := matrix.Widen(y.Raw())

		appended := 0
		maxNorm := 0.0
		for t := 0; t < blk; t++ {
			col := make([]float64, m)
			for i := 0; i < m; i++ {
				col[i] = yf[i*blk+t]
			}
			// Two Gram–Schmidt passes against the accumulated basis keep the
			// block orthogonal despite cancellation.
			for pass := 0; pass < 2; pass++ {
				for _, qc := range basis {
					c := dot(qc, col)
					axpy(-c, qc, col)
				}
			}
			norm := math.Sqrt(dot(col, col))
			if norm > maxNorm {
				maxNorm = norm
			}
			if norm >= threshold && len(basis) < rankCap {
				scal(1/norm, col)
				basis = append(basis, col)
				appended++
			}
		}
		if maxNorm < threshold || appended == 0 {
			break // residual exhausted, or nothing left to extract
		}
	}
	if len(basis) == 0 {
		return nil, false
	}

	// Pack columns back into a row-major Dense[T].
	l := len(basis)
	qf := make([]float64, m*l)
	for t, col := range basis {
		for i := 0; i < m; i++ {
			qf[i*l+t] = col[i]
		}
	}
	q, err := matrix.NewDenseFromF64[T](m, l, qf)
	if err != nil {
		return nil, false
	}

	return q, true
}

// gaussian fills a rows×cols Dense with N(0,1) draws.
func (r *Randomized[T]) gaussian(rows, cols int) *matrix.Dense[T] {
	g, _ := matrix.NewDense[T](rows, cols)
	raw := g.Raw()
	for i := range raw {
		raw[i] = T(r.rng.NormFloat64())
	}

	return g
}

// qrOrthonormal replaces y (m×l, l ≤ m) with the thin Q factor of its
// Householder QR, computed in float64 via gonum's Dgeqrf/Dorgqr with the
// usual workspace query. Returns ok=false on a shape the factorization
// cannot orthonormalize or on non-finite output.
func qrOrthonormal[T matrix.Scalar](y *matrix.Dense[T]) (*matrix.Dense[T], bool) {
	m, l := y.Rows(), y.Cols()
	if l > m {
		return nil, false
	}
	var impl lapackgonum.Implementation
	a := matrix.Widen(y.Raw()) // exclusive scratch, lda = l
	tau := make([]float64, l)

	var query [1]float64
	impl.Dgeqrf(m, l, a, l, tau, query[:], -1)
	work := make([]float64, int(query[0]))
	impl.Dgeqrf(m, l, a, l, tau, work, len(work))

	impl.Dorgqr(m, l, l, a, l, tau, query[:], -1)
	if need := int(query[0]); need > len(work) {
		work = make([]float64, need)
	}
	impl.Dorgqr(m, l, l, a, l, tau, work, len(work))

	for _, v := range a {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, false
		}
	}
	q, err := matrix.NewDenseFromF64[T](m, l, a)
	if err != nil {
		return nil, false
	}

	return q, true
}

// dot returns xᵀy for equal-length slices.
func dot(x, y []float64) float64 {
	var s float64
	for i, v := range x {
		s += v * y[i]
	}

	return s
}

// axpy computes y += a·x in place.
func axpy(a float64, x, y []float64) {
	for i, v := range x {
		y[i] += a * v
	}
}

// scal computes x *= a in place.
func scal(a float64, x []float64) {
	for i := range x {
		x[i] *= a
	}
}
