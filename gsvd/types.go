// Package gsvd: public result and transform types, plus the raw kernel
// output captured between the solver and the decoder.

package gsvd

import "github.com/numgraph/randgsvd/matrix"

// Transform describes an optional per-matrix adjustment applied
// conceptually before solving. It lets a caller keep one matrix pair
// stored in a fixed orientation yet solve the transposed problem (the
// Hope embedding formulates inverse(Mg)·Ml this way) without reallocating
// the stored pair.
//
// Scale multiplies the matrix; Transpose solves for Mᵀ instead of M.
// Transposition is applied to the handle before range approximation;
// the scale factor is folded into the reduced matrix just before the
// kernel, where it is cheapest (Qᵀ(αM) = α(QᵀM)).
type Transform struct {
	Scale     float64
	Transpose bool
}

// IdentityTransform returns the no-op transform (Scale 1, no transpose).
func IdentityTransform() Transform { return Transform{Scale: 1} }

// identity reports whether the transform changes nothing.
func (t Transform) identity() bool { return t.Scale == 1 && !t.Transpose }

// Result is the decoded, validated GSVD output for a reduced pair
// A (m×n) and B (p×n):
//
//	Uᵀ·A·X = Σ₁·(0 R),   Vᵀ·B·X = Σ₂·(0 R)
//
// with U, V orthogonal and Σ₁, Σ₂ the diagonal sequences S1, S2. The
// common right factor X is never computed. U and V are stored exactly as
// returned by the kernel (m×m and p×p, not truncated to rank); callers
// needing only the first r columns slice them explicitly.
type Result[T matrix.Scalar] struct {
	// U holds the left orthogonal factor of the first matrix (m×m).
	U *matrix.Dense[T]

	// V holds the left orthogonal factor of the second matrix (p×p).
	V *matrix.Dense[T]

	// S1 holds the cosine diagonal: alpha over the informative index
	// range [k, min(m, k+l)). Entries lie in [0, 1].
	S1 []T

	// S2 holds the matching sine diagonal: S1[i]²+S2[i]² ≈ 1.
	S2 []T

	// K and L are the kernel's rank-partition integers; together with the
	// reduced dimensions they locate S1/S2 inside the full alpha/beta
	// vectors (indices below K carry alpha=1, beta=0).
	K, L int
}

// rawOutput captures the unmodified kernel outputs. The buffers are owned
// by exactly one solve call; the decoder consumes them without copying U
// and V a second time.
type rawOutput struct {
	m, n, p int       // reduced problem dimensions: A is m×n, B is p×n
	k, l    int       // rank partition
	u       []float64 // m×m row-major
	v       []float64 // p×p row-major
	alpha   []float64 // length n
	beta    []float64 // length n
}
