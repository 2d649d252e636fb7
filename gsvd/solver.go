// Package gsvd: the precision-dispatching dense solver sitting between the
// reduced pair and the raw kernel.

package gsvd

import (
	"fmt"

	"github.com/numgraph/randgsvd/matrix"
)

// solveReduced runs the dense GSVD kernel on the reduced pair a (m×n) and
// b (p×n) and captures the raw outputs.
//
// Precision handling: the kernel exists only for float64, and the Scalar
// constraint seals the element set to float32|float64, so both widths
// funnel through one float64 path — matrix.Widen copies the inputs into
// fresh scratch (the kernel overwrites a and b with the triangular
// factor), and the decoder narrows factors back to T at the end. Every
// buffer below is owned by this single call, which is what makes
// concurrent solves safe.
//
// Stage 1 (Validate): shared column count (kernel precondition).
// Stage 2 (Prepare): exclusive float64 scratch, factor and coefficient
// buffers, leading dimensions for the row-major layout (lda=ldb=ldq=n,
// ldu=m, ldv=p — Q is not computed but its minimum size still holds).
// Stage 3 (Execute): kernel call; map info per the documented codes.
// Complexity: O(max(m,p)·n²) kernel time, O(m²+p²+n²) scratch.
func solveReduced[T matrix.Scalar](prim Primitive, a, b *matrix.Dense[T]) (*rawOutput, error) {
	m, n := a.Rows(), a.Cols()
	p := b.Rows()
	if b.Cols() != n {
		// Can only arise from an inconsistent reduction upstream.
		return nil, gsvdErrorf("solveReduced", ErrDimensionMismatch)
	}

	raw := &rawOutput{
		m:     m,
		n:     n,
		p:     p,
		u:     make([]float64, m*m),
		v:     make([]float64, p*p),
		alpha: make([]float64, n),
		beta:  make([]float64, n),
	}
	af := matrix.Widen(a.Raw()) // overwritten in place by the kernel
	bf := matrix.Widen(b.Raw())
	q := make([]float64, n*n) // never computed, minimum size honored
	iwork := make([]int, n)

	var info int
	raw.k, raw.l, info = prim.GGSVD3(m, n, p,
		af, n, bf, n,
		raw.alpha, raw.beta,
		raw.u, m, raw.v, p, q, n,
		iwork)
	switch {
	case info == 0:
		// fall through to decoding
	case info == 1:
		return nil, gsvdErrorf("solveReduced", ErrNonConvergence)
	case info < 0:
		return nil, fmt.Errorf("solveReduced: argument %d: %w", -info, ErrInvalidArgument)
	default:
		return nil, fmt.Errorf("solveReduced: undocumented status %d: %w", info, ErrInternalInconsistency)
	}

	return raw, nil
}
