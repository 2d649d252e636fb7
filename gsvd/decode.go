// Package gsvd: decoding of the raw kernel outputs into a validated
// Result. The decoding rules follow the LAPACK xGGSVD3 documentation for
// the rank partition (k, l):
//
//   - indices [0, k) carry alpha = 1, beta = 0 (not part of the result);
//   - if m−k−l ≥ 0 the informative range is [k, k+l);
//   - otherwise it is [k, m), with alpha = 0 / beta = 1 by convention on
//     [m, k+l) — those conventional entries are not materialized.

package gsvd

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/numgraph/randgsvd/matrix"
)

// coeffTol bounds |s1²+s2²−1| for every decoded coefficient pair. A larger
// deviation means the kernel broke its contract, not that the input was bad.
const coeffTol = 1e-5

// decode validates the raw outputs and packages the public result.
// orthoTol is the elementwise tolerance for the UᵀU ≈ I and VᵀV ≈ I checks.
// Every violation maps to ErrInternalInconsistency with the offending index
// in the wrapping message.
func decode[T matrix.Scalar](raw *rawOutput, orthoTol float64) (*Result[T], error) {
	m, n, k, l := raw.m, raw.n, raw.k, raw.l
	if k < 0 || l < 0 || k+l > n {
		return nil, fmt.Errorf("decode: rank partition k=%d l=%d n=%d: %w",
			k, l, n, ErrInternalInconsistency)
	}

	// Select the informative coefficient range.
	lo, hi := k, k+l
	if m-k-l < 0 {
		hi = m
	}
	if hi < lo {
		return nil, fmt.Errorf("decode: empty coefficient range k=%d m=%d l=%d: %w",
			k, m, l, ErrInternalInconsistency)
	}
	s1 := raw.alpha[lo:hi]
	s2 := raw.beta[lo:hi]

	// Cosine/sine identity on every decoded pair.
	for i := range s1 {
		if d := math.Abs(s1[i]*s1[i] + s2[i]*s2[i] - 1); d > coeffTol {
			return nil, fmt.Errorf("decode: s1²+s2² off by %.3e at %d: %w",
				d, lo+i, ErrInternalInconsistency)
		}
	}

	// The kernel returns alpha sorted non-increasing on [k, min(m, k+l));
	// a violation means the ordering assumption no longer holds.
	for i := lo + 1; i < hi; i++ {
		if raw.alpha[i] > raw.alpha[i-1] {
			return nil, fmt.Errorf("decode: alpha increases at %d (%g > %g): %w",
				i, raw.alpha[i], raw.alpha[i-1], ErrInternalInconsistency)
		}
	}

	// Both factors must be orthogonal within tolerance.
	if err := checkOrthogonal(raw.u, raw.m, orthoTol); err != nil {
		return nil, fmt.Errorf("decode: U: %w", err)
	}
	if err := checkOrthogonal(raw.v, raw.p, orthoTol); err != nil {
		return nil, fmt.Errorf("decode: V: %w", err)
	}

	u, err := matrix.NewDenseFromF64[T](raw.m, raw.m, raw.u)
	if err != nil {
		return nil, gsvdErrorf("decode", err)
	}
	v, err := matrix.NewDenseFromF64[T](raw.p, raw.p, raw.v)
	if err != nil {
		return nil, gsvdErrorf("decode", err)
	}

	return &Result[T]{
		U:  u,
		V:  v,
		S1: matrix.Narrow[T](s1),
		S2: matrix.Narrow[T](s2),
		K:  k,
		L:  l,
	}, nil
}

// checkOrthogonal verifies GᵀG ≈ I for the dim×dim row-major factor g,
// within tol on the diagonal and off-diagonal alike. The Gram matrix is
// formed with one BLAS gemm; the scan order is deterministic.
func checkOrthogonal(g []float64, dim int, tol float64) error {
	if dim == 0 {
		return nil
	}
	gm := blas64.General{Rows: dim, Cols: dim, Stride: dim, Data: g}
	id := blas64.General{Rows: dim, Cols: dim, Stride: dim, Data: make([]float64, dim*dim)}
	blas64.Gemm(blas.Trans, blas.NoTrans, 1, gm, gm, 0, id)
	for i := 0; i < dim; i++ {
		for j := 0; j <= i; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if d := math.Abs(id.Data[i*dim+j] - want); d > tol {
				return fmt.Errorf("entry (%d,%d) off by %.3e: %w",
					i, j, d, ErrInternalInconsistency)
			}
		}
	}

	return nil
}
