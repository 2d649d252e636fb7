// Package gsvd: the dense GSVD kernel contract and its gonum-backed
// production implementation.

package gsvd

import (
	"gonum.org/v1/gonum/lapack"
	lapackgonum "gonum.org/v1/gonum/lapack/gonum"
)

// Primitive is the dense two-matrix GSVD kernel contract, bit-compatible
// with LAPACK xGGSVD3 called through a row-major interface:
//
//   - a (m×n, lda ≥ n) and b (p×n, ldb ≥ n) are overwritten in place with
//     the triangular factor — they must be exclusive scratch, never shared
//     across concurrent calls;
//   - u (m×m, ldu ≥ m) and v (p×p, ldv ≥ p) receive the left orthogonal
//     factors (always computed here);
//   - the common right factor Q is never computed (job flag "N"), but q and
//     ldq ≥ n must still satisfy the kernel's minimum-size precondition;
//   - alpha and beta (length n) receive the cosine/sine coefficients,
//     iwork (length n) the sorting permutation;
//   - info semantics: 0 success, 1 the iterative procedure failed to
//     converge, -i argument i had an illegal value. Anything else is
//     outside the kernel's documented contract.
//
// The interface exists so tests can substitute failing kernels and so a
// cgo/accelerated backend can drop in without touching the solver.
type Primitive interface {
	GGSVD3(m, n, p int,
		a []float64, lda int,
		b []float64, ldb int,
		alpha, beta []float64,
		u []float64, ldu int,
		v []float64, ldv int,
		q []float64, ldq int,
		iwork []int) (k, l, info int)
}

// lapackPrimitive backs Primitive with gonum's pure-Go Dggsvd3, including
// the standard workspace query. gonum reports illegal arguments by
// panicking rather than via negative info, so this implementation only
// ever returns 0 or 1; the solver validates its own argument layout before
// calling.
type lapackPrimitive struct{}

// compile-time contract check
var _ Primitive = lapackPrimitive{}

func (lapackPrimitive) GGSVD3(m, n, p int,
	a []float64, lda int,
	b []float64, ldb int,
	alpha, beta []float64,
	u []float64, ldu int,
	v []float64, ldv int,
	q []float64, ldq int,
	iwork []int) (k, l, info int) {
	var impl lapackgonum.Implementation

	// Workspace query, then the real call.
	var query [1]float64
	impl.Dggsvd3(lapack.GSVDU, lapack.GSVDV, lapack.GSVDNone, m, n, p,
		a, lda, b, ldb, alpha, beta, u, ldu, v, ldv, q, ldq,
		query[:], -1, iwork)
	work := make([]float64, int(query[0]))
	k, l, ok := impl.Dggsvd3(lapack.GSVDU, lapack.GSVDV, lapack.GSVDNone, m, n, p,
		a, lda, b, ldb, alpha, beta, u, ldu, v, ldv, q, ldq,
		work, len(work), iwork)
	if !ok {
		return k, l, 1
	}

	return k, l, 0
}
