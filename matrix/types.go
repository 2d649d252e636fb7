// Package matrix: domain types shared by the dense and CSR variants.
// This file intentionally contains ONLY the scalar constraint and the
// Handle variant interface. Errors live in errors.go per the package
// conventions.

package matrix

// Scalar is the sealed set of element types the engine supports. The dense
// GSVD kernel only exists for these two widths; there is deliberately no
// generic numeric fallback, so any other element type is rejected at
// compile time.
type Scalar interface {
	~float32 | ~float64
}

// Handle is the closed variant over the two matrix representations.
// It is the uniform read contract consumed by range approximation and by
// the reduced-problem builder. Exactly two implementations exist, Dense[T]
// and CSR[T]; the unexported marker keeps the set closed.
//
// All methods treat the receiver as immutable.
type Handle[T Scalar] interface {
	// Rows returns the number of rows. Complexity: O(1).
	Rows() int

	// Cols returns the number of columns. Complexity: O(1).
	Cols() int

	// Project computes Qᵀ·M for an orthonormal basis q (Rows()×l) and the
	// receiver M (Rows()×Cols()), returning an l×Cols() dense matrix.
	// The CSR variant never materializes the dense transpose.
	// Returns ErrDimensionMismatch when q.Rows() != Rows().
	// Complexity: O(r·c·l) dense, O(nnz·l) CSR.
	Project(q *Dense[T]) (*Dense[T], error)

	// MulDense computes M·X for X (Cols()×l), returning Rows()×l.
	// Returns ErrDimensionMismatch when x.Rows() != Cols().
	MulDense(x *Dense[T]) (*Dense[T], error)

	// TMulDense computes Mᵀ·X for X (Rows()×l), returning Cols()×l.
	// Returns ErrDimensionMismatch when x.Rows() != Rows().
	TMulDense(x *Dense[T]) (*Dense[T], error)

	// Transpose returns the transposed matrix as a new Handle of the same
	// variant. The receiver is unchanged. Complexity: O(r·c) dense,
	// O(nnz) CSR.
	Transpose() Handle[T]

	// handle marks the implementations; the variant set is closed.
	handle()
}
