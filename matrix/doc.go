// Package matrix provides the input representations consumed by the
// randomized GSVD engine: a row-major dense matrix and a compressed sparse
// row (CSR) matrix, both generic over the two supported scalar widths.
//
// The matrix package provides:
//
//   - Dense[T] — flat, row-major storage with O(1) element access, the
//     working representation for reduced problems and orthonormal bases.
//   - CSR[T] — Values/ColIndex/RowPtr storage for large sparse inputs
//     (typically graph adjacency/proximity matrices).
//   - Handle[T] — the closed variant both implement, exposing uniform
//     Project (basis projection Qᵀ·M), MulDense, TMulDense and Transpose
//     with identical output-shape guarantees per variant.
//
// Handles are immutable views from the engine's perspective: no engine
// stage writes through a Handle, so one pair of inputs may serve several
// concurrent solves.
package matrix
