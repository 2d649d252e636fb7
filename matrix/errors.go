// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All constructors and kernels return these sentinels and tests
// check them via errors.Is. Public indexers never panic on user input.

package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (r<=0 or c<=0)
	// or when the provided backing data does not match the requested shape.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that a row or column index is outside valid
	// bounds. Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Project where q.Rows() != m.Rows(), or MulDense where
	// x.Rows() != m.Cols(). Inside the engine this can only arise from an
	// inconsistent approximator result, so callers treat it as a contract
	// violation rather than a data error.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required
	// (dense/CSR ingestion). Decomposition kernels assume finite inputs.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Handle or *Dense was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrBadTriplets indicates inconsistent triplet buffers (length mismatch
	// or an index outside the declared shape) during CSR ingestion.
	ErrBadTriplets = errors.New("matrix: invalid triplet buffers")
)
