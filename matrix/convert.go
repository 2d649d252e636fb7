// Package matrix: precision conversion between the supported scalar widths
// and the float64 buffers consumed by the LAPACK-style kernels. The Scalar
// constraint seals the supported set at compile time, so these helpers need
// no runtime dispatch: a third width simply cannot instantiate them.

package matrix

// Widen copies src into a fresh float64 slice. The result is always a new
// allocation, so callers can hand it to an in-place kernel as exclusive
// scratch without aliasing the source matrix.
func Widen[T Scalar](src []T) []float64 {
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = float64(v)
	}

	return out
}

// Narrow copies src into a fresh slice of the target width. Values that
// overflow float32 become ±Inf per IEEE-754 conversion rules; kernels in
// this module only narrow orthogonal factors and cosine/sine coefficients,
// all bounded by the input magnitudes.
func Narrow[T Scalar](src []float64) []T {
	out := make([]T, len(src))
	for i, v := range src {
		out[i] = T(v)
	}

	return out
}

// NewDenseFromF64 builds an r×c Dense[T] from a row-major float64 buffer,
// narrowing each element. len(data) must be r*c.
func NewDenseFromF64[T Scalar](rows, cols int, data []float64) (*Dense[T], error) {
	if rows <= 0 || cols <= 0 || len(data) != rows*cols {
		return nil, denseErrorf("NewFromF64", ErrBadShape)
	}

	return &Dense[T]{r: rows, c: cols, data: Narrow[T](data)}, nil
}
