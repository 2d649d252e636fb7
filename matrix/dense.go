// Package matrix: Dense is a concrete, row-major implementation of the
// Handle variant, storing elements in a flat slice for performance and
// cache friendliness. It doubles as the output representation for reduced
// problems, orthonormal bases and GSVD factors.

package matrix

import (
	"fmt"
	"math"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, err error) error {
	return fmt.Errorf("Dense.%s: %w", method, err)
}

// Dense is a row-major matrix of T values.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense[T Scalar] struct {
	r, c int // number of rows and columns
	data []T // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros.
// Stage 1 (Validate): ensure rows and cols > 0.
// Stage 2 (Prepare): allocate flat backing slice.
// Stage 3 (Finalize): return new Dense or ErrBadShape.
// Complexity: O(r*c) time and memory.
func NewDense[T Scalar](rows, cols int) (*Dense[T], error) {
	// Validate dimensions
	if rows <= 0 || cols <= 0 {
		return nil, denseErrorf("New", ErrBadShape)
	}

	// Return initialized Dense over a fresh flat slice
	return &Dense[T]{r: rows, c: cols, data: make([]T, rows*cols)}, nil
}

// NewDenseFromRows creates a Dense matrix from a rectangular [][]T literal.
// Stage 1 (Validate): non-empty, rectangular, finite entries.
// Stage 2 (Execute): copy rows into flat storage.
// Complexity: O(r*c).
func NewDenseFromRows[T Scalar](rows [][]T) (*Dense[T], error) {
	// Validate outer shape
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, denseErrorf("NewFromRows", ErrBadShape)
	}
	r, c := len(rows), len(rows[0])
	m := &Dense[T]{r: r, c: c, data: make([]T, r*c)}
	for i, row := range rows {
		// Every row must have the same length
		if len(row) != c {
			return nil, denseErrorf("NewFromRows", ErrBadShape)
		}
		for j, v := range row {
			// Reject NaN/Inf at ingestion; kernels assume finite inputs
			if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, denseErrorf("NewFromRows", ErrNaNInf)
			}
			m.data[i*c+j] = v
		}
	}

	return m, nil
}

// Rows returns the number of rows in the matrix. Complexity: O(1).
func (m *Dense[T]) Rows() int { return m.r }

// Cols returns the number of columns in the matrix. Complexity: O(1).
func (m *Dense[T]) Cols() int { return m.c }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense[T]) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("Dense.At(%d,%d): %w", row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
// Returns ErrOutOfRange on invalid indices. Complexity: O(1).
func (m *Dense[T]) At(row, col int) (T, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
// Returns ErrOutOfRange on invalid indices. Complexity: O(1).
func (m *Dense[T]) Set(row, col int, v T) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Raw exposes the flat row-major backing slice. The slice is shared with
// the receiver: writes through it are visible to the matrix. The solver
// relies on this to hand exclusive per-call scratch copies to the dense
// kernel without an extra indexing layer.
func (m *Dense[T]) Raw() []T { return m.data }

// Clone returns a deep copy of the Dense matrix.
// Complexity: O(r*c) time and memory.
func (m *Dense[T]) Clone() *Dense[T] {
	cp := make([]T, len(m.data))
	copy(cp, m.data)

	return &Dense[T]{r: m.r, c: m.c, data: cp}
}

// Scale multiplies every element by alpha, in place.
// Complexity: O(r*c).
func (m *Dense[T]) Scale(alpha T) {
	for i := range m.data {
		m.data[i] *= alpha
	}
}

// Transpose returns a new Dense holding Mᵀ. Complexity: O(r*c).
func (m *Dense[T]) Transpose() Handle[T] {
	t := &Dense[T]{r: m.c, c: m.r, data: make([]T, len(m.data))}
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			t.data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return t
}

// Project computes Qᵀ·M (l×c) for an orthonormal basis q (r×l).
// Stage 1 (Validate): q non-nil, q.Rows() == m.Rows().
// Stage 2 (Execute): accumulate out[t][j] = Σ_i q[i][t]·m[i][j] with the
// i-outer loop order so both operands stream row-major.
// Complexity: O(r·c·l), Space O(l·c).
func (m *Dense[T]) Project(q *Dense[T]) (*Dense[T], error) {
	if q == nil {
		return nil, denseErrorf("Project", ErrNilMatrix)
	}
	if q.r != m.r {
		return nil, denseErrorf("Project", ErrDimensionMismatch)
	}
	l := q.c
	out := &Dense[T]{r: l, c: m.c, data: make([]T, l*m.c)}
	for i := 0; i < m.r; i++ { // stream both rows i of q and m
		qrow := q.data[i*l : (i+1)*l]
		mrow := m.data[i*m.c : (i+1)*m.c]
		for t := 0; t < l; t++ {
			qv := qrow[t]
			if qv == 0 {
				continue
			}
			orow := out.data[t*m.c : (t+1)*m.c]
			for j, mv := range mrow {
				orow[j] += qv * mv
			}
		}
	}

	return out, nil
}

// MulDense computes M·X (r×l) for X (c×l).
// Complexity: O(r·c·l).
func (m *Dense[T]) MulDense(x *Dense[T]) (*Dense[T], error) {
	if x == nil {
		return nil, denseErrorf("MulDense", ErrNilMatrix)
	}
	if x.r != m.c {
		return nil, denseErrorf("MulDense", ErrDimensionMismatch)
	}
	l := x.c
	out := &Dense[T]{r: m.r, c: l, data: make([]T, m.r*l)}
	for i := 0; i < m.r; i++ {
		mrow := m.data[i*m.c : (i+1)*m.c]
		orow := out.data[i*l : (i+1)*l]
		for kk, mv := range mrow {
			if mv == 0 {
				continue
			}
			xrow := x.data[kk*l : (kk+1)*l]
			for j, xv := range xrow {
				orow[j] += mv * xv
			}
		}
	}

	return out, nil
}

// TMulDense computes Mᵀ·X (c×l) for X (r×l), without materializing Mᵀ.
// Complexity: O(r·c·l).
func (m *Dense[T]) TMulDense(x *Dense[T]) (*Dense[T], error) {
	if x == nil {
		return nil, denseErrorf("TMulDense", ErrNilMatrix)
	}
	if x.r != m.r {
		return nil, denseErrorf("TMulDense", ErrDimensionMismatch)
	}
	l := x.c
	out := &Dense[T]{r: m.c, c: l, data: make([]T, m.c*l)}
	for i := 0; i < m.r; i++ { // row i contributes to every output row
		mrow := m.data[i*m.c : (i+1)*m.c]
		xrow := x.data[i*l : (i+1)*l]
		for kk, mv := range mrow {
			if mv == 0 {
				continue
			}
			orow := out.data[kk*l : (kk+1)*l]
			for j, xv := range xrow {
				orow[j] += mv * xv
			}
		}
	}

	return out, nil
}

// handle marks Dense as a member of the closed Handle variant.
func (m *Dense[T]) handle() {}

// String implements fmt.Stringer for easy debugging.
// Complexity: O(r*c) for string construction.
func (m *Dense[T]) String() string {
	var s string
	for i := 0; i < m.r; i++ {
		s += "["
		for j := 0; j < m.c; j++ {
			s += fmt.Sprintf("%g", float64(m.data[i*m.c+j]))
			if j < m.c-1 {
				s += ", "
			}
		}
		s += "]\n"
	}

	return s
}
