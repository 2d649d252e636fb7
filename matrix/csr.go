// Package matrix: CSR is the compressed-sparse-row implementation of the
// Handle variant, intended for the large sparse proximity/adjacency
// matrices produced by graph pipelines. Projection onto a dense basis is
// implemented as a "transpose-of-dense times sparse" product that walks the
// nonzeros once and never materializes the dense transpose.

package matrix

import (
	"fmt"
	"math"
)

// csrErrorf wraps an underlying error with CSR method context.
func csrErrorf(method string, err error) error {
	return fmt.Errorf("CSR.%s: %w", method, err)
}

// CSR is a sparse matrix in compressed sparse row format.
// For row i, the nonzeros live at positions rowPtr[i]..rowPtr[i+1]-1 of
// values/colIndex. len(rowPtr) == rows+1 always holds.
type CSR[T Scalar] struct {
	rows, cols int
	values     []T   // nonzero values
	colIndex   []int // column index per value
	rowPtr     []int // row offsets into values/colIndex
}

// NewCSRFromDense compresses a dense matrix, dropping exact zeros.
// Complexity: O(r*c) time, O(nnz) memory for the result.
func NewCSRFromDense[T Scalar](d *Dense[T]) (*CSR[T], error) {
	if d == nil {
		return nil, csrErrorf("NewFromDense", ErrNilMatrix)
	}
	s := &CSR[T]{rows: d.r, cols: d.c, rowPtr: make([]int, d.r+1)}
	for i := 0; i < d.r; i++ {
		for j := 0; j < d.c; j++ {
			if v := d.data[i*d.c+j]; v != 0 {
				s.values = append(s.values, v)
				s.colIndex = append(s.colIndex, j)
			}
		}
		s.rowPtr[i+1] = len(s.values)
	}

	return s, nil
}

// NewCSRFromTriplets builds a CSR matrix from parallel (row, col, value)
// buffers, the format graph loaders hand over. Duplicate coordinates
// accumulate. Zero values are kept out of the structure.
// Stage 1 (Validate): shape, buffer lengths, index bounds, finite values.
// Stage 2 (Execute): counting pass over rows, then placement pass.
// Complexity: O(nnz + r).
func NewCSRFromTriplets[T Scalar](rows, cols int, ri, ci []int, vals []T) (*CSR[T], error) {
	if rows <= 0 || cols <= 0 {
		return nil, csrErrorf("NewFromTriplets", ErrBadShape)
	}
	if len(ri) != len(ci) || len(ri) != len(vals) {
		return nil, csrErrorf("NewFromTriplets", ErrBadTriplets)
	}
	for t, v := range vals {
		if ri[t] < 0 || ri[t] >= rows || ci[t] < 0 || ci[t] >= cols {
			return nil, csrErrorf("NewFromTriplets", ErrBadTriplets)
		}
		if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, csrErrorf("NewFromTriplets", ErrNaNInf)
		}
	}

	// Counting pass: nonzeros per row (zeros are skipped entirely).
	s := &CSR[T]{rows: rows, cols: cols, rowPtr: make([]int, rows+1)}
	for t, v := range vals {
		if v != 0 {
			s.rowPtr[ri[t]+1]++
		}
	}
	for i := 0; i < rows; i++ {
		s.rowPtr[i+1] += s.rowPtr[i]
	}
	nnz := s.rowPtr[rows]
	s.values = make([]T, nnz)
	s.colIndex = make([]int, nnz)

	// Placement pass with a moving cursor per row.
	next := make([]int, rows)
	copy(next, s.rowPtr[:rows])
	for t, v := range vals {
		if v == 0 {
			continue
		}
		pos := next[ri[t]]
		s.values[pos] = v
		s.colIndex[pos] = ci[t]
		next[ri[t]]++
	}
	s.accumulateDuplicates()

	return s, nil
}

// accumulateDuplicates merges repeated (row, col) coordinates in place.
// Rows are short in practice; a per-row linear merge keeps this simple.
func (s *CSR[T]) accumulateDuplicates() {
	w := 0 // write cursor over the compacted buffers
	newPtr := make([]int, s.rows+1)
	for i := 0; i < s.rows; i++ {
		start := w
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			j, v := s.colIndex[p], s.values[p]
			merged := false
			for q := start; q < w; q++ {
				if s.colIndex[q] == j {
					s.values[q] += v
					merged = true

					break
				}
			}
			if !merged {
				s.colIndex[w], s.values[w] = j, v
				w++
			}
		}
		newPtr[i+1] = w
	}
	s.rowPtr = newPtr
	s.values = s.values[:w]
	s.colIndex = s.colIndex[:w]
}

// Rows returns the number of rows. Complexity: O(1).
func (s *CSR[T]) Rows() int { return s.rows }

// Cols returns the number of columns. Complexity: O(1).
func (s *CSR[T]) Cols() int { return s.cols }

// NNZ returns the number of stored nonzeros. Complexity: O(1).
func (s *CSR[T]) NNZ() int { return len(s.values) }

// At retrieves the element at (row, col); absent coordinates read as zero.
// Complexity: O(nnz(row)).
func (s *CSR[T]) At(row, col int) (T, error) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return 0, fmt.Errorf("CSR.At(%d,%d): %w", row, col, ErrOutOfRange)
	}
	for p := s.rowPtr[row]; p < s.rowPtr[row+1]; p++ {
		if s.colIndex[p] == col {
			return s.values[p], nil
		}
	}

	return 0, nil
}

// ToDense expands the matrix into row-major dense form.
// Complexity: O(r*c) memory — intended for tests and small matrices.
func (s *CSR[T]) ToDense() *Dense[T] {
	d := &Dense[T]{r: s.rows, c: s.cols, data: make([]T, s.rows*s.cols)}
	for i := 0; i < s.rows; i++ {
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			d.data[i*s.cols+s.colIndex[p]] = s.values[p]
		}
	}

	return d
}

// Transpose returns Mᵀ as a new CSR via a counting sort over columns.
// Complexity: O(nnz + r + c).
func (s *CSR[T]) Transpose() Handle[T] {
	t := &CSR[T]{
		rows:     s.cols,
		cols:     s.rows,
		values:   make([]T, len(s.values)),
		colIndex: make([]int, len(s.colIndex)),
		rowPtr:   make([]int, s.cols+1),
	}
	// Count nonzeros per column of the receiver (= rows of the transpose).
	for _, j := range s.colIndex {
		t.rowPtr[j+1]++
	}
	for j := 0; j < s.cols; j++ {
		t.rowPtr[j+1] += t.rowPtr[j]
	}
	next := make([]int, s.cols)
	copy(next, t.rowPtr[:s.cols])
	for i := 0; i < s.rows; i++ {
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			j := s.colIndex[p]
			pos := next[j]
			t.values[pos] = s.values[p]
			t.colIndex[pos] = i
			next[j]++
		}
	}

	return t
}

// Project computes Qᵀ·M (l×c) for a dense basis q (r×l) against the sparse
// receiver, walking the nonzeros exactly once: each stored (i, j, v) adds
// v·q[i][t] into out[t][j] for every basis column t. The dense transpose of
// q is never formed.
// Complexity: O(nnz·l), Space O(l·c).
func (s *CSR[T]) Project(q *Dense[T]) (*Dense[T], error) {
	if q == nil {
		return nil, csrErrorf("Project", ErrNilMatrix)
	}
	if q.r != s.rows {
		return nil, csrErrorf("Project", ErrDimensionMismatch)
	}
	l := q.c
	out := &Dense[T]{r: l, c: s.cols, data: make([]T, l*s.cols)}
	for i := 0; i < s.rows; i++ {
		qrow := q.data[i*l : (i+1)*l]
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			j, v := s.colIndex[p], s.values[p]
			for t := 0; t < l; t++ {
				out.data[t*s.cols+j] += qrow[t] * v
			}
		}
	}

	return out, nil
}

// MulDense computes M·X (r×l) for X (c×l).
// Complexity: O(nnz·l).
func (s *CSR[T]) MulDense(x *Dense[T]) (*Dense[T], error) {
	if x == nil {
		return nil, csrErrorf("MulDense", ErrNilMatrix)
	}
	if x.r != s.cols {
		return nil, csrErrorf("MulDense", ErrDimensionMismatch)
	}
	l := x.c
	out := &Dense[T]{r: s.rows, c: l, data: make([]T, s.rows*l)}
	for i := 0; i < s.rows; i++ {
		orow := out.data[i*l : (i+1)*l]
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			j, v := s.colIndex[p], s.values[p]
			xrow := x.data[j*l : (j+1)*l]
			for t, xv := range xrow {
				orow[t] += v * xv
			}
		}
	}

	return out, nil
}

// TMulDense computes Mᵀ·X (c×l) for X (r×l), again via a single pass over
// the stored nonzeros. Complexity: O(nnz·l).
func (s *CSR[T]) TMulDense(x *Dense[T]) (*Dense[T], error) {
	if x == nil {
		return nil, csrErrorf("TMulDense", ErrNilMatrix)
	}
	if x.r != s.rows {
		return nil, csrErrorf("TMulDense", ErrDimensionMismatch)
	}
	l := x.c
	out := &Dense[T]{r: s.cols, c: l, data: make([]T, s.cols*l)}
	for i := 0; i < s.rows; i++ {
		xrow := x.data[i*l : (i+1)*l]
		for p := s.rowPtr[i]; p < s.rowPtr[i+1]; p++ {
			j, v := s.colIndex[p], s.values[p]
			orow := out.data[j*l : (j+1)*l]
			for t, xv := range xrow {
				orow[t] += v * xv
			}
		}
	}

	return out, nil
}

// handle marks CSR as a member of the closed Handle variant.
func (s *CSR[T]) handle() {}
