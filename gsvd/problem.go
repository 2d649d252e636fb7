// Package gsvd: problem construction and the public solve entry points.

package gsvd

import (
	"fmt"

	"github.com/numgraph/randgsvd/approx"
	"github.com/numgraph/randgsvd/matrix"
)

// Problem owns one randomized GSVD invocation: two matrix handles, the
// shared approximation budget and the engine configuration. A Problem is
// constructed per call, consumed once by Solve and discarded; the input
// handles are borrowed immutably throughout.
type Problem[T matrix.Scalar] struct {
	mat1, mat2 matrix.Handle[T]
	budget     approx.Budget
	cfg        config[T]
}

// NewProblem validates and builds a randomized GSVD problem over mat1
// (m×n) and mat2 (p×n). The same budget instance governs both matrices so
// their approximated ranks stay comparable.
//
// Stage 1 (Validate): non-nil handles, equal column counts after the
// optional transposes, valid budget. All checks run before any
// approximation work, so a failed construction has no side effects.
// Returns ErrDimensionMismatch, matrix.ErrNilMatrix or approx.ErrBadBudget.
func NewProblem[T matrix.Scalar](mat1, mat2 matrix.Handle[T], budget approx.Budget, opts ...Option[T]) (*Problem[T], error) {
	if mat1 == nil || mat2 == nil {
		return nil, gsvdErrorf("NewProblem", matrix.ErrNilMatrix)
	}
	cfg := defaultConfig[T]()
	for _, opt := range opts {
		opt(&cfg)
	}

	// Column counts are compared on the effective (possibly transposed)
	// orientations actually handed to the solver.
	c1 := effectiveCols(mat1, cfg.t1)
	c2 := effectiveCols(mat2, cfg.t2)
	if c1 != c2 {
		return nil, fmt.Errorf("NewProblem: %d vs %d columns: %w", c1, c2, ErrDimensionMismatch)
	}
	if err := budget.Validate(); err != nil {
		return nil, gsvdErrorf("NewProblem", err)
	}

	return &Problem[T]{mat1: mat1, mat2: mat2, budget: budget, cfg: cfg}, nil
}

func effectiveCols[T matrix.Scalar](h matrix.Handle[T], t Transform) int {
	if t.Transpose {
		return h.Rows()
	}

	return h.Cols()
}

// Solve runs the randomized GSVD pipeline:
//
//	range-approximate mat1, mat2 → project to the reduced pair →
//	dense kernel → decode + validate.
//
// Either approximation failure aborts with ErrRangeApproxFailed naming the
// matrix; the kernel is then never invoked. Kernel and consistency
// failures surface as ErrNonConvergence / ErrInvalidArgument /
// ErrInternalInconsistency. Solve is synchronous and safe to call from
// multiple goroutines on independent problems.
func (pb *Problem[T]) Solve() (*Result[T], error) {
	h1, h2 := pb.mat1, pb.mat2
	if pb.cfg.t1.Transpose {
		h1 = h1.Transpose()
	}
	if pb.cfg.t2.Transpose {
		h2 = h2.Transpose()
	}

	// Stage 1: shared-budget range approximation, mat1 then mat2.
	q1, ok := pb.cfg.apx.Range(h1, pb.budget)
	if !ok {
		return nil, fmt.Errorf("Solve: matrix 1: %w", ErrRangeApproxFailed)
	}
	q2, ok := pb.cfg.apx.Range(h2, pb.budget)
	if !ok {
		return nil, fmt.Errorf("Solve: matrix 2: %w", ErrRangeApproxFailed)
	}
	pb.cfg.log.Debug().
		Int("rank1", q1.Cols()).
		Int("rank2", q2.Cols()).
		Msg("range bases computed")

	// Stage 2: reduced pair A = Q1ᵀ·mat1, B = Q2ᵀ·mat2 (ephemeral).
	a, err := h1.Project(q1)
	if err != nil {
		return nil, gsvdErrorf("Solve", err)
	}
	b, err := h2.Project(q2)
	if err != nil {
		return nil, gsvdErrorf("Solve", err)
	}
	if s := pb.cfg.t1.Scale; s != 1 {
		a.Scale(T(s))
	}
	if s := pb.cfg.t2.Scale; s != 1 {
		b.Scale(T(s))
	}

	// Stage 3+4: dense kernel on the reduced pair, then decode.
	return finishDense(pb.cfg, a, b)
}

// SolveDense runs the dense two-matrix GSVD directly on a (m×n) and b
// (p×n) without range reduction — the path for pairs that are already
// small (n ≤ rows, full column rank). The inputs are not mutated; the
// kernel works on private scratch copies. Accepts the same options as
// NewProblem (approximator options are ignored here).
func SolveDense[T matrix.Scalar](a, b *matrix.Dense[T], opts ...Option[T]) (*Result[T], error) {
	if a == nil || b == nil {
		return nil, gsvdErrorf("SolveDense", matrix.ErrNilMatrix)
	}
	cfg := defaultConfig[T]()
	for _, opt := range opts {
		opt(&cfg)
	}

	aw := applyTransform(a, cfg.t1)
	bw := applyTransform(b, cfg.t2)
	if aw.Cols() != bw.Cols() {
		return nil, fmt.Errorf("SolveDense: %d vs %d columns: %w",
			aw.Cols(), bw.Cols(), ErrDimensionMismatch)
	}

	return finishDense(cfg, aw, bw)
}

// applyTransform materializes the transform on a private copy when needed.
func applyTransform[T matrix.Scalar](m *matrix.Dense[T], t Transform) *matrix.Dense[T] {
	if t.identity() {
		return m
	}
	out := m
	if t.Transpose {
		out = out.Transpose().(*matrix.Dense[T])
	} else {
		out = out.Clone()
	}
	if t.Scale != 1 {
		out.Scale(T(t.Scale))
	}

	return out
}

// finishDense is the shared tail of both entry points: kernel + decode,
// with dimension diagnostics.
func finishDense[T matrix.Scalar](cfg config[T], a, b *matrix.Dense[T]) (*Result[T], error) {
	raw, err := solveReduced(cfg.prim, a, b)
	if err != nil {
		return nil, err
	}
	cfg.log.Debug().
		Int("m", raw.m).
		Int("n", raw.n).
		Int("p", raw.p).
		Int("k", raw.k).
		Int("l", raw.l).
		Msg("dense gsvd kernel returned")

	return decode[T](raw, cfg.orthoTol)
}
