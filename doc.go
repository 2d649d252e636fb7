// Package randgsvd is a randomized Generalized Singular Value Decomposition
// (GSVD) engine for matrix pairs sharing a column count — the numeric core
// of graph-embedding pipelines (Hope-style proximity transforms) where the
// full matrices are too large to decompose directly.
//
// 🚀 What does randgsvd do?
//
//	Given two matrices A (m×n) and B (p×n) it:
//		• approximates the column range of each under a rank or precision budget
//		• projects both into the reduced bases (two small dense problems)
//		• runs a dense two-matrix GSVD kernel on the reduced pair
//		• decodes the rank partition (k, l) and the cosine/sine coefficient
//		  vectors into a validated result (orthogonal U, V; s1²+s2²≈1)
//
// ✨ Why choose randgsvd?
//
//   - Pure Go – the dense kernel is gonum's Dggsvd3, no cgo required
//   - Two precisions – float32 and float64 behind one sealed generic surface
//   - Typed failures – dimension mismatch, non-convergence and kernel
//     contract breaches are distinct, errors.Is-matchable sentinels
//   - Deterministic – seeded randomized range finder, no global state
//
// Everything is organized under three subpackages:
//
//	matrix/ — dense (row-major) and CSR matrix handles with uniform
//	          basis-projection, the input representation for the engine
//	approx/ — approximation budgets and the randomized range finder
//	gsvd/   — the problem/solver/decoder pipeline and the public Solve entry
//
// Quick sketch of the data flow:
//
//	Handle ──► range basis Q ──► Qᵀ·M (reduced) ──► dense GSVD ──► Result
//
// See gsvd.NewProblem for the public entry point and the package examples
// for end-to-end usage.
package randgsvd
