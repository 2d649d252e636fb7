// Package gsvd implements a randomized Generalized Singular Value
// Decomposition engine for a pair of matrices sharing a column count.
//
// For a pair mat1 (m×n) and mat2 (p×n) the generalized SVD produces two
// orthogonal factors U and V, two diagonal coefficient sequences s1
// ("cosines") and s2 ("sines") with s1[i]²+s2[i]² = 1, and a common right
// factor X that this engine intentionally never materializes (no caller
// consumes it; a future need must add it as a new opt-in output).
//
// The engine never decomposes the full pair. It:
//
//  1. approximates the column range of each matrix under one shared
//     approx.Budget (either failure aborts with the matrix identified),
//  2. projects each matrix onto its basis, yielding two small dense
//     matrices with the original column count (the reduced pair,
//     consumed immediately and never persisted),
//  3. runs the dense two-matrix GSVD kernel (LAPACK xGGSVD3 semantics,
//     gonum's Dggsvd3 by default) on the reduced pair,
//  4. decodes the raw rank partition (k, l) and coefficient vectors into
//     a validated Result — cosine/sine identity, coefficient ordering and
//     factor orthogonality are all verified, and a violation is reported
//     as a kernel-contract breach rather than returned silently.
//
// Solve is synchronous and allocates independent kernel scratch per call,
// so concurrent solves on independent problems are safe. There is no
// cancellation: a non-converging kernel call runs to its documented
// failure code.
//
// Entry points: NewProblem(...).Solve() for the randomized path and
// SolveDense for a direct dense solve of an already-small pair.
package gsvd
