// Package approx defines approximation budgets and the range-approximator
// contract consumed by the randomized GSVD engine, together with a default
// randomized implementation.
//
// A Budget is a closed variant over two modes:
//
//   - Rank      — fixed target rank with a number of power iterations,
//     for small problems where the rank is known up front.
//   - Precision — residual tolerance with a probe block size and a rank
//     cap, for large sparse matrices where the rank is discovered.
//
// Exactly one Budget instance governs both matrices of a GSVD problem so
// their approximated ranks stay comparable.
//
// Randomized is the default Approximator: a Gaussian-sketch range finder
// (Halko–Martinsson–Tropp style) with LAPACK QR re-orthonormalization in
// rank mode and adaptive blocked Gram–Schmidt growth in precision mode.
// It is deterministic under its seed and touches no global state.
package approx
