// Package approx: the Budget variant and its validation.

package approx

import (
	"errors"
	"fmt"
)

// Numeric policy defaults (single source of truth).
const (
	// DefaultPowerIters is the power-iteration count used when a caller
	// passes a non-positive value to RankBudget. Two iterations already
	// damp the spectral tail enough for proximity matrices.
	DefaultPowerIters = 2

	// DefaultBlockProbes is the probe-block size used when a caller passes
	// a non-positive value to PrecisionBudget.
	DefaultBlockProbes = 4
)

// ErrBadBudget is returned by Validate for out-of-domain budget parameters
// (non-positive ranks, epsilon outside (0,1), and similar).
var ErrBadBudget = errors.New("approx: invalid approximation budget")

// Mode discriminates the two budget variants.
type Mode int

const (
	// Rank mode: approximate with a fixed target rank and power iterations.
	Rank Mode = iota

	// Precision mode: grow the basis until the residual falls under epsilon,
	// capped at a maximum rank.
	Precision
)

// Budget is the closed approximation-budget variant. Construct it with
// RankBudget or PrecisionBudget; the zero value is invalid.
type Budget struct {
	mode       Mode
	targetRank int     // Rank mode: basis size to aim for
	powerIters int     // Rank mode: subspace (power) iterations
	epsilon    float64 // Precision mode: residual stopping threshold
	blockSize  int     // Precision mode: probes drawn per adaptive step
	maxRank    int     // Precision mode: hard cap on the basis size
}

// RankBudget builds a fixed-rank budget. nbIter is the number of power
// iterations; non-positive values fall back to DefaultPowerIters.
func RankBudget(targetRank, nbIter int) Budget {
	if nbIter <= 0 {
		nbIter = DefaultPowerIters
	}

	return Budget{mode: Rank, targetRank: targetRank, powerIters: nbIter}
}

// PrecisionBudget builds a residual-driven budget. blockSize is the number
// of Gaussian probes drawn per adaptive step; non-positive values fall back
// to DefaultBlockProbes.
func PrecisionBudget(epsilon float64, blockSize, maxRank int) Budget {
	if blockSize <= 0 {
		blockSize = DefaultBlockProbes
	}

	return Budget{mode: Precision, epsilon: epsilon, blockSize: blockSize, maxRank: maxRank}
}

// Mode returns the variant tag. Complexity: O(1).
func (b Budget) Mode() Mode { return b.mode }

// TargetRank returns the rank-mode basis size (0 in precision mode).
func (b Budget) TargetRank() int { return b.targetRank }

// PowerIters returns the rank-mode power-iteration count.
func (b Budget) PowerIters() int { return b.powerIters }

// Epsilon returns the precision-mode residual threshold.
func (b Budget) Epsilon() float64 { return b.epsilon }

// BlockSize returns the precision-mode probe-block size.
func (b Budget) BlockSize() int { return b.blockSize }

// MaxRank returns the precision-mode rank cap.
func (b Budget) MaxRank() int { return b.maxRank }

// Validate checks the budget parameters against their domains.
// Rank mode requires targetRank > 0; precision mode requires
// epsilon ∈ (0,1) and maxRank > 0. Returns ErrBadBudget with context.
func (b Budget) Validate() error {
	switch b.mode {
	case Rank:
		if b.targetRank <= 0 {
			return fmt.Errorf("target rank %d: %w", b.targetRank, ErrBadBudget)
		}
		if b.powerIters <= 0 {
			return fmt.Errorf("power iterations %d: %w", b.powerIters, ErrBadBudget)
		}
	case Precision:
		if b.epsilon <= 0 || b.epsilon >= 1 {
			return fmt.Errorf("epsilon %g: %w", b.epsilon, ErrBadBudget)
		}
		if b.blockSize <= 0 {
			return fmt.Errorf("block size %d: %w", b.blockSize, ErrBadBudget)
		}
		if b.maxRank <= 0 {
			return fmt.Errorf("max rank %d: %w", b.maxRank, ErrBadBudget)
		}
	default:
		return fmt.Errorf("mode %d: %w", b.mode, ErrBadBudget)
	}

	return nil
}
