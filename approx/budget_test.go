package approx_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/numgraph/randgsvd/approx"
)

// TestBudget_RankValidation covers the rank-mode parameter domain.
func TestBudget_RankValidation(t *testing.T) {
	assert.NoError(t, approx.RankBudget(10, 3).Validate())

	// Non-positive iteration counts fall back to the documented default.
	b := approx.RankBudget(10, 0)
	assert.Equal(t, approx.DefaultPowerIters, b.PowerIters())
	assert.NoError(t, b.Validate())

	assert.ErrorIs(t, approx.RankBudget(0, 3).Validate(), approx.ErrBadBudget,
		"zero target rank must be rejected")
	assert.ErrorIs(t, approx.RankBudget(-4, 3).Validate(), approx.ErrBadBudget)
}

// TestBudget_PrecisionValidation covers the precision-mode parameter domain.
func TestBudget_PrecisionValidation(t *testing.T) {
	assert.NoError(t, approx.PrecisionBudget(0.1, 4, 100).Validate())

	b := approx.PrecisionBudget(0.1, 0, 100)
	assert.Equal(t, approx.DefaultBlockProbes, b.BlockSize())
	assert.NoError(t, b.Validate())

	assert.ErrorIs(t, approx.PrecisionBudget(0, 4, 100).Validate(), approx.ErrBadBudget,
		"epsilon must be strictly positive")
	assert.ErrorIs(t, approx.PrecisionBudget(1, 4, 100).Validate(), approx.ErrBadBudget,
		"epsilon must be below one")
	assert.ErrorIs(t, approx.PrecisionBudget(0.1, 4, 0).Validate(), approx.ErrBadBudget,
		"max rank must be positive")
}

// TestBudget_ZeroValueInvalid documents that only the constructors produce
// valid budgets: the zero value is Rank mode with rank 0.
func TestBudget_ZeroValueInvalid(t *testing.T) {
	var b approx.Budget
	assert.ErrorIs(t, b.Validate(), approx.ErrBadBudget)
}
