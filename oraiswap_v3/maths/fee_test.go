package maths_test

import (
	"testing"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/maths"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/models"
	"github.com/holiman/uint256"
	"github.com/zeebo/assert"
)

func feeGrowth(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), u("10000000000000000000000000000"))
}

func TestCalculateFee(t *testing.T) {
	lower := models.Tick{Index: -10, FeeGrowthOutsideX: feeGrowth(1), FeeGrowthOutsideY: feeGrowth(0)}
	upper := models.Tick{Index: 10, FeeGrowthOutsideX: feeGrowth(0), FeeGrowthOutsideY: feeGrowth(0)}
	position := models.Position{
		Liquidity:        maths.LiquidityFromInteger(100),
		LowerTickIndex:   -10,
		UpperTickIndex:   10,
		FeeGrowthInsideX: new(uint256.Int),
		FeeGrowthInsideY: new(uint256.Int),
	}

	owed, err := maths.CalculateFee(lower, upper, 0, feeGrowth(2), feeGrowth(0), position)
	assert.NoError(t, err)
	assert.Equal(t, owed.X.Dec(), "100")
	assert.True(t, owed.Y.IsZero())
}

func TestCalculateFeeWrapsCheckpoint(t *testing.T) {
	lower := models.Tick{Index: -10}
	upper := models.Tick{Index: 10}
	position := models.Position{
		Liquidity:        uint256.NewInt(1),
		FeeGrowthInsideX: new(uint256.Int).AddUint64(feeGrowth(1), 1),
	}

	// inside growth 1e28 sits one unit behind the checkpoint
	owed, err := maths.CalculateFee(lower, upper, 0, feeGrowth(1), nil, position)
	assert.NoError(t, err)
	assert.Equal(t, owed.X.Dec(), "34028")
}

func TestCalculateFeeGrowthInside(t *testing.T) {
	lower := models.Tick{Index: -10, FeeGrowthOutsideX: feeGrowth(3)}
	upper := models.Tick{Index: 10, FeeGrowthOutsideX: feeGrowth(1)}

	// price below the range: below = global - outside wraps
	inside, err := maths.CalculateFeeGrowthInside(lower, upper, -20, feeGrowth(2), nil)
	assert.NoError(t, err)
	assert.Equal(t, inside.X.Dec(), "20000000000000000000000000000")
	assert.True(t, inside.Y.IsZero())

	position := models.Position{Liquidity: maths.LiquidityFromInteger(1)}
	owed, err := maths.CalculateFee(lower, upper, -20, feeGrowth(2), nil, position)
	assert.NoError(t, err)
	assert.Equal(t, owed.X.Dec(), "2")
}

func TestCalculateFeeRejectsOversizedGrowth(t *testing.T) {
	lower := models.Tick{Index: -10}
	upper := models.Tick{Index: 10}
	position := models.Position{Liquidity: uint256.NewInt(1)}

	huge := new(uint256.Int).Lsh(uint256.NewInt(1), 130)
	_, err := maths.CalculateFee(lower, upper, 0, huge, nil, position)
	assert.Error(t, err)
}
