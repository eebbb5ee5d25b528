package maths

import (
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/models"
	"github.com/holiman/uint256"
	"lukechampine.com/uint128"
)

// TokenAmounts holds an amount of each pool token
type TokenAmounts struct {
	X *uint256.Int `json:"x"`
	Y *uint256.Int `json:"y"`
}

// CalculateFeeGrowthInside returns the fee growth accumulated inside
// [lowerTick, upperTick]. Accumulators wrap modulo 2^128 like on chain.
func CalculateFeeGrowthInside(
	lowerTick, upperTick models.Tick,
	currentTickIndex int32,
	feeGrowthGlobalX, feeGrowthGlobalY *uint256.Int,
) (TokenAmounts, error) {
	x, err := feeGrowthInside(
		lowerTick.Index, orZero(lowerTick.FeeGrowthOutsideX),
		upperTick.Index, orZero(upperTick.FeeGrowthOutsideX),
		currentTickIndex, orZero(feeGrowthGlobalX),
	)
	if err != nil {
		return TokenAmounts{}, err
	}
	y, err := feeGrowthInside(
		lowerTick.Index, orZero(lowerTick.FeeGrowthOutsideY),
		upperTick.Index, orZero(upperTick.FeeGrowthOutsideY),
		currentTickIndex, orZero(feeGrowthGlobalY),
	)
	if err != nil {
		return TokenAmounts{}, err
	}
	return TokenAmounts{X: fromUint128(x), Y: fromUint128(y)}, nil
}

func feeGrowthInside(
	lowerIndex int32, lowerOutside *uint256.Int,
	upperIndex int32, upperOutside *uint256.Int,
	currentTickIndex int32, global *uint256.Int,
) (uint128.Uint128, error) {
	g, err := toUint128(global)
	if err != nil {
		return uint128.Zero, err
	}
	lo, err := toUint128(lowerOutside)
	if err != nil {
		return uint128.Zero, err
	}
	up, err := toUint128(upperOutside)
	if err != nil {
		return uint128.Zero, err
	}

	below := lo
	if currentTickIndex < lowerIndex {
		below = g.SubWrap(lo)
	}
	above := up
	if currentTickIndex >= upperIndex {
		above = g.SubWrap(up)
	}
	return g.SubWrap(below).SubWrap(above), nil
}

// CalculateFee returns the fees owed to position since its last checkpoint:
//
//	owed = L * (fee_growth_inside - fee_growth_inside_last) / 1e34
func CalculateFee(
	lowerTick, upperTick models.Tick,
	currentTickIndex int32,
	feeGrowthGlobalX, feeGrowthGlobalY *uint256.Int,
	position models.Position,
) (TokenAmounts, error) {
	inside, err := CalculateFeeGrowthInside(lowerTick, upperTick, currentTickIndex, feeGrowthGlobalX, feeGrowthGlobalY)
	if err != nil {
		return TokenAmounts{}, err
	}
	liquidity := orZero(position.Liquidity)

	owedX, err := feeOwed(inside.X, orZero(position.FeeGrowthInsideX), liquidity)
	if err != nil {
		return TokenAmounts{}, err
	}
	owedY, err := feeOwed(inside.Y, orZero(position.FeeGrowthInsideY), liquidity)
	if err != nil {
		return TokenAmounts{}, err
	}
	return TokenAmounts{X: owedX, Y: owedY}, nil
}

func feeOwed(inside, last, liquidity *uint256.Int) (*uint256.Int, error) {
	current, err := toUint128(inside)
	if err != nil {
		return nil, err
	}
	checkpoint, err := toUint128(last)
	if err != nil {
		return nil, err
	}
	growth := fromUint128(current.SubWrap(checkpoint))

	owed, err := mulDiv(growth, liquidity, feeGrowthTimesLiquidity, false)
	if err != nil {
		return nil, err
	}
	return asU128(owed, "fee")
}
