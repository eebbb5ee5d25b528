package maths

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"
)

// GetMaxTick returns the largest tick aligned to tickSpacing. tickSpacing must be positive.
func GetMaxTick(tickSpacing uint16) int32 {
	spacing := int32(tickSpacing)
	return MaxTick / spacing * spacing
}

// GetMinTick returns the smallest tick aligned to tickSpacing. tickSpacing must be positive.
func GetMinTick(tickSpacing uint16) int32 {
	return -GetMaxTick(tickSpacing)
}

// GetMaxChunk returns the index of the last tickmap chunk for tickSpacing
func GetMaxChunk(tickSpacing uint16) uint16 {
	maxBitmapIndex := (GetMaxTick(tickSpacing) + MaxTick) / int32(tickSpacing)
	return uint16(maxBitmapIndex / ChunkSize)
}

// CalculateMaxLiquidityPerTick caps the liquidity a single tick may reference
// so that the sum over every tick of the grid still fits u128.
func CalculateMaxLiquidityPerTick(tickSpacing uint16) *uint256.Int {
	ticksAmount := uint64(2*MaxTick+1) / uint64(tickSpacing)
	return new(uint256.Int).Div(maxU128, uint256.NewInt(ticksAmount))
}

func CheckTick(tickIndex int32, tickSpacing uint16) error {
	if tickSpacing == 0 {
		return errorsmod.Wrap(ErrTickBounds, "tick spacing must be positive")
	}
	if tickIndex%int32(tickSpacing) != 0 {
		return errorsmod.Wrapf(ErrTickBounds, "tick %d is not a multiple of tick spacing %d", tickIndex, tickSpacing)
	}
	minTick, maxTick := GetMinTick(tickSpacing), GetMaxTick(tickSpacing)
	if tickIndex < minTick || tickIndex > maxTick {
		return errorsmod.Wrapf(ErrTickBounds, "tick %d outside [%d, %d]", tickIndex, minTick, maxTick)
	}
	return nil
}

// CheckTicks validates a position range: both ends valid and lower strictly below upper.
func CheckTicks(lowerTick, upperTick int32, tickSpacing uint16) error {
	if lowerTick >= upperTick {
		return errorsmod.Wrapf(ErrTickBounds, "lower tick %d must be below upper tick %d", lowerTick, upperTick)
	}
	if err := CheckTick(lowerTick, tickSpacing); err != nil {
		return err
	}
	return CheckTick(upperTick, tickSpacing)
}

// CheckTickToSqrtPriceRelationship verifies that sqrtPrice lies in
// [price(tick), price(tick + spacing)). The last aligned tick only accepts its own price.
func CheckTickToSqrtPriceRelationship(tickIndex int32, tickSpacing uint16, sqrtPrice *uint256.Int) error {
	if tickSpacing == 0 {
		return errorsmod.Wrap(ErrTickBounds, "tick spacing must be positive")
	}

	if int64(tickIndex)+int64(tickSpacing) > int64(MaxTick) {
		maxSqrtPrice, err := CalculateSqrtPrice(GetMaxTick(tickSpacing))
		if err != nil {
			return err
		}
		if !sqrtPrice.Eq(maxSqrtPrice) {
			return errorsmod.Wrapf(ErrTickBounds, "sqrt price %s does not match max tick %d", sqrtPrice, tickIndex)
		}
		return nil
	}

	lowerBound, err := CalculateSqrtPrice(tickIndex)
	if err != nil {
		return err
	}
	upperBound, err := CalculateSqrtPrice(tickIndex + int32(tickSpacing))
	if err != nil {
		return err
	}
	if sqrtPrice.Lt(lowerBound) || !sqrtPrice.Lt(upperBound) {
		return errorsmod.Wrapf(ErrTickBounds, "sqrt price %s not in [%s, %s) of tick %d", sqrtPrice, lowerBound, upperBound, tickIndex)
	}
	return nil
}

// TickToPosition maps an aligned tick to its tickmap chunk and bit
func TickToPosition(tickIndex int32, tickSpacing uint16) (chunk uint16, bit uint8, err error) {
	if err := CheckTick(tickIndex, tickSpacing); err != nil {
		return 0, 0, err
	}
	bitmapIndex := (tickIndex + MaxTick) / int32(tickSpacing)
	return uint16(bitmapIndex / ChunkSize), uint8(bitmapIndex % ChunkSize), nil
}

// PositionToTick is the inverse of TickToPosition
func PositionToTick(chunk uint16, bit uint8, tickSpacing uint16) int32 {
	spacing := int32(tickSpacing)
	tickRangeLimit := MaxTick - MaxTick%spacing
	return int32(chunk)*ChunkSize*spacing + int32(bit)*spacing - tickRangeLimit
}

// GetSearchLimit bounds how far a single swap step looks for the next initialized tick
func GetSearchLimit(tickIndex int32, tickSpacing uint16, up bool) int32 {
	spacing := int32(tickSpacing)
	index := tickIndex / spacing
	var limit int32
	if up {
		limit = min(index+TickSearchRange, MaxTick/spacing)
	} else {
		limit = max(index-TickSearchRange, MinTick/spacing)
	}
	return limit * spacing
}
