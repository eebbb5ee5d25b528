package maths

import "github.com/holiman/uint256"

const (
	MaxTick int32 = 221_818
	MinTick int32 = -MaxTick

	TickSearchRange int32 = 256
	MaxTickCross          = 173
	ChunkSize       int32 = 64

	SqrtPriceScale  = 24
	LiquidityScale  = 6
	PercentageScale = 12
	FeeGrowthScale  = 28
	FixedPointScale = 12
)

var (
	one  = uint256.NewInt(1)
	zero = uint256.NewInt(0)

	sqrtPriceDenominator  = pow10(SqrtPriceScale)
	liquidityDenominator  = pow10(LiquidityScale)
	percentageDenominator = pow10(PercentageScale)
	fixedPointDenominator = pow10(FixedPointScale)

	// y * 1e30 / L keeps a sqrt price scale after dividing by scaled liquidity
	sqrtPriceTimesLiquidity = pow10(SqrtPriceScale + LiquidityScale)
	// fee growth * liquidity carries 1e34
	feeGrowthTimesLiquidity = pow10(FeeGrowthScale + LiquidityScale)
	// liquidity to sqrt price scale
	liquidityToSqrtPrice = pow10(SqrtPriceScale - LiquidityScale)

	maxU128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(one, 128), one)

	maxSqrtPrice = uint256.MustFromDecimal("65535383934512647000000000000")
	minSqrtPrice = uint256.MustFromDecimal("15258932000000000000")
)

func pow10(n uint64) *uint256.Int {
	return new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(n))
}

// GetGlobalMaxSqrtPrice is the sqrt price at MaxTick
func GetGlobalMaxSqrtPrice() *uint256.Int { return maxSqrtPrice.Clone() }

// GetGlobalMinSqrtPrice is the sqrt price at MinTick
func GetGlobalMinSqrtPrice() *uint256.Int { return minSqrtPrice.Clone() }

func GetTickSearchRange() int32 { return TickSearchRange }

func GetMaxTickCross() int { return MaxTickCross }

func GetChunkSize() int32 { return ChunkSize }

// GetMaxU128 returns 2^128 - 1
func GetMaxU128() *uint256.Int { return maxU128.Clone() }

// SqrtPriceFromInteger scales a whole number to sqrt price precision
func SqrtPriceFromInteger(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), sqrtPriceDenominator)
}

// LiquidityFromInteger scales a whole number to liquidity precision
func LiquidityFromInteger(n uint64) *uint256.Int {
	return new(uint256.Int).Mul(uint256.NewInt(n), liquidityDenominator)
}
