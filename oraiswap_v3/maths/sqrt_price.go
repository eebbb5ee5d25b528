package maths

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"
)

// sqrt(1.0001)^(2^i) at 1e12 fixed point precision
var sqrtPriceFactors = [...]uint64{
	1000049998750,
	1000100000000,
	1000200010000,
	1000400060004,
	1000800280056,
	1001601200560,
	1003204964963,
	1006420201726,
	1012881622442,
	1025929181080,
	1052530684591,
	1107820842005,
	1227267017980,
	1506184333421,
	2268591246242,
	5146506242525,
	26486526504348,
	701536086265529,
}

// CalculateSqrtPrice returns sqrt(1.0001^tick) at sqrt price precision.
// The product is built from the binary decomposition of |tick| at 1e12
// precision and inverted for negative ticks, the same way the contract does it.
func CalculateSqrtPrice(tickIndex int32) (*uint256.Int, error) {
	abs := int64(tickIndex)
	if abs < 0 {
		abs = -abs
	}
	if abs > int64(MaxTick) {
		return nil, errorsmod.Wrapf(ErrTickBounds, "tick %d over bounds", tickIndex)
	}

	sqrtPrice := fixedPointDenominator.Clone()
	for i, factor := range sqrtPriceFactors {
		if abs&(1<<i) == 0 {
			continue
		}
		sqrtPrice.Mul(sqrtPrice, uint256.NewInt(factor))
		sqrtPrice.Div(sqrtPrice, fixedPointDenominator)
	}

	if tickIndex < 0 {
		inverted := new(uint256.Int).Mul(fixedPointDenominator, fixedPointDenominator)
		sqrtPrice = inverted.Div(inverted, sqrtPrice)
	}

	// fixed point (1e12) to sqrt price (1e24)
	return sqrtPrice.Mul(sqrtPrice, pow10(SqrtPriceScale-FixedPointScale)), nil
}

// GetTickAtSqrtPrice returns the largest tick aligned to tickSpacing whose sqrt
// price does not exceed sqrtPrice. Prices below the first aligned tick resolve
// to GetMinTick(tickSpacing).
func GetTickAtSqrtPrice(sqrtPrice *uint256.Int, tickSpacing uint16) (int32, error) {
	if tickSpacing == 0 {
		return 0, errorsmod.Wrap(ErrTickBounds, "tick spacing must be positive")
	}
	if sqrtPrice.Lt(minSqrtPrice) || sqrtPrice.Gt(maxSqrtPrice) {
		return 0, errorsmod.Wrapf(ErrTickBounds, "sqrt price %s outside [%s, %s]", sqrtPrice, minSqrtPrice, maxSqrtPrice)
	}

	spacing := int64(tickSpacing)
	lo := int64(GetMinTick(tickSpacing)) / spacing
	hi := int64(GetMaxTick(tickSpacing)) / spacing
	for lo < hi {
		mid := (lo + hi + 1) / 2
		price, err := CalculateSqrtPrice(int32(mid * spacing))
		if err != nil {
			return 0, err
		}
		if price.Gt(sqrtPrice) {
			hi = mid - 1
		} else {
			lo = mid
		}
	}
	return int32(lo * spacing), nil
}

// GetNextSqrtPriceFromInput moves the price by an input amount of x (xToY) or y.
func GetNextSqrtPriceFromInput(startingSqrtPrice, liquidity, amount *uint256.Int, xToY bool) (*uint256.Int, error) {
	if amount.IsZero() || liquidity.IsZero() {
		return startingSqrtPrice.Clone(), nil
	}
	if xToY {
		return GetNextSqrtPriceXUp(startingSqrtPrice, liquidity, amount, true)
	}
	return GetNextSqrtPriceYDown(startingSqrtPrice, liquidity, amount, true)
}

// GetNextSqrtPriceFromOutput moves the price by an output amount of y (xToY) or x.
func GetNextSqrtPriceFromOutput(startingSqrtPrice, liquidity, amount *uint256.Int, xToY bool) (*uint256.Int, error) {
	if amount.IsZero() || liquidity.IsZero() {
		return startingSqrtPrice.Clone(), nil
	}
	if xToY {
		return GetNextSqrtPriceYDown(startingSqrtPrice, liquidity, amount, false)
	}
	return GetNextSqrtPriceXUp(startingSqrtPrice, liquidity, amount, false)
}

// GetNextSqrtPriceXUp solves L = x * sqrt(P) for the price after adding or
// removing x, rounding up:
//
//	next = P * (L/x) / (L/x ± P)
func GetNextSqrtPriceXUp(startingSqrtPrice, liquidity, x *uint256.Int, addX bool) (*uint256.Int, error) {
	if x.IsZero() {
		return startingSqrtPrice.Clone(), nil
	}

	liquidityAsPrice, err := checkedMul(liquidity, liquidityToSqrtPrice)
	if err != nil {
		return nil, err
	}
	priceDelta, err := mulDiv(liquidityAsPrice, one, x, true)
	if err != nil {
		return nil, err
	}

	var denominator *uint256.Int
	if addX {
		denominator, err = checkedAdd(priceDelta, startingSqrtPrice)
	} else {
		denominator, err = checkedSub(priceDelta, startingSqrtPrice)
	}
	if err != nil {
		return nil, err
	}
	if denominator.IsZero() {
		return nil, errorsmod.Wrap(ErrArithmeticOverflow, "removing x drains the whole liquidity")
	}

	next, err := mulDiv(startingSqrtPrice, priceDelta, denominator, true)
	if err != nil {
		return nil, err
	}
	return asU128(next, "sqrt price")
}

// GetNextSqrtPriceYDown solves L = y / sqrt(P) for the price after adding or
// removing y, rounding down:
//
//	next = P ± y/L
func GetNextSqrtPriceYDown(startingSqrtPrice, liquidity, y *uint256.Int, addY bool) (*uint256.Int, error) {
	if y.IsZero() {
		return startingSqrtPrice.Clone(), nil
	}

	// adding rounds the quotient down, removing rounds it up, both keep the result low
	quotient, err := mulDiv(y, sqrtPriceTimesLiquidity, liquidity, !addY)
	if err != nil {
		return nil, err
	}

	var next *uint256.Int
	if addY {
		next, err = checkedAdd(startingSqrtPrice, quotient)
	} else {
		next, err = checkedSub(startingSqrtPrice, quotient)
	}
	if err != nil {
		return nil, err
	}
	return asU128(next, "sqrt price")
}
