package maths

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"
)

// SingleTokenLiquidity is the liquidity provided by one token and the
// matching amount of the other token
type SingleTokenLiquidity struct {
	L      *uint256.Int `json:"l"`
	Amount *uint256.Int `json:"amount"`
}

// LiquidityResult is the liquidity provided by both tokens at once
type LiquidityResult struct {
	X *uint256.Int `json:"x"`
	Y *uint256.Int `json:"y"`
	L *uint256.Int `json:"l"`
}

func rangeSqrtPrices(lowerTick, upperTick int32) (*uint256.Int, *uint256.Int, error) {
	if lowerTick >= upperTick {
		return nil, nil, errorsmod.Wrapf(ErrTickBounds, "lower tick %d must be below upper tick %d", lowerTick, upperTick)
	}
	lower, err := CalculateSqrtPrice(lowerTick)
	if err != nil {
		return nil, nil, err
	}
	upper, err := CalculateSqrtPrice(upperTick)
	if err != nil {
		return nil, nil, err
	}
	return lower, upper, nil
}

// GetLiquidityByX returns the liquidity x alone provides in [lowerTick, upperTick]
// and the amount of y that has to accompany it.
func GetLiquidityByX(x *uint256.Int, lowerTick, upperTick int32, currentSqrtPrice *uint256.Int, roundUp bool) (SingleTokenLiquidity, error) {
	lower, upper, err := rangeSqrtPrices(lowerTick, upperTick)
	if err != nil {
		return SingleTokenLiquidity{}, err
	}
	return getLiquidityByXSqrtPrice(x, lower, upper, currentSqrtPrice, roundUp)
}

func getLiquidityByXSqrtPrice(x, lower, upper, current *uint256.Int, roundUp bool) (SingleTokenLiquidity, error) {
	if !upper.Gt(current) {
		return SingleTokenLiquidity{}, errorsmod.Wrapf(ErrTickBounds, "upper sqrt price %s <= current sqrt price %s", upper, current)
	}

	if current.Lt(lower) {
		l, err := liquidityFromX(x, lower, upper)
		if err != nil {
			return SingleTokenLiquidity{}, err
		}
		return SingleTokenLiquidity{L: l, Amount: new(uint256.Int)}, nil
	}

	l, err := liquidityFromX(x, current, upper)
	if err != nil {
		return SingleTokenLiquidity{}, err
	}
	y, err := GetDeltaY(lower, current, l, roundUp)
	if err != nil {
		return SingleTokenLiquidity{}, err
	}
	return SingleTokenLiquidity{L: l, Amount: y}, nil
}

// L = x * a * b / (b - a)
func liquidityFromX(x, a, b *uint256.Int) (*uint256.Int, error) {
	nominator, err := mulDiv(a, b, sqrtPriceDenominator, false)
	if err != nil {
		return nil, err
	}
	nominator, err = checkedMul(nominator, liquidityDenominator)
	if err != nil {
		return nil, err
	}
	l, err := mulDiv(x, nominator, new(uint256.Int).Sub(b, a), false)
	if err != nil {
		return nil, err
	}
	return asU128(l, "liquidity")
}

// GetLiquidityByY returns the liquidity y alone provides in [lowerTick, upperTick]
// and the amount of x that has to accompany it.
func GetLiquidityByY(y *uint256.Int, lowerTick, upperTick int32, currentSqrtPrice *uint256.Int, roundUp bool) (SingleTokenLiquidity, error) {
	lower, upper, err := rangeSqrtPrices(lowerTick, upperTick)
	if err != nil {
		return SingleTokenLiquidity{}, err
	}
	return getLiquidityByYSqrtPrice(y, lower, upper, currentSqrtPrice, roundUp)
}

func getLiquidityByYSqrtPrice(y, lower, upper, current *uint256.Int, roundUp bool) (SingleTokenLiquidity, error) {
	if !current.Gt(lower) {
		return SingleTokenLiquidity{}, errorsmod.Wrapf(ErrTickBounds, "current sqrt price %s <= lower sqrt price %s", current, lower)
	}

	if !current.Lt(upper) {
		l, err := liquidityFromY(y, lower, upper)
		if err != nil {
			return SingleTokenLiquidity{}, err
		}
		return SingleTokenLiquidity{L: l, Amount: new(uint256.Int)}, nil
	}

	l, err := liquidityFromY(y, lower, current)
	if err != nil {
		return SingleTokenLiquidity{}, err
	}
	x, err := GetDeltaX(current, upper, l, roundUp)
	if err != nil {
		return SingleTokenLiquidity{}, err
	}
	return SingleTokenLiquidity{L: l, Amount: x}, nil
}

// L = y / (b - a)
func liquidityFromY(y, a, b *uint256.Int) (*uint256.Int, error) {
	l, err := mulDiv(y, sqrtPriceTimesLiquidity, new(uint256.Int).Sub(b, a), false)
	if err != nil {
		return nil, err
	}
	return asU128(l, "liquidity")
}

// GetLiquidity picks the largest liquidity both x and y can cover.
func GetLiquidity(x, y *uint256.Int, lowerTick, upperTick int32, currentSqrtPrice *uint256.Int, roundUp bool) (LiquidityResult, error) {
	lower, upper, err := rangeSqrtPrices(lowerTick, upperTick)
	if err != nil {
		return LiquidityResult{}, err
	}

	if !currentSqrtPrice.Gt(lower) {
		byX, err := getLiquidityByXSqrtPrice(x, lower, upper, currentSqrtPrice, roundUp)
		if err != nil {
			return LiquidityResult{}, err
		}
		return LiquidityResult{X: x.Clone(), Y: new(uint256.Int), L: byX.L}, nil
	}
	if !currentSqrtPrice.Lt(upper) {
		byY, err := getLiquidityByYSqrtPrice(y, lower, upper, currentSqrtPrice, roundUp)
		if err != nil {
			return LiquidityResult{}, err
		}
		return LiquidityResult{X: new(uint256.Int), Y: y.Clone(), L: byY.L}, nil
	}

	byX, err := getLiquidityByXSqrtPrice(x, lower, upper, currentSqrtPrice, roundUp)
	if err != nil {
		return LiquidityResult{}, err
	}
	byY, err := getLiquidityByYSqrtPrice(y, lower, upper, currentSqrtPrice, roundUp)
	if err != nil {
		return LiquidityResult{}, err
	}

	useX := LiquidityResult{X: x.Clone(), Y: byX.Amount, L: byX.L}
	useY := LiquidityResult{X: byY.Amount, Y: y.Clone(), L: byY.L}
	if byY.L.Gt(byX.L) {
		if byX.Amount.Gt(y) {
			return useY, nil
		}
		return useX, nil
	}
	if byY.Amount.Gt(x) {
		return useX, nil
	}
	return useY, nil
}

// CalculateAmountDelta returns the token amounts backing liquidityDelta in
// [lowerTick, upperTick] at the current pool price. Deposits (add=true) round
// up, withdrawals round down. updateLiquidity reports whether the range is active.
func CalculateAmountDelta(
	currentTickIndex int32,
	currentSqrtPrice,
	liquidityDelta *uint256.Int,
	add bool,
	upperTick,
	lowerTick int32,
) (x, y *uint256.Int, updateLiquidity bool, err error) {
	lower, upper, err := rangeSqrtPrices(lowerTick, upperTick)
	if err != nil {
		return nil, nil, false, err
	}

	x, y = new(uint256.Int), new(uint256.Int)
	switch {
	case currentTickIndex < lowerTick:
		x, err = GetDeltaX(lower, upper, liquidityDelta, add)
	case currentTickIndex < upperTick:
		if x, err = GetDeltaX(currentSqrtPrice, upper, liquidityDelta, add); err != nil {
			return nil, nil, false, err
		}
		y, err = GetDeltaY(lower, currentSqrtPrice, liquidityDelta, add)
		updateLiquidity = true
	default:
		y, err = GetDeltaY(lower, upper, liquidityDelta, add)
	}
	if err != nil {
		return nil, nil, false, err
	}
	return x, y, updateLiquidity, nil
}
