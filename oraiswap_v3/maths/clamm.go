package maths

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"
)

// SwapResult is the outcome of a swap inside a single liquidity range
type SwapResult struct {
	NextSqrtPrice *uint256.Int `json:"next_sqrt_price"`
	AmountIn      *uint256.Int `json:"amount_in"`
	AmountOut     *uint256.Int `json:"amount_out"`
	FeeAmount     *uint256.Int `json:"fee_amount"`
}

// GetDeltaX returns the amount of token x between two sqrt prices:
//
//	delta_x = L * |b - a| / (a * b)
func GetDeltaX(sqrtPriceA, sqrtPriceB, liquidity *uint256.Int, roundUp bool) (*uint256.Int, error) {
	delta := absDiff(sqrtPriceA, sqrtPriceB)

	// the denominator rounds against the result
	denominator, err := mulDiv(sqrtPriceA, sqrtPriceB, sqrtPriceDenominator, !roundUp)
	if err != nil {
		return nil, err
	}
	denominator, err = checkedMul(denominator, liquidityDenominator)
	if err != nil {
		return nil, err
	}

	amount, err := mulDiv(delta, liquidity, denominator, roundUp)
	if err != nil {
		return nil, err
	}
	return asU128(amount, "delta x")
}

// GetDeltaY returns the amount of token y between two sqrt prices:
//
//	delta_y = L * |b - a|
func GetDeltaY(sqrtPriceA, sqrtPriceB, liquidity *uint256.Int, roundUp bool) (*uint256.Int, error) {
	delta := absDiff(sqrtPriceA, sqrtPriceB)
	amount, err := mulDiv(delta, liquidity, sqrtPriceTimesLiquidity, roundUp)
	if err != nil {
		return nil, err
	}
	return asU128(amount, "delta y")
}

// ComputeSwapStep simulates a swap between currentSqrtPrice and targetSqrtPrice
// with constant liquidity. The fee is charged on the input side.
func ComputeSwapStep(
	currentSqrtPrice,
	targetSqrtPrice,
	liquidity,
	amount *uint256.Int,
	byAmountIn bool,
	fee uint64,
) (SwapResult, error) {
	if liquidity.IsZero() || currentSqrtPrice.Eq(targetSqrtPrice) {
		return SwapResult{
			NextSqrtPrice: currentSqrtPrice.Clone(),
			AmountIn:      new(uint256.Int),
			AmountOut:     new(uint256.Int),
			FeeAmount:     new(uint256.Int),
		}, nil
	}
	feeRate := uint256.NewInt(fee)
	if feeRate.Gt(percentageDenominator) {
		return SwapResult{}, errorsmod.Wrapf(ErrArithmeticOverflow, "fee %d exceeds 100%%", fee)
	}

	xToY := !currentSqrtPrice.Lt(targetSqrtPrice)
	var (
		next      *uint256.Int
		amountIn  = new(uint256.Int)
		amountOut = new(uint256.Int)
		err       error
	)

	if byAmountIn {
		amountAfterFee, err := mulDiv(amount, new(uint256.Int).Sub(percentageDenominator, feeRate), percentageDenominator, false)
		if err != nil {
			return SwapResult{}, err
		}
		if xToY {
			amountIn, err = GetDeltaX(targetSqrtPrice, currentSqrtPrice, liquidity, true)
		} else {
			amountIn, err = GetDeltaY(currentSqrtPrice, targetSqrtPrice, liquidity, true)
		}
		if err != nil {
			return SwapResult{}, err
		}

		if !amountAfterFee.Lt(amountIn) {
			next = targetSqrtPrice.Clone()
		} else {
			next, err = GetNextSqrtPriceFromInput(currentSqrtPrice, liquidity, amountAfterFee, xToY)
			if err != nil {
				return SwapResult{}, err
			}
		}
	} else {
		if xToY {
			amountOut, err = GetDeltaY(targetSqrtPrice, currentSqrtPrice, liquidity, false)
		} else {
			amountOut, err = GetDeltaX(currentSqrtPrice, targetSqrtPrice, liquidity, false)
		}
		if err != nil {
			return SwapResult{}, err
		}

		if !amount.Lt(amountOut) {
			next = targetSqrtPrice.Clone()
		} else {
			next, err = GetNextSqrtPriceFromOutput(currentSqrtPrice, liquidity, amount, xToY)
			if err != nil {
				return SwapResult{}, err
			}
		}
	}

	notMax := !targetSqrtPrice.Eq(next)

	if xToY {
		if notMax || !byAmountIn {
			if amountIn, err = GetDeltaX(next, currentSqrtPrice, liquidity, true); err != nil {
				return SwapResult{}, err
			}
		}
		if notMax || byAmountIn {
			if amountOut, err = GetDeltaY(next, currentSqrtPrice, liquidity, false); err != nil {
				return SwapResult{}, err
			}
		}
	} else {
		if notMax || !byAmountIn {
			if amountIn, err = GetDeltaY(currentSqrtPrice, next, liquidity, true); err != nil {
				return SwapResult{}, err
			}
		}
		if notMax || byAmountIn {
			if amountOut, err = GetDeltaX(currentSqrtPrice, next, liquidity, false); err != nil {
				return SwapResult{}, err
			}
		}
	}

	if !byAmountIn && amountOut.Gt(amount) {
		amountOut = amount.Clone()
	}

	var feeAmount *uint256.Int
	if byAmountIn && notMax {
		feeAmount, err = checkedSub(amount, amountIn)
	} else {
		feeAmount, err = mulDiv(amountIn, feeRate, percentageDenominator, true)
	}
	if err != nil {
		return SwapResult{}, err
	}

	return SwapResult{
		NextSqrtPrice: next,
		AmountIn:      amountIn,
		AmountOut:     amountOut,
		FeeAmount:     feeAmount,
	}, nil
}

// IsEnoughAmountToChangePrice reports whether swapping amount moves the price
// at all. Tiny amounts at extreme prices or on deep liquidity may be fully
// absorbed by rounding.
func IsEnoughAmountToChangePrice(
	amount,
	startingSqrtPrice,
	liquidity *uint256.Int,
	fee uint64,
	byAmountIn bool,
	xToY bool,
) (bool, error) {
	if liquidity.IsZero() {
		return true, nil
	}

	var (
		next *uint256.Int
		err  error
	)
	if byAmountIn {
		feeRate := uint256.NewInt(fee)
		if feeRate.Gt(percentageDenominator) {
			return false, errorsmod.Wrapf(ErrArithmeticOverflow, "fee %d exceeds 100%%", fee)
		}
		amountAfterFee, err := mulDiv(amount, new(uint256.Int).Sub(percentageDenominator, feeRate), percentageDenominator, false)
		if err != nil {
			return false, err
		}
		next, err = GetNextSqrtPriceFromInput(startingSqrtPrice, liquidity, amountAfterFee, xToY)
		if err != nil {
			return false, err
		}
	} else {
		next, err = GetNextSqrtPriceFromOutput(startingSqrtPrice, liquidity, amount, xToY)
		if err != nil {
			return false, err
		}
	}
	return !startingSqrtPrice.Eq(next), nil
}
