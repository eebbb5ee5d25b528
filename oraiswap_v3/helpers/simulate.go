package helpers

import (
	"sort"

	errorsmod "cosmossdk.io/errors"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/maths"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/models"
	"github.com/holiman/uint256"
)

// SimulateSwapResult is the outcome of a multi tick swap simulation.
// AmountIn is what the caller pays, fee included; Fee is the part of it the
// pool keeps.
type SimulateSwapResult struct {
	AmountIn        *uint256.Int           `json:"amount_in"`
	AmountOut       *uint256.Int           `json:"amount_out"`
	Fee             *uint256.Int           `json:"fee"`
	StartSqrtPrice  *uint256.Int           `json:"start_sqrt_price"`
	TargetSqrtPrice *uint256.Int           `json:"target_sqrt_price"`
	CurrentTick     int32                  `json:"current_tick"`
	CrossedTicks    []models.LiquidityTick `json:"crossed_ticks"`
}

// swapLimit is the next price a single step may reach
type swapLimit struct {
	sqrtPrice   *uint256.Int
	tick        int32
	hasTick     bool
	initialized bool
	change      models.LiquidityTick
}

// SimulateSwap replays a swap against a pool snapshot and its initialized
// ticks the way the pool contract executes it: one ComputeSwapStep per
// liquidity range, crossing ticks until the amount is used up. Each step looks
// at most GetTickSearchRange() tick spacings ahead and at most
// GetMaxTickCross() ticks may be crossed.
func SimulateSwap(
	snapshot models.PoolWithPoolKey,
	ticks []models.LiquidityTick,
	xToY bool,
	amount *uint256.Int,
	byAmountIn bool,
	sqrtPriceLimit *uint256.Int,
) (SimulateSwapResult, error) {
	if amount == nil || amount.IsZero() {
		return SimulateSwapResult{}, ErrZeroAmount
	}
	pool := snapshot.Pool
	if pool.SqrtPrice == nil {
		return SimulateSwapResult{}, errorsmod.Wrap(ErrInsufficientTicks, "pool has no sqrt price")
	}
	spacing := snapshot.PoolKey.FeeTier.TickSpacing
	if spacing == 0 {
		return SimulateSwapResult{}, errorsmod.Wrap(maths.ErrTickBounds, "tick spacing must be positive")
	}
	if err := checkPriceLimit(pool.SqrtPrice, sqrtPriceLimit, xToY); err != nil {
		return SimulateSwapResult{}, err
	}

	sorted := sortedTicks(ticks)
	sqrtPrice := pool.SqrtPrice.Clone()
	liquidity := new(uint256.Int)
	if pool.Liquidity != nil {
		liquidity.Set(pool.Liquidity)
	}
	currentTick := pool.CurrentTickIndex
	fee := snapshot.PoolKey.FeeTier.Fee

	result := SimulateSwapResult{
		AmountIn:       new(uint256.Int),
		AmountOut:      new(uint256.Int),
		Fee:            new(uint256.Int),
		StartSqrtPrice: pool.SqrtPrice.Clone(),
	}
	remaining := amount.Clone()
	crossed := 0

	for !remaining.IsZero() {
		limit, err := closerLimit(sorted, sqrtPriceLimit, xToY, currentTick, spacing)
		if err != nil {
			return SimulateSwapResult{}, err
		}

		if liquidity.IsZero() {
			// nothing to trade against until the next initialized tick
			sqrtPrice = limit.sqrtPrice.Clone()
		} else {
			step, err := maths.ComputeSwapStep(sqrtPrice, limit.sqrtPrice, liquidity, remaining, byAmountIn, fee)
			if err != nil {
				return SimulateSwapResult{}, err
			}
			gross := new(uint256.Int).Add(step.AmountIn, step.FeeAmount)
			used := step.AmountOut
			if byAmountIn {
				used = gross
			}
			if used.Gt(remaining) {
				used = remaining
			}
			progressed := !step.NextSqrtPrice.Eq(sqrtPrice) || !used.IsZero()

			remaining.Sub(remaining, used)
			result.AmountIn.Add(result.AmountIn, gross)
			result.AmountOut.Add(result.AmountOut, step.AmountOut)
			result.Fee.Add(result.Fee, step.FeeAmount)
			sqrtPrice = step.NextSqrtPrice
			if !progressed && !sqrtPrice.Eq(limit.sqrtPrice) {
				break
			}
		}

		if sqrtPrice.Eq(sqrtPriceLimit) && !remaining.IsZero() {
			return SimulateSwapResult{}, errorsmod.Wrapf(ErrPriceLimitReached, "%s left to swap", remaining)
		}

		if limit.hasTick && sqrtPrice.Eq(limit.sqrtPrice) {
			enough := true
			if !liquidity.IsZero() {
				enough, err = maths.IsEnoughAmountToChangePrice(remaining, sqrtPrice, liquidity, fee, byAmountIn, xToY)
				if err != nil {
					return SimulateSwapResult{}, err
				}
			}
			if limit.initialized {
				if !xToY || enough {
					if err := crossTick(liquidity, limit.change, xToY); err != nil {
						return SimulateSwapResult{}, err
					}
					result.CrossedTicks = append(result.CrossedTicks, limit.change)
				} else if !remaining.IsZero() {
					// the leftover cannot move the price any more and is kept as fee
					if byAmountIn {
						result.AmountIn.Add(result.AmountIn, remaining)
					}
					remaining.Clear()
				}
				crossed++
			}
			if xToY && enough {
				currentTick = limit.tick - int32(spacing)
			} else {
				currentTick = limit.tick
			}
		} else {
			currentTick, err = maths.GetTickAtSqrtPrice(sqrtPrice, spacing)
			if err != nil {
				return SimulateSwapResult{}, err
			}
		}

		if crossed > maths.GetMaxTickCross() {
			return SimulateSwapResult{}, errorsmod.Wrapf(ErrMaxTicksCrossed, "crossed %d ticks", crossed)
		}
	}

	if result.AmountOut.IsZero() {
		return SimulateSwapResult{}, ErrNoGainSwap
	}
	result.TargetSqrtPrice = sqrtPrice
	result.CurrentTick = currentTick
	return result, nil
}

func checkPriceLimit(current, limit *uint256.Int, xToY bool) error {
	if limit == nil {
		return errorsmod.Wrap(ErrWrongPriceLimit, "missing sqrt price limit")
	}
	if xToY {
		if !current.Gt(limit) || limit.Lt(maths.GetGlobalMinSqrtPrice()) {
			return errorsmod.Wrapf(ErrWrongPriceLimit, "limit %s must be in [min, %s) when swapping x to y", limit, current)
		}
		return nil
	}
	if !current.Lt(limit) || limit.Gt(maths.GetGlobalMaxSqrtPrice()) {
		return errorsmod.Wrapf(ErrWrongPriceLimit, "limit %s must be in (%s, max] when swapping y to x", limit, current)
	}
	return nil
}

// closerLimit returns whichever comes first in the swap direction: the next
// initialized tick, the search range boundary or the caller's price limit.
func closerLimit(ticks []models.LiquidityTick, priceLimit *uint256.Int, xToY bool, currentTick int32, spacing uint16) (swapLimit, error) {
	limit := swapLimit{hasTick: true}
	if xToY {
		searchLimit := maths.GetSearchLimit(currentTick, spacing, false)
		// last tick with index <= currentTick
		i := sort.Search(len(ticks), func(i int) bool { return ticks[i].Index > currentTick }) - 1
		if i >= 0 && ticks[i].Index >= searchLimit {
			limit.tick, limit.initialized, limit.change = ticks[i].Index, true, ticks[i]
		} else {
			limit.tick = searchLimit
		}
	} else {
		searchLimit := maths.GetSearchLimit(currentTick, spacing, true)
		i := sort.Search(len(ticks), func(i int) bool { return ticks[i].Index > currentTick })
		if i < len(ticks) && ticks[i].Index <= searchLimit {
			limit.tick, limit.initialized, limit.change = ticks[i].Index, true, ticks[i]
		} else {
			limit.tick = searchLimit
		}
	}

	tickPrice, err := maths.CalculateSqrtPrice(limit.tick)
	if err != nil {
		return swapLimit{}, err
	}
	if (xToY && tickPrice.Gt(priceLimit)) || (!xToY && tickPrice.Lt(priceLimit)) {
		limit.sqrtPrice = tickPrice
		return limit, nil
	}
	return swapLimit{sqrtPrice: priceLimit.Clone()}, nil
}

// crossTick applies the liquidity change of an initialized tick. Moving up
// through a tick with a positive sign adds liquidity, moving down removes it.
func crossTick(liquidity *uint256.Int, tick models.LiquidityTick, xToY bool) error {
	if tick.LiquidityChange == nil {
		return nil
	}
	if xToY != tick.Sign {
		liquidity.Add(liquidity, tick.LiquidityChange)
		return nil
	}
	if liquidity.Lt(tick.LiquidityChange) {
		return errorsmod.Wrapf(ErrInsufficientTicks, "crossing tick %d removes %s from %s", tick.Index, tick.LiquidityChange, liquidity)
	}
	liquidity.Sub(liquidity, tick.LiquidityChange)
	return nil
}
