package helpers

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/models"
	"github.com/holiman/uint256"
)

// RangeLiquidity is the active liquidity inside one virtual range
type RangeLiquidity struct {
	Range     models.VirtualRange `json:"range"`
	Liquidity *uint256.Int        `json:"liquidity"`
}

// sortedTicks returns a copy of ticks ordered by index
func sortedTicks(ticks []models.LiquidityTick) []models.LiquidityTick {
	sorted := slices.Clone(ticks)
	slices.SortFunc(sorted, func(a, b models.LiquidityTick) int {
		return cmp.Compare(a.Index, b.Index)
	})
	return sorted
}

// signedLiquidity accumulates signed tick deltas on an unsigned magnitude
type signedLiquidity struct {
	magnitude *uint256.Int
	negative  bool
}

func (s *signedLiquidity) apply(change *uint256.Int, add bool) {
	if change == nil || change.IsZero() {
		return
	}
	if s.negative == !add {
		s.magnitude.Add(s.magnitude, change)
		return
	}
	if !s.magnitude.Lt(change) {
		s.magnitude.Sub(s.magnitude, change)
	} else {
		s.magnitude.Sub(change, s.magnitude)
		s.negative = !s.negative
	}
	if s.magnitude.IsZero() {
		s.negative = false
	}
}

// CalculateLiquidityForRanges sweeps the tick deltas in index order and returns
// the liquidity active inside each range. A range takes the running sum of every
// change at or below its lower tick.
func CalculateLiquidityForRanges(changes []models.LiquidityTick, ranges []models.VirtualRange) ([]RangeLiquidity, error) {
	sorted := sortedTicks(changes)
	ordered := slices.Clone(ranges)
	slices.SortStableFunc(ordered, func(a, b models.VirtualRange) int {
		return cmp.Compare(a.LowerTick, b.LowerTick)
	})

	running := signedLiquidity{magnitude: new(uint256.Int)}
	next := 0
	result := make([]RangeLiquidity, 0, len(ordered))
	for _, r := range ordered {
		if r.LowerTick >= r.UpperTick {
			return nil, fmt.Errorf("invalid range [%d, %d]", r.LowerTick, r.UpperTick)
		}
		for next < len(sorted) && sorted[next].Index <= r.LowerTick {
			running.apply(sorted[next].LiquidityChange, sorted[next].Sign)
			next++
		}
		if running.negative {
			return nil, fmt.Errorf("negative liquidity %s at tick %d", running.magnitude, r.LowerTick)
		}
		result = append(result, RangeLiquidity{Range: r, Liquidity: running.magnitude.Clone()})
	}
	return result, nil
}

// GetVirtualRanges pairs consecutive initialized ticks into liquidity bands
func GetVirtualRanges(ticks []models.LiquidityTick) []models.VirtualRange {
	sorted := sortedTicks(ticks)
	if len(sorted) < 2 {
		return nil
	}
	ranges := make([]models.VirtualRange, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Index == sorted[i].Index {
			continue
		}
		ranges = append(ranges, models.VirtualRange{LowerTick: sorted[i-1].Index, UpperTick: sorted[i].Index})
	}
	return ranges
}

// CheckLiquiditySum verifies that the signed liquidity changes of a complete
// tick list cancel out.
func CheckLiquiditySum(ticks []models.LiquidityTick) error {
	sum := signedLiquidity{magnitude: new(uint256.Int)}
	for _, tick := range ticks {
		sum.apply(tick.LiquidityChange, tick.Sign)
	}
	if !sum.magnitude.IsZero() {
		sign := "+"
		if sum.negative {
			sign = "-"
		}
		return fmt.Errorf("liquidity changes do not cancel out: %s%s", sign, sum.magnitude)
	}
	return nil
}
