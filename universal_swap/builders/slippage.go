package builders

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"
)

// MaxSlippageBps is 100% in basis points
const MaxSlippageBps = 10000

// CalculateMinReceive applies a slippage tolerance to an expected output.
// slippageBps is basis points (e.g., 100 = 1%)
// minReceive = floor(expected * (10000 - slippageBps) / 10000)
func CalculateMinReceive(expectedOutput sdkmath.Int, slippageBps uint32) (sdkmath.Int, error) {
	if expectedOutput.IsNil() || expectedOutput.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("expected output must be a non negative amount")
	}
	if slippageBps > MaxSlippageBps {
		return sdkmath.Int{}, fmt.Errorf("slippage %d bps exceeds %d", slippageBps, MaxSlippageBps)
	}

	expected := decimal.NewFromBigInt(expectedOutput.BigInt(), 0)
	keep := decimal.New(int64(MaxSlippageBps-slippageBps), -4)
	minReceive := expected.Mul(keep).Floor()
	return sdkmath.NewIntFromBigInt(minReceive.BigInt()), nil
}

// MinimumReceiveString formats a minimum for min_asset. A zero minimum is
// replaced by DefaultMinimumReceive since the entry points reject zero.
func MinimumReceiveString(minReceive sdkmath.Int) string {
	if minReceive.IsNil() || !minReceive.IsPositive() {
		return DefaultMinimumReceive
	}
	return minReceive.String()
}
