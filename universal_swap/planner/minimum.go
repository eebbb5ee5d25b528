package planner

import (
	sdkmath "cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/helpers"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/maths"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/builders"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
)

type minimumSource string

const (
	sourceNone minimumSource = ""
	// every hop was replayed against a pool snapshot
	sourceSimulated minimumSource = "simulated"
	// at least one hop used the router quote
	sourceQuoted minimumSource = "quoted"
	// no usable amount, the builder placeholder is used
	sourceDefault minimumSource = "default"
)

// minimumReceive is the min_asset amount for the swaps of path
func (p *Planner) minimumReceive(path route.Path) (string, minimumSource) {
	swaps := path.Swaps()
	if len(swaps) == 0 {
		return builders.DefaultMinimumReceive, sourceNone
	}

	expected, source := p.expectedOutput(path.ChainID, swaps)
	if source == sourceDefault {
		return builders.DefaultMinimumReceive, source
	}
	minimum, err := builders.CalculateMinReceive(expected, p.settings.SlippageBps)
	if err != nil {
		log.Warn().Err(err).Str("chainId", path.ChainID).Msg("Falling back to default minimum receive")
		return builders.DefaultMinimumReceive, sourceDefault
	}
	return builders.MinimumReceiveString(minimum), source
}

// expectedOutput chains the swap actions, replaying Oraichain v3 hops when a
// snapshot is available and taking the router quote otherwise.
func (p *Planner) expectedOutput(chainID string, swaps []route.Action) (sdkmath.Int, minimumSource) {
	source := sourceSimulated
	amount := swaps[0].TokenInAmount
	for _, action := range swaps {
		out, ok := p.simulateAction(chainID, action, amount)
		if !ok {
			source = sourceQuoted
			out = action.TokenOutAmount
		}
		if out.IsNil() || !out.IsPositive() {
			return sdkmath.Int{}, sourceDefault
		}
		amount = out
	}
	return amount, source
}

func (p *Planner) simulateAction(chainID string, action route.Action, amountIn sdkmath.Int) (sdkmath.Int, bool) {
	if p.pools == nil || p.chain(chainID).Kind != ChainKindOraichain {
		return sdkmath.Int{}, false
	}
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return sdkmath.Int{}, false
	}
	amount, overflow := uint256.FromBig(amountIn.BigInt())
	if overflow {
		return sdkmath.Int{}, false
	}

	denomIn := action.TokenIn
	for _, hop := range action.SwapInfo {
		key, err := helpers.ParsePoolKey(hop.PoolID)
		if err != nil {
			// v2 pair contracts have no snapshot
			return sdkmath.Int{}, false
		}
		snapshot, ok := p.pools.Snapshot(key)
		if !ok {
			return sdkmath.Int{}, false
		}

		var xToY bool
		switch {
		case denomIn == key.TokenX && hop.TokenOut == key.TokenY:
			xToY = true
		case denomIn == key.TokenY && hop.TokenOut == key.TokenX:
			xToY = false
		default:
			log.Warn().Str("pool", hop.PoolID).Str("denomIn", denomIn).Msg("Hop does not match its pool tokens")
			return sdkmath.Int{}, false
		}
		limit := maths.GetGlobalMaxSqrtPrice()
		if xToY {
			limit = maths.GetGlobalMinSqrtPrice()
		}

		result, err := helpers.SimulateSwap(snapshot.PoolWithPoolKey, snapshot.Ticks, xToY, amount, true, limit)
		if err != nil {
			log.Debug().Err(err).Str("pool", hop.PoolID).Msg("Swap simulation failed, using router quote")
			return sdkmath.Int{}, false
		}
		amount = result.AmountOut
		denomIn = hop.TokenOut
	}
	return sdkmath.NewIntFromBigInt(amount.ToBig()), true
}
