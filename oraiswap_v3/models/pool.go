package models

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

const (
	// MaxFee is 100% expressed at the 1e12 percentage scale.
	MaxFee uint64 = 1_000_000_000_000
	// MaxTickSpacing is the largest tick spacing a fee tier may use.
	MaxTickSpacing uint16 = 100
)

var ErrSameTokens = errors.New("token x and token y must be different")

// FeeTier pairs a swap fee (1e12 = 100%) with the tick spacing of the pool grid
type FeeTier struct {
	Fee         uint64 `json:"fee" toml:"fee"`
	TickSpacing uint16 `json:"tick_spacing" toml:"tick_spacing"`
}

// NewFeeTier validates fee and spacing bounds
func NewFeeTier(fee uint64, tickSpacing uint16) (FeeTier, error) {
	tier := FeeTier{Fee: fee, TickSpacing: tickSpacing}
	if err := tier.Validate(); err != nil {
		return FeeTier{}, err
	}
	return tier, nil
}

func (f FeeTier) Validate() error {
	if f.Fee > MaxFee {
		return fmt.Errorf("fee %d exceeds %d", f.Fee, MaxFee)
	}
	if f.TickSpacing == 0 || f.TickSpacing > MaxTickSpacing {
		return fmt.Errorf("tick spacing must be between 1 and %d, got %d", MaxTickSpacing, f.TickSpacing)
	}
	return nil
}

// PoolKey identifies an oraiswap-v3 pool. TokenX always sorts before TokenY.
type PoolKey struct {
	TokenX  string  `json:"token_x"`
	TokenY  string  `json:"token_y"`
	FeeTier FeeTier `json:"fee_tier"`
}

// IsTokenX reports whether a would be stored as token_x of a pool made of a and b.
func IsTokenX(a, b string) bool {
	return a < b
}

// NewPoolKey orders the two tokens and validates the fee tier
func NewPoolKey(token0, token1 string, feeTier FeeTier) (PoolKey, error) {
	if token0 == token1 {
		return PoolKey{}, ErrSameTokens
	}
	if err := feeTier.Validate(); err != nil {
		return PoolKey{}, fmt.Errorf("invalid fee tier: %w", err)
	}
	if !IsTokenX(token0, token1) {
		token0, token1 = token1, token0
	}
	return PoolKey{TokenX: token0, TokenY: token1, FeeTier: feeTier}, nil
}

// Validate checks token order and the fee tier of a key built elsewhere (e.g. decoded JSON)
func (k PoolKey) Validate() error {
	if k.TokenX == "" || k.TokenY == "" {
		return errors.New("pool key tokens must not be empty")
	}
	if k.TokenX == k.TokenY {
		return ErrSameTokens
	}
	if !IsTokenX(k.TokenX, k.TokenY) {
		return fmt.Errorf("token %s must sort before %s", k.TokenX, k.TokenY)
	}
	return k.FeeTier.Validate()
}

// Pool is a read-only snapshot of the on-chain pool state as returned by the contract query.
type Pool struct {
	Liquidity         *uint256.Int `json:"liquidity"`
	SqrtPrice         *uint256.Int `json:"sqrt_price"`
	CurrentTickIndex  int32        `json:"current_tick_index"`
	FeeGrowthGlobalX  *uint256.Int `json:"fee_growth_global_x"`
	FeeGrowthGlobalY  *uint256.Int `json:"fee_growth_global_y"`
	FeeProtocolTokenX *uint256.Int `json:"fee_protocol_token_x"`
	FeeProtocolTokenY *uint256.Int `json:"fee_protocol_token_y"`
	StartTimestamp    uint64       `json:"start_timestamp"`
	LastTimestamp     uint64       `json:"last_timestamp"`
	FeeReceiver       string       `json:"fee_receiver"`
}

// PoolWithPoolKey is the pool snapshot shape of the `pools` query
type PoolWithPoolKey struct {
	Pool    Pool    `json:"pool"`
	PoolKey PoolKey `json:"pool_key"`
}

// Tick is the full per-tick state kept by the contract
type Tick struct {
	Index             int32        `json:"index"`
	Sign              bool         `json:"sign"`
	LiquidityChange   *uint256.Int `json:"liquidity_change"`
	LiquidityGross    *uint256.Int `json:"liquidity_gross"`
	SqrtPrice         *uint256.Int `json:"sqrt_price"`
	FeeGrowthOutsideX *uint256.Int `json:"fee_growth_outside_x"`
	FeeGrowthOutsideY *uint256.Int `json:"fee_growth_outside_y"`
	SecondsOutside    uint64       `json:"seconds_outside"`
}

// LiquidityTick is the compact tick shape of the `liquidity_ticks` query
type LiquidityTick struct {
	Index           int32        `json:"index"`
	LiquidityChange *uint256.Int `json:"liquidity_change"`
	Sign            bool         `json:"sign"`
}

// Position is a liquidity provider stake together with its fee checkpoints
type Position struct {
	PoolKey          PoolKey      `json:"pool_key"`
	Liquidity        *uint256.Int `json:"liquidity"`
	LowerTickIndex   int32        `json:"lower_tick_index"`
	UpperTickIndex   int32        `json:"upper_tick_index"`
	FeeGrowthInsideX *uint256.Int `json:"fee_growth_inside_x"`
	FeeGrowthInsideY *uint256.Int `json:"fee_growth_inside_y"`
	LastBlockNumber  uint64       `json:"last_block_number"`
	TokensOwedX      *uint256.Int `json:"tokens_owed_x"`
	TokensOwedY      *uint256.Int `json:"tokens_owed_y"`
}

// VirtualRange is a liquidity band between two consecutive initialized ticks
type VirtualRange struct {
	LowerTick int32 `json:"lower_tick"`
	UpperTick int32 `json:"upper_tick"`
}
