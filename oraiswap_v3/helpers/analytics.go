package helpers

import (
	"errors"
	"fmt"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/maths"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/models"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var percentageDenominator = uint256.NewInt(models.MaxFee)

// GetGlobalFee estimates the total swap fees a pool has collected in each token.
// The pool only tracks the protocol share, so the total is scaled back up by
// protocolFee (1e12 = 100%).
func GetGlobalFee(pool models.PoolWithPoolKey, protocolFee uint64) (maths.TokenAmounts, error) {
	if protocolFee == 0 {
		return maths.TokenAmounts{}, errors.New("protocol fee must be positive")
	}
	share := uint256.NewInt(protocolFee)

	x, err := scaleUp(pool.Pool.FeeProtocolTokenX, percentageDenominator, share)
	if err != nil {
		return maths.TokenAmounts{}, fmt.Errorf("failed to compute global fee x: %w", err)
	}
	y, err := scaleUp(pool.Pool.FeeProtocolTokenY, percentageDenominator, share)
	if err != nil {
		return maths.TokenAmounts{}, fmt.Errorf("failed to compute global fee y: %w", err)
	}
	return maths.TokenAmounts{X: x, Y: y}, nil
}

// GetVolume estimates the traded volume in each token from the protocol fee
// collected: volume = protocol_fee_amount / (protocolFee * pool fee).
func GetVolume(pool models.PoolWithPoolKey, protocolFee uint64) (maths.TokenAmounts, error) {
	fee := pool.PoolKey.FeeTier.Fee
	if protocolFee == 0 || fee == 0 {
		return maths.TokenAmounts{}, errors.New("protocol fee and pool fee must be positive")
	}
	denominator := new(uint256.Int).Mul(uint256.NewInt(protocolFee), uint256.NewInt(fee))
	numerator := new(uint256.Int).Mul(percentageDenominator, percentageDenominator)

	x, err := scaleUp(pool.Pool.FeeProtocolTokenX, numerator, denominator)
	if err != nil {
		return maths.TokenAmounts{}, fmt.Errorf("failed to compute volume x: %w", err)
	}
	y, err := scaleUp(pool.Pool.FeeProtocolTokenY, numerator, denominator)
	if err != nil {
		return maths.TokenAmounts{}, fmt.Errorf("failed to compute volume y: %w", err)
	}
	return maths.TokenAmounts{X: x, Y: y}, nil
}

func scaleUp(amount, numerator, denominator *uint256.Int) (*uint256.Int, error) {
	if amount == nil {
		return new(uint256.Int), nil
	}
	z, overflow := new(uint256.Int).MulDivOverflow(amount, numerator, denominator)
	if overflow {
		return nil, maths.ErrArithmeticOverflow
	}
	return z, nil
}

// GetUsdValue24 converts the growth of a cumulative token amount since lastTotal
// into a USD value. A total that went backwards (counter reset, stale snapshot)
// counts as zero.
func GetUsdValue24(total *uint256.Int, decimals int32, price decimal.Decimal, lastTotal *uint256.Int) decimal.Decimal {
	if total == nil || lastTotal == nil || !total.Gt(lastTotal) || price.IsNegative() {
		return decimal.Zero
	}
	delta := new(uint256.Int).Sub(total, lastTotal)
	amount := decimal.NewFromBigInt(delta.ToBig(), -decimals)
	return amount.Mul(price)
}
