package maths

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/holiman/uint256"
	"lukechampine.com/uint128"
)

// mulDiv computes x*y/d with a 512-bit intermediate product.
func mulDiv(x, y, d *uint256.Int, roundUp bool) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, errorsmod.Wrap(ErrArithmeticOverflow, "division by zero")
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, errorsmod.Wrapf(ErrArithmeticOverflow, "%s * %s / %s does not fit 256 bits", x, y, d)
	}
	if roundUp && !new(uint256.Int).MulMod(x, y, d).IsZero() {
		if _, overflow = z.AddOverflow(z, one); overflow {
			return nil, errorsmod.Wrap(ErrArithmeticOverflow, "rounding up overflows 256 bits")
		}
	}
	return z, nil
}

func checkedAdd(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, errorsmod.Wrapf(ErrArithmeticOverflow, "%s + %s", x, y)
	}
	return z, nil
}

func checkedSub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, errorsmod.Wrapf(ErrArithmeticOverflow, "%s - %s underflows", x, y)
	}
	return z, nil
}

func checkedMul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, errorsmod.Wrapf(ErrArithmeticOverflow, "%s * %s", x, y)
	}
	return z, nil
}

// asU128 fails when the value needs more than 128 bits; what names the value in the error.
func asU128(x *uint256.Int, what string) (*uint256.Int, error) {
	if x.Gt(maxU128) {
		return nil, errorsmod.Wrapf(ErrArithmeticOverflow, "%s %s exceeds u128", what, x)
	}
	return x, nil
}

func absDiff(a, b *uint256.Int) *uint256.Int {
	if a.Gt(b) {
		return new(uint256.Int).Sub(a, b)
	}
	return new(uint256.Int).Sub(b, a)
}

func toUint128(x *uint256.Int) (uint128.Uint128, error) {
	if _, err := asU128(x, "value"); err != nil {
		return uint128.Zero, err
	}
	return uint128.New(x[0], x[1]), nil
}

func fromUint128(u uint128.Uint128) *uint256.Int {
	return &uint256.Int{u.Lo, u.Hi, 0, 0}
}

// orZero treats a missing JSON value as zero
func orZero(x *uint256.Int) *uint256.Int {
	if x == nil {
		return zero
	}
	return x
}
