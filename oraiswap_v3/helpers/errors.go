package helpers

import (
	errorsmod "cosmossdk.io/errors"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/maths"
)

var (
	ErrZeroAmount        = errorsmod.Register(maths.Codespace, 10, "amount is zero")
	ErrWrongPriceLimit   = errorsmod.Register(maths.Codespace, 11, "wrong sqrt price limit")
	ErrPriceLimitReached = errorsmod.Register(maths.Codespace, 12, "price limit reached")
	ErrMaxTicksCrossed   = errorsmod.Register(maths.Codespace, 13, "too many ticks crossed")
	ErrNoGainSwap        = errorsmod.Register(maths.Codespace, 14, "swap yields no output")
	ErrInsufficientTicks = errorsmod.Register(maths.Codespace, 15, "tick list does not match pool state")
	ErrAmbiguousPoolKey  = errorsmod.Register(maths.Codespace, 16, "pool key splits into more than one token pair")
)
