package maths

import errorsmod "cosmossdk.io/errors"

const Codespace = "oraiswap_v3"

var (
	ErrTickBounds         = errorsmod.Register(Codespace, 2, "tick out of bounds")
	ErrArithmeticOverflow = errorsmod.Register(Codespace, 3, "arithmetic overflow")
)
