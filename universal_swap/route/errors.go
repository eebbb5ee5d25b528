package route

import errorsmod "cosmossdk.io/errors"

const Codespace = "universal_swap"

var (
	// ErrRouteShape marks a path whose actions the target chain cannot execute.
	ErrRouteShape = errorsmod.Register(Codespace, 2, "unsupported route shape")
	// ErrMissingPostAction marks bridge info that cannot be turned into a post swap action.
	ErrMissingPostAction = errorsmod.Register(Codespace, 3, "missing postAction")
	ErrUnknownActionType = errorsmod.Register(Codespace, 4, "unknown action type")
	ErrInvalidAddress    = errorsmod.Register(Codespace, 5, "invalid account address")
)
