package route

import (
	"encoding/json"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

// ActionType tags the variant of an Action
type ActionType string

const (
	ActionTypeSwap   ActionType = "Swap"
	ActionTypeBridge ActionType = "Bridge"
)

// IBCTransferPort is the port of the plain ICS-20 transfer module
const IBCTransferPort = "transfer"

// SwapInfo is one pool hop of a Swap action
type SwapInfo struct {
	PoolID   string `json:"poolId"`
	TokenOut string `json:"tokenOut"`
}

// BridgeInfo is the IBC channel end a Bridge action sends through
type BridgeInfo struct {
	Port    string `json:"port"`
	Channel string `json:"channel"`
}

// IsWasmPort reports whether the port belongs to a CosmWasm IBC contract (cw-ics20)
func (b BridgeInfo) IsWasmPort() bool {
	return strings.HasPrefix(b.Port, "wasm.")
}

// WasmContract returns the contract address encoded in a "wasm.<contract>" port
func (b BridgeInfo) WasmContract() string {
	return strings.TrimPrefix(b.Port, "wasm.")
}

// Action is a tagged union: a Swap carries SwapInfo, a Bridge carries BridgeInfo.
type Action struct {
	Type            ActionType  `json:"type"`
	Protocol        string      `json:"protocol"`
	TokenIn         string      `json:"tokenIn"`
	TokenInAmount   sdkmath.Int `json:"tokenInAmount"`
	TokenOut        string      `json:"tokenOut"`
	TokenOutAmount  sdkmath.Int `json:"tokenOutAmount"`
	TokenOutChainID string      `json:"tokenOutChainId"`
	SwapInfo        []SwapInfo  `json:"swapInfo,omitempty"`
	BridgeInfo      *BridgeInfo `json:"bridgeInfo,omitempty"`
}

// UnmarshalJSON rejects unknown action types and variants missing their payload
func (a *Action) UnmarshalJSON(data []byte) error {
	type rawAction Action
	var raw rawAction
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	action := Action(raw)
	if err := action.Validate(); err != nil {
		return err
	}
	*a = action
	return nil
}

// Validate checks that the variant payload matches the type tag
func (a Action) Validate() error {
	switch a.Type {
	case ActionTypeSwap:
		if len(a.SwapInfo) == 0 {
			return errorsmod.Wrap(ErrRouteShape, "swap action without swapInfo")
		}
		for i, hop := range a.SwapInfo {
			if hop.PoolID == "" || hop.TokenOut == "" {
				return errorsmod.Wrapf(ErrRouteShape, "swap hop %d needs poolId and tokenOut", i)
			}
		}
		if a.BridgeInfo != nil {
			return errorsmod.Wrap(ErrRouteShape, "swap action must not carry bridgeInfo")
		}
	case ActionTypeBridge:
		if a.BridgeInfo == nil {
			return errorsmod.Wrap(ErrRouteShape, "bridge action without bridgeInfo")
		}
		if len(a.SwapInfo) != 0 {
			return errorsmod.Wrap(ErrRouteShape, "bridge action must not carry swapInfo")
		}
	default:
		return errorsmod.Wrapf(ErrUnknownActionType, "%q", a.Type)
	}
	return nil
}

// Path is the part of a route executed by one transaction on ChainID
type Path struct {
	ChainID         string      `json:"chainId"`
	TokenIn         string      `json:"tokenIn"`
	TokenInAmount   sdkmath.Int `json:"tokenInAmount"`
	TokenOut        string      `json:"tokenOut"`
	TokenOutAmount  sdkmath.Int `json:"tokenOutAmount"`
	TokenOutChainID string      `json:"tokenOutChainId"`
	Actions         []Action    `json:"actions"`
}

// Route is one candidate produced by the smart router
type Route struct {
	SwapAmount   sdkmath.Int `json:"swapAmount"`
	ReturnAmount sdkmath.Int `json:"returnAmount"`
	Paths        []Path      `json:"paths"`
}

// Response is the smart router answer for a single quote
type Response struct {
	SwapAmount   sdkmath.Int `json:"swapAmount"`
	ReturnAmount sdkmath.Int `json:"returnAmount"`
	Routes       []Route     `json:"routes"`
}

// Shape classifies the actions of a path
type Shape int

const (
	ShapeSwapOnly Shape = iota + 1
	ShapeBridgeOnly
	ShapeSwapThenBridge
)

func (s Shape) String() string {
	switch s {
	case ShapeSwapOnly:
		return "SwapOnly"
	case ShapeBridgeOnly:
		return "BridgeOnly"
	case ShapeSwapThenBridge:
		return "SwapThenBridge"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// Classify validates the action order of a path: any number of swaps
// followed by at most one bridge, which must come last.
func (p Path) Classify() (Shape, error) {
	if len(p.Actions) == 0 {
		return 0, errorsmod.Wrapf(ErrRouteShape, "path on %s has no actions", p.ChainID)
	}
	swaps := 0
	for i, action := range p.Actions {
		if err := action.Validate(); err != nil {
			return 0, errorsmod.Wrapf(err, "action %d on %s", i, p.ChainID)
		}
		switch action.Type {
		case ActionTypeSwap:
			swaps++
		case ActionTypeBridge:
			if i != len(p.Actions)-1 {
				return 0, errorsmod.Wrapf(ErrRouteShape, "bridge must be the last action on %s", p.ChainID)
			}
		}
	}
	switch {
	case swaps == len(p.Actions):
		return ShapeSwapOnly, nil
	case swaps == 0:
		return ShapeBridgeOnly, nil
	default:
		return ShapeSwapThenBridge, nil
	}
}

// LastBridge returns the trailing Bridge action of the path, if any
func (p Path) LastBridge() (Action, bool) {
	if len(p.Actions) == 0 {
		return Action{}, false
	}
	last := p.Actions[len(p.Actions)-1]
	return last, last.Type == ActionTypeBridge && last.BridgeInfo != nil
}

// Swaps returns the Swap actions of the path in execution order
func (p Path) Swaps() []Action {
	var swaps []Action
	for _, action := range p.Actions {
		if action.Type == ActionTypeSwap {
			swaps = append(swaps, action)
		}
	}
	return swaps
}

// BridgeMsgInfo describes the transfer leaving a path's chain
type BridgeMsgInfo struct {
	Amount        sdkmath.Int `json:"amount"`
	SourceChannel string      `json:"sourceChannel"`
	SourcePort    string      `json:"sourcePort"`
	Memo          string      `json:"memo"`
	Receiver      string      `json:"receiver"`
	Timeout       uint64      `json:"timeout"`
	FromToken     string      `json:"fromToken"`
	ToToken       string      `json:"toToken"`
	FromChain     string      `json:"fromChain"`
	ToChain       string      `json:"toChain"`
}

// BridgeMsgInfo builds the transfer descriptor from the last Bridge action of
// the path. ok is false when the path does not end with a bridge.
func (p Path) BridgeMsgInfo(receiver, memo string, timeout uint64) (BridgeMsgInfo, bool) {
	bridge, ok := p.LastBridge()
	if !ok {
		return BridgeMsgInfo{}, false
	}
	return BridgeMsgInfo{
		Amount:        bridge.TokenInAmount,
		SourceChannel: bridge.BridgeInfo.Channel,
		SourcePort:    bridge.BridgeInfo.Port,
		Memo:          memo,
		Receiver:      receiver,
		Timeout:       timeout,
		FromToken:     bridge.TokenIn,
		ToToken:       bridge.TokenOut,
		FromChain:     p.ChainID,
		ToChain:       bridge.TokenOutChainID,
	}, true
}
