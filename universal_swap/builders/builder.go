// Package builders lowers a single route.Path into the message its chain
// executes and into the memo the previous chain has to attach so that the
// transfer arriving here continues the route.
package builders

import (
	"time"

	errorsmod "cosmossdk.io/errors"

	ibcmemo "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/ibc_memo"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/msgs"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
)

const (
	// DefaultMinimumReceive is the min_asset placeholder used when no minimum was computed
	DefaultMinimumReceive = "1"

	DefaultIBCTimeout          = time.Hour
	DefaultForwardTimeout      = 10 * time.Minute
	DefaultWasmTransferTimeout = time.Hour
)

// Options carries the timeouts stamped into the generated messages
type Options struct {
	// TimeoutTimestamp is the absolute timeout in unix nanoseconds
	TimeoutTimestamp    uint64
	ForwardTimeout      time.Duration
	ForwardRetries      int
	WasmTransferTimeout time.Duration
}

// DefaultOptions returns options with every timeout counted from now
func DefaultOptions(now time.Time) Options {
	return Options{
		TimeoutTimestamp:    uint64(now.Add(DefaultIBCTimeout).UnixNano()),
		ForwardTimeout:      DefaultForwardTimeout,
		ForwardRetries:      ibcmemo.DefaultForwardRetries,
		WasmTransferTimeout: DefaultWasmTransferTimeout,
	}
}

// Params are the inputs every builder is created with
type Params struct {
	Path route.Path
	// MinimumReceive is the min_asset amount of the swap, DefaultMinimumReceive when empty
	MinimumReceive string
	// Receiver gets the funds once this path is done
	Receiver string
	// CurrentChainAddress is the user's address on the path's chain
	CurrentChainAddress string
	// NextMemo is the memo the outgoing transfer carries to the next chain
	NextMemo string
	// EntryPoint overrides the chain's default entry point contract
	EntryPoint string
	Options    Options
}

// Middleware is what the previous chain needs to hand the funds to this path:
// the transfer receiver and the memo to attach.
type Middleware struct {
	Memo     string `json:"memo"`
	Receiver string `json:"receiver"`
}

// MsgBuilder is implemented by every chain family
type MsgBuilder interface {
	GenMemoAsMiddleware() (Middleware, error)
	GenExecuteMsg() (msgs.EncodeObject, error)
}

var (
	_ MsgBuilder = (*CosmosMsg)(nil)
	_ MsgBuilder = (*OsmosisMsg)(nil)
	_ MsgBuilder = (*OraichainMsg)(nil)
)

func (p Params) minimumReceive() string {
	if p.MinimumReceive == "" {
		return DefaultMinimumReceive
	}
	return p.MinimumReceive
}

func (p Params) entryPoint(fallback string) string {
	if p.EntryPoint == "" {
		return fallback
	}
	return p.EntryPoint
}

// swapOperations flattens the hops of every Swap action, chaining denom_in
// through the hop outputs.
func swapOperations(path route.Path) []ibcmemo.SwapOperation {
	var ops []ibcmemo.SwapOperation
	for _, action := range path.Swaps() {
		denomIn := action.TokenIn
		for _, hop := range action.SwapInfo {
			ops = append(ops, ibcmemo.NewSwapOperation(hop.PoolID, denomIn, hop.TokenOut, nil))
			denomIn = hop.TokenOut
		}
	}
	return ops
}

// ibcTransferAction is the post swap action for a plain ICS-20 bridge
func ibcTransferAction(p Params, bridge *route.BridgeInfo) (*ibcmemo.PostSwapAction, error) {
	if bridge.Channel == "" || bridge.Port == "" {
		return nil, errorsmod.Wrapf(route.ErrMissingPostAction, "bridge on %s has no channel or port", p.Path.ChainID)
	}
	return ibcmemo.NewIBCTransferAction(bridge.Channel, p.Receiver, p.NextMemo, p.CurrentChainAddress), nil
}

// forwardMiddleware builds the PFM memo for a bridge-only path
func forwardMiddleware(p Params, bridge *route.BridgeInfo) (Middleware, error) {
	forward, err := ibcmemo.NewPFMForward(
		p.Receiver,
		bridge.Port,
		bridge.Channel,
		p.Options.ForwardTimeout.Nanoseconds(),
		p.Options.ForwardRetries,
		p.NextMemo,
	)
	if err != nil {
		return Middleware{}, errorsmod.Wrapf(route.ErrMissingPostAction, "%s: %v", p.Path.ChainID, err)
	}
	memo, err := forward.ToJSON()
	if err != nil {
		return Middleware{}, err
	}
	return Middleware{Memo: memo, Receiver: p.CurrentChainAddress}, nil
}

// transferMsg turns the path's bridge descriptor into the ICS-20 transfer
// signed by the current chain address.
func transferMsg(p Params) (msgs.EncodeObject, error) {
	info, ok := p.Path.BridgeMsgInfo(p.Receiver, p.NextMemo, p.Options.TimeoutTimestamp)
	if !ok {
		return msgs.EncodeObject{}, errorsmod.Wrapf(route.ErrMissingPostAction, "%s: path does not end with a bridge", p.Path.ChainID)
	}
	return msgs.NewEncodeObject(&msgs.MsgTransfer{
		SourcePort:       info.SourcePort,
		SourceChannel:    info.SourceChannel,
		Token:            msgs.NewCoin(info.FromToken, info.Amount),
		Sender:           p.CurrentChainAddress,
		Receiver:         info.Receiver,
		TimeoutTimestamp: info.Timeout,
		Memo:             info.Memo,
	}), nil
}
