package builders

import (
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"

	ibcmemo "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/ibc_memo"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/msgs"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
)

const (
	// OsmosisEntryPoint is the ibc-hooks entry point contract on osmosis-1
	OsmosisEntryPoint    = "osmo10a3k4hvk37cc4hnxctw4p95fhscd2z6h2rmx0aukc6rm8u9qqx9smfsh7u"
	OsmosisSwapVenueName = "osmosis-poolmanager"
)

// SwapAndBridgeInfo splits a path into its swap operations and the optional
// trailing bridge.
type SwapAndBridgeInfo struct {
	Operations []ibcmemo.SwapOperation
	// Bridge is the trailing Bridge action, nil when the path ends with a swap
	Bridge *route.Action
}

// DenomOut is the output denom of the last swap operation
func (s SwapAndBridgeInfo) DenomOut() string {
	if len(s.Operations) == 0 {
		return ""
	}
	return s.Operations[len(s.Operations)-1].DenomOut
}

func getSwapAndBridgeInfo(path route.Path) (SwapAndBridgeInfo, error) {
	if _, err := path.Classify(); err != nil {
		return SwapAndBridgeInfo{}, err
	}
	info := SwapAndBridgeInfo{Operations: swapOperations(path)}
	if bridge, ok := path.LastBridge(); ok {
		info.Bridge = &bridge
	}
	return info, nil
}

// OsmosisMsg builds messages for Osmosis: swaps through the poolmanager
// optionally followed by one bridge.
type OsmosisMsg struct {
	params Params
}

func NewOsmosisMsg(params Params) *OsmosisMsg {
	return &OsmosisMsg{params: params}
}

// EntryPoint returns the contract swap_and_action is sent to
func (o *OsmosisMsg) EntryPoint() string {
	return o.params.entryPoint(OsmosisEntryPoint)
}

func (o *OsmosisMsg) GetSwapAndBridgeInfo() (SwapAndBridgeInfo, error) {
	return getSwapAndBridgeInfo(o.params.Path)
}

// GetPostAction returns what the entry point does with the swap output
func (o *OsmosisMsg) GetPostAction(bridgeInfo *route.BridgeInfo) (*ibcmemo.PostSwapAction, error) {
	if bridgeInfo == nil {
		return ibcmemo.NewTransferAction(o.params.Receiver), nil
	}
	if bridgeInfo.Port != route.IBCTransferPort {
		return nil, errorsmod.Wrapf(route.ErrRouteShape,
			"only support IBC bridge on %s, got port %s", o.params.Path.ChainID, bridgeInfo.Port)
	}
	return ibcTransferAction(o.params, bridgeInfo)
}

func (o *OsmosisMsg) swapAndAction(info SwapAndBridgeInfo) (*ibcmemo.WasmMsg, error) {
	userSwap, err := ibcmemo.NewUserSwap(OsmosisSwapVenueName, info.Operations)
	if err != nil {
		return nil, errorsmod.Wrapf(route.ErrRouteShape, "%s: %v", o.params.Path.ChainID, err)
	}
	var bridgeInfo *route.BridgeInfo
	if info.Bridge != nil {
		bridgeInfo = info.Bridge.BridgeInfo
	}
	postAction, err := o.GetPostAction(bridgeInfo)
	if err != nil {
		return nil, err
	}
	return ibcmemo.NewWasmMsg(ibcmemo.NewSwapAndAction(
		userSwap,
		ibcmemo.NewMinAsset(info.DenomOut(), o.params.minimumReceive()),
		o.params.Options.TimeoutTimestamp,
		postAction,
	)), nil
}

// GenMemoAsMiddleware returns an ibc-hooks wasm memo calling swap_and_action
// on the entry point. A path without swaps falls back to a PFM forward.
func (o *OsmosisMsg) GenMemoAsMiddleware() (Middleware, error) {
	info, err := o.GetSwapAndBridgeInfo()
	if err != nil {
		return Middleware{}, err
	}
	if len(info.Operations) == 0 {
		return NewCosmosMsg(o.params).GenMemoAsMiddleware()
	}

	msg, err := o.swapAndAction(info)
	if err != nil {
		return Middleware{}, err
	}
	memo, err := ibcmemo.NewWasmMemo(o.EntryPoint(), msg).ToJSON()
	if err != nil {
		return Middleware{}, fmt.Errorf("failed to encode wasm memo: %w", err)
	}
	return Middleware{Memo: memo, Receiver: o.EntryPoint()}, nil
}

// GenExecuteMsg returns a MsgExecuteContract on the entry point when the path
// swaps, else a MsgTransfer.
func (o *OsmosisMsg) GenExecuteMsg() (msgs.EncodeObject, error) {
	info, err := o.GetSwapAndBridgeInfo()
	if err != nil {
		return msgs.EncodeObject{}, err
	}
	if len(info.Operations) == 0 {
		return NewCosmosMsg(o.params).GenExecuteMsg()
	}

	msg, err := o.swapAndAction(info)
	if err != nil {
		return msgs.EncodeObject{}, err
	}
	raw, err := json.Marshal(msg)
	if err != nil {
		return msgs.EncodeObject{}, fmt.Errorf("failed to encode swap_and_action: %w", err)
	}
	first := o.params.Path.Swaps()[0]
	return msgs.NewEncodeObject(&msgs.MsgExecuteContract{
		Sender:   o.params.CurrentChainAddress,
		Contract: o.EntryPoint(),
		Msg:      raw,
		Funds:    []msgs.Coin{msgs.NewCoin(first.TokenIn, first.TokenInAmount)},
	}), nil
}
