package builders

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	ibcmemo "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/ibc_memo"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/msgs"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
)

const (
	// OraichainEntryPoint is the universal swap entry point contract on Oraichain
	OraichainEntryPoint    = "orai13mgxn93pjvd7eermj4ghet8assxdqttxugwk25rasuuqq2g5nczq43eesn"
	OraichainSwapVenueName = "oraidex"
)

// cw20SendMsg hands cw20 tokens to a contract together with a hook message
type cw20SendMsg struct {
	Send cw20Send `json:"send"`
}

type cw20Send struct {
	Contract string `json:"contract"`
	Amount   string `json:"amount"`
	// Msg is base64 encoded JSON
	Msg string `json:"msg"`
}

// OraichainMsg builds messages for Oraichain: swaps on OraiDEX v2 pairs or v3
// pools optionally followed by an ICS-20 or cw-ics20 bridge.
type OraichainMsg struct {
	params Params
}

func NewOraichainMsg(params Params) *OraichainMsg {
	return &OraichainMsg{params: params}
}

// EntryPoint returns the contract swap_and_action is sent to
func (o *OraichainMsg) EntryPoint() string {
	return o.params.entryPoint(OraichainEntryPoint)
}

func (o *OraichainMsg) GetSwapAndBridgeInfo() (SwapAndBridgeInfo, error) {
	return getSwapAndBridgeInfo(o.params.Path)
}

// isCw20 reports whether a token is a cw20 contract address rather than a native denom
func isCw20(token string) bool {
	_, err := ibcmemo.CanonicalAddress(token)
	return err == nil
}

// GetPostAction returns an ibc_wasm_transfer for cw-ics20 ports and an
// ibc_transfer for the transfer port.
func (o *OraichainMsg) GetPostAction(bridge *route.Action) (*ibcmemo.PostSwapAction, error) {
	if bridge == nil || bridge.BridgeInfo == nil {
		return ibcmemo.NewTransferAction(o.params.Receiver), nil
	}
	info := bridge.BridgeInfo
	switch {
	case info.IsWasmPort():
		if info.Channel == "" {
			return nil, errorsmod.Wrapf(route.ErrMissingPostAction, "bridge on %s has no channel", o.params.Path.ChainID)
		}
		return ibcmemo.NewIBCWasmTransferAction(
			info.Channel,
			o.params.Receiver,
			bridge.TokenOut,
			uint64(o.params.Options.WasmTransferTimeout.Seconds()),
			o.params.NextMemo,
		), nil
	case info.Port == route.IBCTransferPort:
		return ibcTransferAction(o.params, info)
	default:
		return nil, errorsmod.Wrapf(route.ErrRouteShape, "unsupported port %s on %s", info.Port, o.params.Path.ChainID)
	}
}

func (o *OraichainMsg) minAsset(denom string) *ibcmemo.MinAsset {
	if isCw20(denom) {
		return ibcmemo.NewCw20MinAsset(denom, o.params.minimumReceive())
	}
	return ibcmemo.NewMinAsset(denom, o.params.minimumReceive())
}

func (o *OraichainMsg) swapAndAction(info SwapAndBridgeInfo) (*ibcmemo.WasmMsg, error) {
	userSwap, err := ibcmemo.NewUserSwap(OraichainSwapVenueName, info.Operations)
	if err != nil {
		return nil, errorsmod.Wrapf(route.ErrRouteShape, "%s: %v", o.params.Path.ChainID, err)
	}
	postAction, err := o.GetPostAction(info.Bridge)
	if err != nil {
		return nil, err
	}
	return ibcmemo.NewWasmMsg(ibcmemo.NewSwapAndAction(
		userSwap,
		o.minAsset(info.DenomOut()),
		o.params.Options.TimeoutTimestamp,
		postAction,
	)), nil
}

// GenMemoAsMiddleware returns the memo an incoming transfer needs to continue
// on Oraichain: an ibc-hooks wasm memo when the path swaps, a binary
// IbcWasmMemo for a cw-ics20 bridge and a PFM forward otherwise.
func (o *OraichainMsg) GenMemoAsMiddleware() (Middleware, error) {
	info, err := o.GetSwapAndBridgeInfo()
	if err != nil {
		return Middleware{}, err
	}

	if len(info.Operations) > 0 {
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

	bridge := info.Bridge.BridgeInfo
	if bridge.IsWasmPort() {
		if bridge.Channel == "" {
			return Middleware{}, errorsmod.Wrapf(route.ErrMissingPostAction, "bridge on %s has no channel", o.params.Path.ChainID)
		}
		memo := ibcmemo.ParseToIbcWasmMemo(o.params.Receiver, bridge.Channel, info.Bridge.TokenOut)
		return Middleware{Memo: memo, Receiver: o.params.CurrentChainAddress}, nil
	}
	return NewCosmosMsg(o.params).GenMemoAsMiddleware()
}

// GenExecuteInstruction returns the contract call that starts the route on
// Oraichain. A bridge over the transfer port is not a contract call.
func (o *OraichainMsg) GenExecuteInstruction() (msgs.ExecuteInstruction, error) {
	info, err := o.GetSwapAndBridgeInfo()
	if err != nil {
		return msgs.ExecuteInstruction{}, err
	}

	if len(info.Operations) > 0 {
		msg, err := o.swapAndAction(info)
		if err != nil {
			return msgs.ExecuteInstruction{}, err
		}
		first := o.params.Path.Swaps()[0]
		return o.instruction(o.EntryPoint(), first.TokenIn, first.TokenInAmount, msg)
	}

	bridge := info.Bridge
	if !bridge.BridgeInfo.IsWasmPort() {
		return msgs.ExecuteInstruction{}, errorsmod.Wrapf(route.ErrRouteShape,
			"port %s on %s is not a contract", bridge.BridgeInfo.Port, o.params.Path.ChainID)
	}
	postAction, err := o.GetPostAction(bridge)
	if err != nil {
		return msgs.ExecuteInstruction{}, err
	}
	transfer := ibcmemo.TransferToRemoteMsg{TransferToRemote: postAction.IBCWasmTransfer.IBCWasmInfo}
	return o.instruction(bridge.BridgeInfo.WasmContract(), bridge.TokenIn, bridge.TokenInAmount, transfer)
}

// instruction executes msg on contract with the input attached as funds, or
// through a cw20 send when the input is a cw20 token.
func (o *OraichainMsg) instruction(contract, tokenIn string, amount sdkmath.Int, msg any) (msgs.ExecuteInstruction, error) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return msgs.ExecuteInstruction{}, fmt.Errorf("failed to encode execute msg: %w", err)
	}
	if !isCw20(tokenIn) {
		return msgs.ExecuteInstruction{
			ContractAddress: contract,
			Msg:             raw,
			Funds:           []msgs.Coin{msgs.NewCoin(tokenIn, amount)},
		}, nil
	}

	send, err := json.Marshal(cw20SendMsg{Send: cw20Send{
		Contract: contract,
		Amount:   amount.String(),
		Msg:      base64.StdEncoding.EncodeToString(raw),
	}})
	if err != nil {
		return msgs.ExecuteInstruction{}, fmt.Errorf("failed to encode cw20 send: %w", err)
	}
	return msgs.ExecuteInstruction{ContractAddress: tokenIn, Msg: send, Funds: []msgs.Coin{}}, nil
}

// GenExecuteMsg wraps GenExecuteInstruction in a MsgExecuteContract, or
// returns a MsgTransfer for a bridge over the transfer port.
func (o *OraichainMsg) GenExecuteMsg() (msgs.EncodeObject, error) {
	info, err := o.GetSwapAndBridgeInfo()
	if err != nil {
		return msgs.EncodeObject{}, err
	}
	if len(info.Operations) == 0 && !info.Bridge.BridgeInfo.IsWasmPort() {
		return NewCosmosMsg(o.params).GenExecuteMsg()
	}
	instruction, err := o.GenExecuteInstruction()
	if err != nil {
		return msgs.EncodeObject{}, err
	}
	return msgs.NewEncodeObject(instruction.ToMsgExecuteContract(o.params.CurrentChainAddress)), nil
}
