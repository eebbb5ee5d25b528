package ibcmemo

import (
	"encoding/json"
	"fmt"
	"slices"
)

// SwapVenueNames lists the venues the entry point contracts know about
var SwapVenueNames = []string{
	"osmosis-poolmanager",
	"oraidex",
}

func NewWasmMemo(contractAddress string, msg *WasmMsg) *WasmMemo {
	return &WasmMemo{
		Wasm: &WasmData{
			Contract: contractAddress,
			Msg:      msg,
		},
	}
}

func NewWasmMsg(swapAndAction *SwapAndAction) *WasmMsg {
	return &WasmMsg{SwapAndAction: swapAndAction}
}

func NewSwapAndAction(
	userSwap *UserSwap,
	minAsset *MinAsset,
	timeoutTimestamp uint64,
	postSwapAction *PostSwapAction,
) *SwapAndAction {
	return &SwapAndAction{
		UserSwap:         userSwap,
		MinAsset:         minAsset,
		TimeoutTimestamp: timeoutTimestamp,
		PostSwapAction:   postSwapAction,
		Affiliates:       []Affiliate{},
	}
}

func NewSwapOperation(
	pool string,
	denomIn string,
	denomOut string,
	interfaceValue *string) SwapOperation {
	return SwapOperation{
		Pool:      pool,
		DenomIn:   denomIn,
		DenomOut:  denomOut,
		Interface: interfaceValue,
	}
}

func NewUserSwap(
	swapVenueName string,
	operations []SwapOperation) (*UserSwap, error) {
	if !slices.Contains(SwapVenueNames, swapVenueName) {
		return nil, fmt.Errorf("invalid swap venue name: %s", swapVenueName)
	}
	if len(operations) == 0 {
		return nil, fmt.Errorf("no swap operations available")
	}
	return &UserSwap{
		SwapExactAssetIn: &SwapExactAssetIn{
			SwapVenueName: swapVenueName,
			Operations:    operations,
		},
	}, nil
}

func NewTransferAction(toAddress string) *PostSwapAction {
	return &PostSwapAction{
		Transfer: &Transfer{ToAddress: toAddress},
	}
}

func NewIBCTransferAction(sourceChannel, receiver, memo, recoverAddress string) *PostSwapAction {
	return &PostSwapAction{
		IBCTransfer: &IBCTransfer{
			IBCInfo: &IBCInfo{
				SourceChannel:  sourceChannel,
				Receiver:       receiver,
				Memo:           memo,
				RecoverAddress: recoverAddress,
			},
		},
	}
}

func NewIBCWasmTransferAction(localChannelID, remoteAddress, remoteDenom string, timeout uint64, memo string) *PostSwapAction {
	return &PostSwapAction{
		IBCWasmTransfer: &IBCWasmTransfer{
			IBCWasmInfo: &IBCWasmInfo{
				LocalChannelID: localChannelID,
				RemoteAddress:  remoteAddress,
				RemoteDenom:    remoteDenom,
				Timeout:        timeout,
				Memo:           memo,
			},
		},
	}
}

func NewMinAsset(denom, amount string) *MinAsset {
	return &MinAsset{
		Native: &Asset{
			Denom:  denom,
			Amount: amount,
		},
	}
}

func NewCw20MinAsset(contractAddress, amount string) *MinAsset {
	return &MinAsset{
		Cw20: &Cw20Asset{
			Address: contractAddress,
			Amount:  amount,
		},
	}
}

// NewPFMForward builds a forward. A next memo that is itself JSON is embedded as
// an object, anything else is carried as a JSON string.
func NewPFMForward(
	receiver,
	port,
	channel string,
	timeout int64,
	retries int,
	next string,
) (*PFMForward, error) {
	if retries < 0 {
		return nil, fmt.Errorf("retries must not be negative")
	}
	if timeout < 0 {
		return nil, fmt.Errorf("timeout must not be negative")
	}
	if receiver == "" || port == "" || channel == "" {
		return nil, fmt.Errorf("forward needs receiver, port and channel")
	}
	forward := &PFMForward{
		Receiver: receiver,
		Port:     port,
		Channel:  channel,
		Timeout:  timeout,
		Retries:  retries,
	}
	if next != "" {
		if next[0] == '{' && json.Valid([]byte(next)) {
			forward.Next = json.RawMessage(next)
		} else {
			quoted, err := json.Marshal(next)
			if err != nil {
				return nil, fmt.Errorf("failed to encode next memo: %w", err)
			}
			forward.Next = quoted
		}
	}
	return forward, nil
}

// NextMemo returns the memo carried in Next as a string, unwrapping JSON strings.
func (f *PFMForward) NextMemo() (string, error) {
	if len(f.Next) == 0 {
		return "", nil
	}
	if f.Next[0] == '"' {
		var s string
		if err := json.Unmarshal(f.Next, &s); err != nil {
			return "", fmt.Errorf("failed to decode next memo: %w", err)
		}
		return s, nil
	}
	return string(f.Next), nil
}
