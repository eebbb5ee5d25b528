package ibcmemo

import (
	"encoding/json"
	"fmt"
)

// DefaultForwardRetries is the retry count put into every PFM forward
const DefaultForwardRetries = 2

// ForwardMemo wraps a packet forward middleware hop.
type ForwardMemo struct {
	Forward *PFMForward `json:"forward"`
}

// PFMForward is one hop of packet forward middleware. Next is the memo the
// forwarded packet carries, kept raw so that any memo kind can follow.
type PFMForward struct {
	Receiver string `json:"receiver"`
	Port     string `json:"port"`
	Channel  string `json:"channel"`
	// nanoseconds
	Timeout int64           `json:"timeout,omitempty"`
	Retries int             `json:"retries"`
	Next    json.RawMessage `json:"next,omitempty"`
}

// WasmMemo triggers an ibc-hooks contract call on arrival.
type WasmMemo struct {
	Wasm *WasmData `json:"wasm"`
}

type WasmData struct {
	Contract string   `json:"contract"`
	Msg      *WasmMsg `json:"msg"`
}

// WasmMsg is the execute message of the entry point contract
type WasmMsg struct {
	SwapAndAction *SwapAndAction `json:"swap_and_action"`
}

// SwapAndAction swaps the received funds and then runs PostSwapAction with
// the output, reverting when the output is below MinAsset.
type SwapAndAction struct {
	UserSwap         *UserSwap       `json:"user_swap"`
	MinAsset         *MinAsset       `json:"min_asset"`
	TimeoutTimestamp uint64          `json:"timeout_timestamp"`
	PostSwapAction   *PostSwapAction `json:"post_swap_action"`
	Affiliates       []Affiliate     `json:"affiliates"`
}

// Affiliate takes BasisPointsFee of the output
type Affiliate struct {
	BasisPointsFee string `json:"basis_points_fee"`
	Address        string `json:"address"`
}

type UserSwap struct {
	SwapExactAssetIn *SwapExactAssetIn `json:"swap_exact_asset_in"`
}

type SwapExactAssetIn struct {
	SwapVenueName string          `json:"swap_venue_name"`
	Operations    []SwapOperation `json:"operations"`
}

// SwapOperation is a hop through one pool
type SwapOperation struct {
	Pool      string  `json:"pool"`
	DenomIn   string  `json:"denom_in"`
	DenomOut  string  `json:"denom_out"`
	Interface *string `json:"interface,omitempty"`
}

// MinAsset holds either a native or a cw20 amount, never both.
type MinAsset struct {
	Native *Asset     `json:"native,omitempty"`
	Cw20   *Cw20Asset `json:"cw20,omitempty"`
}

type Asset struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type Cw20Asset struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

// PostSwapActionKind names the variant set in a PostSwapAction
type PostSwapActionKind string

const (
	PostSwapTransfer        PostSwapActionKind = "transfer"
	PostSwapIBCTransfer     PostSwapActionKind = "ibc_transfer"
	PostSwapIBCWasmTransfer PostSwapActionKind = "ibc_wasm_transfer"
)

// PostSwapAction is a tagged union: exactly one field is set.
type PostSwapAction struct {
	Transfer        *Transfer        `json:"transfer,omitempty"`
	IBCTransfer     *IBCTransfer     `json:"ibc_transfer,omitempty"`
	IBCWasmTransfer *IBCWasmTransfer `json:"ibc_wasm_transfer,omitempty"`
}

// Kind reports the variant that is set
func (p *PostSwapAction) Kind() (PostSwapActionKind, error) {
	if p == nil {
		return "", fmt.Errorf("post swap action is nil")
	}
	var kinds []PostSwapActionKind
	if p.Transfer != nil {
		kinds = append(kinds, PostSwapTransfer)
	}
	if p.IBCTransfer != nil {
		kinds = append(kinds, PostSwapIBCTransfer)
	}
	if p.IBCWasmTransfer != nil {
		kinds = append(kinds, PostSwapIBCWasmTransfer)
	}
	if len(kinds) != 1 {
		return "", fmt.Errorf("post swap action must have exactly one variant, got %v", kinds)
	}
	return kinds[0], nil
}

// Transfer is a bank send on the chain the swap ran on
type Transfer struct {
	ToAddress string `json:"to_address"`
}

type IBCTransfer struct {
	IBCInfo *IBCInfo `json:"ibc_info"`
}

// IBCInfo is an ICS-20 transfer out of the swap chain. Funds go back to
// RecoverAddress when the transfer fails.
type IBCInfo struct {
	SourceChannel  string `json:"source_channel"`
	Receiver       string `json:"receiver"`
	Memo           string `json:"memo"`
	RecoverAddress string `json:"recover_address"`
}

type IBCWasmTransfer struct {
	IBCWasmInfo *IBCWasmInfo `json:"ibc_wasm_info"`
}

// IBCWasmInfo has the fields of the cw-ics20 transfer_to_remote message.
// Timeout is in seconds.
type IBCWasmInfo struct {
	LocalChannelID string `json:"local_channel_id"`
	RemoteAddress  string `json:"remote_address"`
	RemoteDenom    string `json:"remote_denom"`
	Timeout        uint64 `json:"timeout,omitempty"`
	Memo           string `json:"memo,omitempty"`
}

// TransferToRemoteMsg executes a cw-ics20 contract directly
type TransferToRemoteMsg struct {
	TransferToRemote *IBCWasmInfo `json:"transfer_to_remote"`
}

func marshalString(v any) (string, error) {
	bz, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(bz), nil
}

func (m *ForwardMemo) ToJSON() (string, error) { return marshalString(m) }

func (m *WasmMemo) ToJSON() (string, error) { return marshalString(m) }

// ToJSON renders the bare execute message, as sent in a MsgExecuteContract
func (m *WasmMsg) ToJSON() (string, error) { return marshalString(m) }

// ToJSON renders the hop wrapped in a ForwardMemo
func (f *PFMForward) ToJSON() (string, error) {
	return (&ForwardMemo{Forward: f}).ToJSON()
}
