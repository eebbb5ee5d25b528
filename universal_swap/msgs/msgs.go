// Package msgs holds the chain messages a plan is made of. The structs here
// are the JSON view a signing client consumes; the wire encoding is done by
// the generated ibc-go, cosmos-sdk and wasmd types.
package msgs

import (
	"encoding/json"
	"fmt"

	sdkmath "cosmossdk.io/math"
	wasmtypes "github.com/CosmWasm/wasmd/x/wasm/types"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/gogoproto/proto"
	transfertypes "github.com/cosmos/ibc-go/v8/modules/apps/transfer/types"
	clienttypes "github.com/cosmos/ibc-go/v8/modules/core/02-client/types"
)

const (
	TypeURLMsgTransfer        = "/ibc.applications.transfer.v1.MsgTransfer"
	TypeURLMsgExecuteContract = "/cosmwasm.wasm.v1.MsgExecuteContract"
)

// Msg is a chain message that can be packed into an Any
type Msg interface {
	TypeURL() string
	ProtoMsg() (proto.Message, error)
}

// EncodeObject is the {typeUrl, value} pair a signing client broadcasts
type EncodeObject struct {
	TypeURL string `json:"typeUrl"`
	Value   Msg    `json:"value"`
}

// NewEncodeObject wraps msg with its type url
func NewEncodeObject(msg Msg) EncodeObject {
	return EncodeObject{TypeURL: msg.TypeURL(), Value: msg}
}

// ToAny packs the message into a cosmos-sdk Any
func (e EncodeObject) ToAny() (*codectypes.Any, error) {
	if e.Value == nil {
		return nil, fmt.Errorf("encode object %s has no value", e.TypeURL)
	}
	msg, err := e.Value.ProtoMsg()
	if err != nil {
		return nil, err
	}
	packed, err := codectypes.NewAnyWithValue(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", e.TypeURL, err)
	}
	if packed.TypeUrl != e.TypeURL {
		return nil, fmt.Errorf("encode object type url %s does not match %s", e.TypeURL, packed.TypeUrl)
	}
	return packed, nil
}

func marshal(msg Msg) ([]byte, error) {
	pb, err := msg.ProtoMsg()
	if err != nil {
		return nil, err
	}
	return proto.Marshal(pb)
}

// Coin is an amount of a single denom
type Coin struct {
	Denom  string      `json:"denom"`
	Amount sdkmath.Int `json:"amount"`
}

func NewCoin(denom string, amount sdkmath.Int) Coin {
	return Coin{Denom: denom, Amount: amount}
}

func (c Coin) String() string {
	return c.amount().String() + c.Denom
}

func (c Coin) amount() sdkmath.Int {
	if c.Amount.IsNil() {
		return sdkmath.ZeroInt()
	}
	return c.Amount
}

// Validate rejects empty denoms and negative amounts
func (c Coin) Validate() error {
	if c.Denom == "" {
		return fmt.Errorf("coin denom is empty")
	}
	if c.amount().IsNegative() {
		return fmt.Errorf("coin %s is negative", c)
	}
	return nil
}

// SDKCoin converts to the cosmos-sdk coin without checking the denom format
func (c Coin) SDKCoin() sdk.Coin {
	return sdk.Coin{Denom: c.Denom, Amount: c.amount()}
}

// Height is an IBC client height
type Height struct {
	RevisionNumber uint64 `json:"revisionNumber"`
	RevisionHeight uint64 `json:"revisionHeight"`
}

// MsgTransfer is the ICS-20 transfer message
type MsgTransfer struct {
	SourcePort       string `json:"sourcePort"`
	SourceChannel    string `json:"sourceChannel"`
	Token            Coin   `json:"token"`
	Sender           string `json:"sender"`
	Receiver         string `json:"receiver"`
	TimeoutHeight    Height `json:"timeoutHeight"`
	TimeoutTimestamp uint64 `json:"timeoutTimestamp"`
	Memo             string `json:"memo"`
}

func (m *MsgTransfer) TypeURL() string { return TypeURLMsgTransfer }

// ProtoMsg converts to ibc.applications.transfer.v1.MsgTransfer
func (m *MsgTransfer) ProtoMsg() (proto.Message, error) {
	if err := m.Token.Validate(); err != nil {
		return nil, err
	}
	return &transfertypes.MsgTransfer{
		SourcePort:       m.SourcePort,
		SourceChannel:    m.SourceChannel,
		Token:            m.Token.SDKCoin(),
		Sender:           m.Sender,
		Receiver:         m.Receiver,
		TimeoutHeight:    clienttypes.NewHeight(m.TimeoutHeight.RevisionNumber, m.TimeoutHeight.RevisionHeight),
		TimeoutTimestamp: m.TimeoutTimestamp,
		Memo:             m.Memo,
	}, nil
}

func (m *MsgTransfer) Marshal() ([]byte, error) { return marshal(m) }

// MsgExecuteContract calls a CosmWasm contract
type MsgExecuteContract struct {
	Sender   string          `json:"sender"`
	Contract string          `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
	Funds    []Coin          `json:"funds"`
}

func (m *MsgExecuteContract) TypeURL() string { return TypeURLMsgExecuteContract }

// ProtoMsg converts to cosmwasm.wasm.v1.MsgExecuteContract. Funds keep
// their order.
func (m *MsgExecuteContract) ProtoMsg() (proto.Message, error) {
	if !json.Valid(m.Msg) {
		return nil, fmt.Errorf("contract msg is not valid JSON")
	}
	funds := make(sdk.Coins, 0, len(m.Funds))
	for _, coin := range m.Funds {
		if err := coin.Validate(); err != nil {
			return nil, err
		}
		funds = append(funds, coin.SDKCoin())
	}
	return &wasmtypes.MsgExecuteContract{
		Sender:   m.Sender,
		Contract: m.Contract,
		Msg:      wasmtypes.RawContractMessage(m.Msg),
		Funds:    funds,
	}, nil
}

func (m *MsgExecuteContract) Marshal() ([]byte, error) { return marshal(m) }

// ExecuteInstruction is a contract call that is not yet bound to a sender
type ExecuteInstruction struct {
	ContractAddress string          `json:"contractAddress"`
	Msg             json.RawMessage `json:"msg"`
	Funds           []Coin          `json:"funds"`
}

// ToMsgExecuteContract binds the instruction to sender
func (e ExecuteInstruction) ToMsgExecuteContract(sender string) *MsgExecuteContract {
	return &MsgExecuteContract{
		Sender:   sender,
		Contract: e.ContractAddress,
		Msg:      e.Msg,
		Funds:    e.Funds,
	}
}
