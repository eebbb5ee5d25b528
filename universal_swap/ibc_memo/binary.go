package ibcmemo

import (
	"encoding/base64"

	errorsmod "cosmossdk.io/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// IbcWasmMemo is read by the cw-ics20 contract on Oraichain to forward an
// incoming transfer. Field numbers are part of the wire format:
//
//	message IbcWasmMemo {
//	  string destination_receiver = 1;
//	  string destination_channel = 2;
//	  string destination_denom = 3;
//	}
type IbcWasmMemo struct {
	DestinationReceiver string `json:"destination_receiver"`
	DestinationChannel  string `json:"destination_channel"`
	DestinationDenom    string `json:"destination_denom"`
}

// IbcHooksMemo is read by the ibc-hooks universal swap contract:
//
//	message IbcHooksMemo {
//	  bytes receiver = 1;
//	  string destination_receiver = 2;
//	  string destination_channel = 3;
//	  string destination_denom = 4;
//	}
type IbcHooksMemo struct {
	Receiver            []byte `json:"receiver"`
	DestinationReceiver string `json:"destination_receiver"`
	DestinationChannel  string `json:"destination_channel"`
	DestinationDenom    string `json:"destination_denom"`
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// Marshal encodes the memo in protobuf wire format
func (m IbcWasmMemo) Marshal() []byte {
	var b []byte
	b = appendString(b, 1, m.DestinationReceiver)
	b = appendString(b, 2, m.DestinationChannel)
	b = appendString(b, 3, m.DestinationDenom)
	return b
}

// Unmarshal decodes protobuf wire format, skipping unknown fields
func (m *IbcWasmMemo) Unmarshal(b []byte) error {
	*m = IbcWasmMemo{}
	return consumeFields(b, func(num protowire.Number, v []byte) {
		switch num {
		case 1:
			m.DestinationReceiver = string(v)
		case 2:
			m.DestinationChannel = string(v)
		case 3:
			m.DestinationDenom = string(v)
		}
	})
}

// Marshal encodes the memo in protobuf wire format
func (m IbcHooksMemo) Marshal() []byte {
	var b []byte
	b = appendBytes(b, 1, m.Receiver)
	b = appendString(b, 2, m.DestinationReceiver)
	b = appendString(b, 3, m.DestinationChannel)
	b = appendString(b, 4, m.DestinationDenom)
	return b
}

// Unmarshal decodes protobuf wire format, skipping unknown fields
func (m *IbcHooksMemo) Unmarshal(b []byte) error {
	*m = IbcHooksMemo{}
	return consumeFields(b, func(num protowire.Number, v []byte) {
		switch num {
		case 1:
			m.Receiver = append([]byte(nil), v...)
		case 2:
			m.DestinationReceiver = string(v)
		case 3:
			m.DestinationChannel = string(v)
		case 4:
			m.DestinationDenom = string(v)
		}
	})
}

// consumeFields walks the message and hands every length-delimited field to fn
func consumeFields(b []byte, fn func(protowire.Number, []byte)) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errorsmod.Wrapf(ErrEncoding, "invalid tag: %v", protowire.ParseError(n))
		}
		b = b[n:]
		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errorsmod.Wrapf(ErrEncoding, "invalid field %d: %v", num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return errorsmod.Wrapf(ErrEncoding, "invalid field %d: %v", num, protowire.ParseError(n))
		}
		fn(num, v)
		b = b[n:]
	}
	return nil
}

// ParseToIbcWasmMemo returns the base64 encoded IbcWasmMemo
func ParseToIbcWasmMemo(destinationReceiver, destinationChannel, destinationDenom string) string {
	memo := IbcWasmMemo{
		DestinationReceiver: destinationReceiver,
		DestinationChannel:  destinationChannel,
		DestinationDenom:    destinationDenom,
	}
	return base64.StdEncoding.EncodeToString(memo.Marshal())
}

// DecodeIbcWasmMemo is the inverse of ParseToIbcWasmMemo
func DecodeIbcWasmMemo(encoded string) (IbcWasmMemo, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return IbcWasmMemo{}, errorsmod.Wrapf(ErrEncoding, "invalid base64: %v", err)
	}
	var memo IbcWasmMemo
	if err := memo.Unmarshal(raw); err != nil {
		return IbcWasmMemo{}, err
	}
	return memo, nil
}

// ParseToIbcHookMemo returns the base64 encoded IbcHooksMemo. The receiver is
// embedded in canonical form. currentAddress takes precedence when set.
func ParseToIbcHookMemo(receiver, currentAddress, destinationReceiver, destinationChannel, destinationDenom string) (string, error) {
	owner := receiver
	if currentAddress != "" {
		owner = currentAddress
	}
	canonical, err := CanonicalAddress(owner)
	if err != nil {
		return "", err
	}
	memo := IbcHooksMemo{
		Receiver:            canonical,
		DestinationReceiver: destinationReceiver,
		DestinationChannel:  destinationChannel,
		DestinationDenom:    destinationDenom,
	}
	return base64.StdEncoding.EncodeToString(memo.Marshal()), nil
}

// DecodeIbcHookMemo is the inverse of ParseToIbcHookMemo
func DecodeIbcHookMemo(encoded string) (IbcHooksMemo, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return IbcHooksMemo{}, errorsmod.Wrapf(ErrEncoding, "invalid base64: %v", err)
	}
	var memo IbcHooksMemo
	if err := memo.Unmarshal(raw); err != nil {
		return IbcHooksMemo{}, err
	}
	return memo, nil
}
