package ibcmemo

import (
	errorsmod "cosmossdk.io/errors"
	"github.com/btcsuite/btcutil/bech32"
)

// CanonicalAddress decodes a bech32 address into the raw bytes contracts store
func CanonicalAddress(address string) ([]byte, error) {
	_, data, err := bech32.Decode(address)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrEncoding, "failed to decode address %q: %v", address, err)
	}
	canonical, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return nil, errorsmod.Wrapf(ErrEncoding, "failed to convert address %q: %v", address, err)
	}
	return canonical, nil
}

// HumanAddress is the inverse of CanonicalAddress for the given prefix
func HumanAddress(prefix string, canonical []byte) (string, error) {
	data, err := bech32.ConvertBits(canonical, 8, 5, true)
	if err != nil {
		return "", errorsmod.Wrapf(ErrEncoding, "failed to convert address bytes: %v", err)
	}
	address, err := bech32.Encode(prefix, data)
	if err != nil {
		return "", errorsmod.Wrapf(ErrEncoding, "failed to encode address: %v", err)
	}
	return address, nil
}
