package planner

import (
	"fmt"

	ibcmemo "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/ibc_memo"
)

// AddressConverter derives the address an account has on each registered
// cosmos chain. All chains are assumed to share the account key.
type AddressConverter struct {
	prefixes map[string]string
}

func NewAddressConverter(chains []Chain) *AddressConverter {
	c := &AddressConverter{prefixes: make(map[string]string, len(chains))}
	for _, chain := range chains {
		if chain.Bech32Prefix == "" {
			continue
		}
		c.prefixes[chain.ChainID] = chain.Bech32Prefix
	}
	return c
}

// ConvertAddress re-encodes the canonical bytes of address with the prefix of chainID
func (c *AddressConverter) ConvertAddress(address string, chainID string) (string, error) {
	prefix, ok := c.prefixes[chainID]
	if !ok {
		return "", fmt.Errorf("no bech32 prefix registered for %s", chainID)
	}
	canonical, err := ibcmemo.CanonicalAddress(address)
	if err != nil {
		return "", err
	}
	return ibcmemo.HumanAddress(prefix, canonical)
}

func (c *AddressConverter) GetPrefix(chainID string) (string, bool) {
	prefix, ok := c.prefixes[chainID]
	return prefix, ok
}
