package planner

import (
	"fmt"
	"strings"
)

// ChainKind selects the message builder used for a chain
type ChainKind string

const (
	ChainKindCosmos    ChainKind = "cosmos"
	ChainKindOsmosis   ChainKind = "osmosis"
	ChainKindOraichain ChainKind = "oraichain"
	ChainKindEvm       ChainKind = "evm"
)

const (
	OraichainChainID = "Oraichain"
	OsmosisChainID   = "osmosis-1"
)

// Chain is a registry entry the planner knows about
type Chain struct {
	ChainID            string
	Kind               ChainKind
	Bech32Prefix       string
	EntryPointContract string
	NativeDenom        string
}

// ParseChainKind accepts the kind names used in registry files
func ParseChainKind(s string) (ChainKind, error) {
	switch kind := ChainKind(strings.ToLower(s)); kind {
	case ChainKindCosmos, ChainKindOsmosis, ChainKindOraichain, ChainKindEvm:
		return kind, nil
	default:
		return "", fmt.Errorf("unknown chain kind %q", s)
	}
}

// KindOf guesses the kind of a chain that is not in the registry.
// EVM chains are identified by their hex chain ids.
func KindOf(chainID string) ChainKind {
	switch {
	case chainID == OraichainChainID:
		return ChainKindOraichain
	case chainID == OsmosisChainID:
		return ChainKindOsmosis
	case strings.HasPrefix(chainID, "0x"):
		return ChainKindEvm
	default:
		return ChainKindCosmos
	}
}
