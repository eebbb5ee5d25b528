package planner_test

import (
	"testing"

	"github.com/zeebo/assert"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/planner"
)

func TestConvertAddress(t *testing.T) {
	converter := planner.NewAddressConverter(testChains())

	tests := []struct {
		name    string
		chainID string
		want    string
	}{
		{"same chain", planner.OraichainChainID, oraiSender},
		{"cosmos hub", "cosmoshub-4", cosmosUser},
		{"osmosis", planner.OsmosisChainID, osmoReceiver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := converter.ConvertAddress(oraiSender, tt.chainID)
			assert.NoError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestConvertAddressErrors(t *testing.T) {
	converter := planner.NewAddressConverter(testChains())

	_, err := converter.ConvertAddress(oraiSender, "juno-1")
	assert.Error(t, err)

	_, err = converter.ConvertAddress("orai1notanaddress", "cosmoshub-4")
	assert.Error(t, err)

	prefix, ok := converter.GetPrefix(planner.OsmosisChainID)
	assert.True(t, ok)
	assert.Equal(t, prefix, "osmo")
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		chainID string
		want    planner.ChainKind
	}{
		{"Oraichain", planner.ChainKindOraichain},
		{"osmosis-1", planner.ChainKindOsmosis},
		{"0x38", planner.ChainKindEvm},
		{"noble-1", planner.ChainKindCosmos},
	}

	for _, tt := range tests {
		t.Run(tt.chainID, func(t *testing.T) {
			assert.Equal(t, planner.KindOf(tt.chainID), tt.want)
		})
	}

	kind, err := planner.ParseChainKind("Osmosis")
	assert.NoError(t, err)
	assert.Equal(t, kind, planner.ChainKindOsmosis)

	_, err = planner.ParseChainKind("solana")
	assert.Error(t, err)
}
