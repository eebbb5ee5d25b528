package cli

import (
	"context"
	"os"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/builders"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/config"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/planner"
)

// defaultChains is used when no chain registry is configured
func defaultChains() []planner.Chain {
	return []planner.Chain{
		{
			ChainID:            planner.OraichainChainID,
			Kind:               planner.ChainKindOraichain,
			Bech32Prefix:       "orai",
			EntryPointContract: builders.OraichainEntryPoint,
			NativeDenom:        "orai",
		},
		{
			ChainID:            planner.OsmosisChainID,
			Kind:               planner.ChainKindOsmosis,
			Bech32Prefix:       "osmo",
			EntryPointContract: builders.OsmosisEntryPoint,
			NativeDenom:        "uosmo",
		},
		{ChainID: "cosmoshub-4", Kind: planner.ChainKindCosmos, Bech32Prefix: "cosmos", NativeDenom: "uatom"},
		{ChainID: "noble-1", Kind: planner.ChainKindCosmos, Bech32Prefix: "noble", NativeDenom: "uusdc"},
		{ChainID: "injective-1", Kind: planner.ChainKindCosmos, Bech32Prefix: "inj", NativeDenom: "inj"},
		{ChainID: "celestia", Kind: planner.ChainKindCosmos, Bech32Prefix: "celestia", NativeDenom: "utia"},
		{ChainID: "0x01", Kind: planner.ChainKindEvm, NativeDenom: "eth"},
		{ChainID: "0x38", Kind: planner.ChainKindEvm, NativeDenom: "bnb"},
	}
}

// loadChains fetches the registry at src, falling back to defaultChains
func loadChains(ctx context.Context, src string) ([]planner.Chain, error) {
	if src == "" {
		log.Debug().Msg("No chain registry configured, using built-in chains")
		return defaultChains(), nil
	}
	dir, err := os.MkdirTemp("", "oraidex-registry-")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	chains, err := config.NewChainRegistryLoader().Fetch(ctx, src, dir)
	if err != nil {
		return nil, err
	}
	log.Info().Str("src", src).Int("chains", len(chains)).Msg("Loaded chain registry")
	return chains, nil
}

// loadPools fetches pool snapshots from src. A nil result means no pool source.
func loadPools(ctx context.Context, src string) (*planner.StaticPools, error) {
	if src == "" {
		return nil, nil
	}
	dir, err := os.MkdirTemp("", "oraidex-pools-")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	pools, err := config.LoadPoolSnapshots(ctx, src, dir)
	if err != nil {
		return nil, err
	}
	log.Info().Str("src", src).Int("pools", pools.Len()).Msg("Loaded pool snapshots")
	return pools, nil
}

func orDefault(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}
