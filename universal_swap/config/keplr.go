package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	getter "github.com/hashicorp/go-getter"
	"github.com/pelletier/go-toml/v2"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/builders"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/planner"
)

// KeplrRegistrySource is the cosmos directory of the keplr chain registry
const KeplrRegistrySource = "github.com/chainapsis/keplr-chain-registry//cosmos"

// KeplrChain is the part of a keplr chain registry entry the chain registry needs
type KeplrChain struct {
	ChainID       string          `json:"chainId"`
	ChainName     string          `json:"chainName"`
	Bech32Config  KeplrBech32     `json:"bech32Config"`
	StakeCurrency *KeplrCurrency  `json:"stakeCurrency"`
	FeeCurrencies []KeplrCurrency `json:"feeCurrencies"`
}

type KeplrBech32 struct {
	Bech32PrefixAccAddr string `json:"bech32PrefixAccAddr"`
}

type KeplrCurrency struct {
	CoinDenom        string `json:"coinDenom"`
	CoinMinimalDenom string `json:"coinMinimalDenom"`
	CoinDecimals     int    `json:"coinDecimals"`
}

// ImportKeplrRegistry downloads the keplr registry directory at src into dir
// and builds registry entries for the named files (osmosis, cosmoshub, ...).
func ImportKeplrRegistry(ctx context.Context, src, dir string, names []string) (*RegistryConfig, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("no chains to import")
	}
	pwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	dst := filepath.Join(dir, "keplr")
	client := getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeDir,
	}
	log.Info().Str("src", src).Msg("Downloading keplr registry")
	if err := client.Get(); err != nil {
		return nil, fmt.Errorf("failed to download keplr registry: %w", err)
	}

	registry := &RegistryConfig{Chains: make([]RegistryChain, 0, len(names))}
	for _, name := range names {
		chain, err := readKeplrChain(filepath.Join(dst, name+".json"))
		if err != nil {
			return nil, fmt.Errorf("chain %s: %w", name, err)
		}
		entry, err := ConvertKeplrChain(chain)
		if err != nil {
			return nil, fmt.Errorf("chain %s: %w", name, err)
		}
		registry.Chains = append(registry.Chains, entry)
	}
	return registry, nil
}

func readKeplrChain(path string) (KeplrChain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return KeplrChain{}, fmt.Errorf("failed to read keplr chain: %w", err)
	}
	var chain KeplrChain
	if err := json.Unmarshal(data, &chain); err != nil {
		return KeplrChain{}, fmt.Errorf("failed to unmarshal keplr chain: %w", err)
	}
	return chain, nil
}

// ConvertKeplrChain maps a keplr entry to a registry entry. The native denom is
// the stake currency, or the first fee currency for chains without staking.
// Oraichain and Osmosis get their universal swap entry points.
func ConvertKeplrChain(chain KeplrChain) (RegistryChain, error) {
	if chain.ChainID == "" {
		return RegistryChain{}, &ValidationError{Field: "chainId", Message: "is required"}
	}
	prefix := chain.Bech32Config.Bech32PrefixAccAddr
	if prefix == "" {
		return RegistryChain{}, &ValidationError{Field: "bech32Config.bech32PrefixAccAddr", Message: "is required"}
	}

	var denom string
	switch {
	case chain.StakeCurrency != nil && chain.StakeCurrency.CoinMinimalDenom != "":
		denom = chain.StakeCurrency.CoinMinimalDenom
	case len(chain.FeeCurrencies) > 0:
		denom = chain.FeeCurrencies[0].CoinMinimalDenom
	}

	kind := planner.KindOf(chain.ChainID)
	entry := RegistryChain{
		ChainID:      chain.ChainID,
		Kind:         string(kind),
		Bech32Prefix: prefix,
		NativeDenom:  denom,
	}
	switch kind {
	case planner.ChainKindOraichain:
		entry.EntryPointContract = builders.OraichainEntryPoint
	case planner.ChainKindOsmosis:
		entry.EntryPointContract = builders.OsmosisEntryPoint
	}
	return entry, nil
}

// WriteRegistry encodes registry as the toml LoadFromFile reads
func WriteRegistry(w io.Writer, registry *RegistryConfig) error {
	if err := toml.NewEncoder(w).Encode(registry); err != nil {
		return fmt.Errorf("failed to encode chain registry: %w", err)
	}
	return nil
}
