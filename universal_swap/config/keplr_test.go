package config_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeebo/assert"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/builders"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/config"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/planner"
)

const keplrOraichain = `{
	"chainId": "Oraichain",
	"chainName": "Oraichain",
	"bech32Config": {"bech32PrefixAccAddr": "orai", "bech32PrefixValAddr": "oraivaloper"},
	"stakeCurrency": {"coinDenom": "ORAI", "coinMinimalDenom": "orai", "coinDecimals": 6},
	"feeCurrencies": [{"coinDenom": "ORAI", "coinMinimalDenom": "orai", "coinDecimals": 6}]
}`

const keplrNoble = `{
	"chainId": "noble-1",
	"chainName": "Noble",
	"bech32Config": {"bech32PrefixAccAddr": "noble"},
	"feeCurrencies": [{"coinDenom": "USDC", "coinMinimalDenom": "uusdc", "coinDecimals": 6}]
}`

func keplrDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "cosmos")
	assert.NoError(t, os.Mkdir(dir, 0o755))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "oraichain.json"), []byte(keplrOraichain), 0o600))
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "noble.json"), []byte(keplrNoble), 0o600))
	return dir
}

func TestImportKeplrRegistry(t *testing.T) {
	src := keplrDir(t)

	registry, err := config.ImportKeplrRegistry(context.Background(), src, t.TempDir(), []string{"oraichain", "noble"})
	assert.NoError(t, err)
	assert.DeepEqual(t, registry.Chains, []config.RegistryChain{
		{
			ChainID:            "Oraichain",
			Kind:               "oraichain",
			Bech32Prefix:       "orai",
			EntryPointContract: builders.OraichainEntryPoint,
			NativeDenom:        "orai",
		},
		{ChainID: "noble-1", Kind: "cosmos", Bech32Prefix: "noble", NativeDenom: "uusdc"},
	})

	// the written toml loads back into planner chains
	var buf bytes.Buffer
	assert.NoError(t, config.WriteRegistry(&buf, registry))
	path := filepath.Join(t.TempDir(), "registry.toml")
	assert.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	chains, err := config.NewChainRegistryLoader().LoadFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, len(chains), 2)
	assert.Equal(t, chains[0].Kind, planner.ChainKindOraichain)
	assert.Equal(t, chains[0].EntryPointContract, builders.OraichainEntryPoint)
	assert.Equal(t, chains[1].EntryPointContract, "")
}

func TestImportKeplrRegistryErrors(t *testing.T) {
	src := keplrDir(t)

	_, err := config.ImportKeplrRegistry(context.Background(), src, t.TempDir(), nil)
	assert.Error(t, err)

	_, err = config.ImportKeplrRegistry(context.Background(), src, t.TempDir(), []string{"juno"})
	assert.Error(t, err)

	_, err = config.ImportKeplrRegistry(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir(), []string{"noble"})
	assert.Error(t, err)
}

func TestConvertKeplrChain(t *testing.T) {
	entry, err := config.ConvertKeplrChain(config.KeplrChain{
		ChainID:       "osmosis-1",
		Bech32Config:  config.KeplrBech32{Bech32PrefixAccAddr: "osmo"},
		StakeCurrency: &config.KeplrCurrency{CoinMinimalDenom: "uosmo"},
	})
	assert.NoError(t, err)
	assert.Equal(t, entry.Kind, "osmosis")
	assert.Equal(t, entry.EntryPointContract, builders.OsmosisEntryPoint)
	assert.Equal(t, entry.NativeDenom, "uosmo")

	_, err = config.ConvertKeplrChain(config.KeplrChain{ChainID: "osmosis-1"})
	var validation *config.ValidationError
	assert.True(t, errors.As(err, &validation))
	assert.Equal(t, validation.Field, "bech32Config.bech32PrefixAccAddr")

	_, err = config.ConvertKeplrChain(config.KeplrChain{})
	assert.True(t, errors.As(err, &validation))
	assert.Equal(t, validation.Field, "chainId")
}
