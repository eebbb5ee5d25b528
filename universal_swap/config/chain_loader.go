package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	getter "github.com/hashicorp/go-getter"
	"github.com/pelletier/go-toml/v2"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/planner"
)

// ChainRegistryLoader loads chain registry files and converts them to the
// chains the planner works with.
type ChainRegistryLoader struct{}

func NewChainRegistryLoader() *ChainRegistryLoader {
	return &ChainRegistryLoader{}
}

// LoadFromFile reads a .json or .toml registry file
func (l *ChainRegistryLoader) LoadFromFile(filePath string) ([]planner.Chain, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read chain registry file: %w", err)
	}

	var registry RegistryConfig
	if strings.HasSuffix(filePath, ".json") {
		if err := json.Unmarshal(data, &registry); err != nil {
			return nil, fmt.Errorf("failed to parse JSON registry: %w", err)
		}
	} else {
		if err := toml.Unmarshal(data, &registry); err != nil {
			return nil, fmt.Errorf("failed to parse TOML registry: %w", err)
		}
	}

	return l.ConvertToPlannerTypes(&registry)
}

// Fetch downloads the registry at src (any go-getter source: path, http(s),
// s3, git::...) into dir and loads it.
func (l *ChainRegistryLoader) Fetch(ctx context.Context, src, dir string) ([]planner.Chain, error) {
	name := "registry.toml"
	if strings.HasSuffix(strings.SplitN(src, "?", 2)[0], ".json") {
		name = "registry.json"
	}
	dst := filepath.Join(dir, name)
	if err := fetchFile(ctx, src, dst); err != nil {
		return nil, fmt.Errorf("failed to fetch chain registry: %w", err)
	}
	return l.LoadFromFile(dst)
}

// LoadPoolSnapshots fetches a JSON array of pool snapshots into dir and indexes it
func LoadPoolSnapshots(ctx context.Context, src, dir string) (*planner.StaticPools, error) {
	dst := filepath.Join(dir, "pools.json")
	if err := fetchFile(ctx, src, dst); err != nil {
		return nil, fmt.Errorf("failed to fetch pool snapshots: %w", err)
	}
	f, err := os.Open(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool snapshots: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	return planner.LoadStaticPools(f)
}

func fetchFile(ctx context.Context, src, dst string) error {
	pwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	client := getter.Client{
		Ctx:  ctx,
		Src:  src,
		Dst:  dst,
		Pwd:  pwd,
		Mode: getter.ClientModeFile,
	}
	log.Debug().Str("src", src).Str("dst", dst).Msg("Fetching file")
	return client.Get()
}

// ConvertToPlannerTypes validates the registry entries and converts them
func (l *ChainRegistryLoader) ConvertToPlannerTypes(registry *RegistryConfig) ([]planner.Chain, error) {
	if registry == nil || len(registry.Chains) == 0 {
		return nil, fmt.Errorf("no chains in registry")
	}

	seen := make(map[string]bool, len(registry.Chains))
	chains := make([]planner.Chain, len(registry.Chains))
	for i, entry := range registry.Chains {
		if entry.ChainID == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("chains[%d].chain_id", i), Message: "is required"}
		}
		if seen[entry.ChainID] {
			return nil, &ValidationError{Field: fmt.Sprintf("chains[%d].chain_id", i), Message: fmt.Sprintf("duplicate chain %s", entry.ChainID)}
		}
		seen[entry.ChainID] = true

		kind := planner.KindOf(entry.ChainID)
		if entry.Kind != "" {
			parsed, err := planner.ParseChainKind(entry.Kind)
			if err != nil {
				return nil, &ValidationError{Field: fmt.Sprintf("chains[%d].kind", i), Message: err.Error()}
			}
			kind = parsed
		}
		if kind != planner.ChainKindEvm && entry.Bech32Prefix == "" {
			return nil, &ValidationError{Field: fmt.Sprintf("chains[%d].bech32_prefix", i), Message: "is required for cosmos chains"}
		}

		chains[i] = planner.Chain{
			ChainID:            entry.ChainID,
			Kind:               kind,
			Bech32Prefix:       entry.Bech32Prefix,
			EntryPointContract: entry.EntryPointContract,
			NativeDenom:        entry.NativeDenom,
		}
	}

	return chains, nil
}
