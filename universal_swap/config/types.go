package config

import "fmt"

// Settings are the CLI and planner settings, read from a toml file or from
// ORAIDEX_* environment variables.
type Settings struct {
	// planner configs
	SlippageBps                uint32 `mapstructure:"slippage_bps" toml:"slippage_bps"`
	IBCTimeoutSeconds          int    `mapstructure:"ibc_timeout_seconds" toml:"ibc_timeout_seconds"`
	ForwardTimeoutSeconds      int    `mapstructure:"forward_timeout_seconds" toml:"forward_timeout_seconds"`
	ForwardRetries             int    `mapstructure:"forward_retries" toml:"forward_retries"`
	WasmTransferTimeoutSeconds int    `mapstructure:"wasm_transfer_timeout_seconds" toml:"wasm_transfer_timeout_seconds"`

	// data sources, local paths or go-getter URLs
	ChainRegistry string `mapstructure:"chain_registry" toml:"chain_registry"`
	PoolSnapshots string `mapstructure:"pool_snapshots" toml:"pool_snapshots"`

	// smart router
	SmartRouterURLs []string `mapstructure:"smart_router_urls" toml:"smart_router_urls"`

	LogLevel    string `mapstructure:"log_level" toml:"log_level"`
	Environment string `mapstructure:"environment" toml:"environment"` // production, staging, local

	// OpenTelemetry configs
	EnableTracing bool   `mapstructure:"enable_tracing" toml:"enable_tracing"`
	OTLPTracesURL string `mapstructure:"otlp_traces_url" toml:"otlp_traces_url"`
	InsecureOTLP  bool   `mapstructure:"insecure_otlp" toml:"insecure_otlp"`

	// Development mode prints spans to stdout
	DevelopmentMode bool `mapstructure:"development_mode" toml:"development_mode"`
}

// RegistryConfig is the chain registry file
type RegistryConfig struct {
	Chains []RegistryChain `json:"chains" toml:"chains"`
}

// RegistryChain is one chain entry of the registry file
type RegistryChain struct {
	ChainID            string `json:"chain_id" toml:"chain_id"`
	Kind               string `json:"kind" toml:"kind"`
	Bech32Prefix       string `json:"bech32_prefix" toml:"bech32_prefix"`
	EntryPointContract string `json:"entry_point_contract,omitempty" toml:"entry_point_contract,omitempty"`
	NativeDenom        string `json:"native_denom" toml:"native_denom"`
}

// ValidationError names the config field that failed verification
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
