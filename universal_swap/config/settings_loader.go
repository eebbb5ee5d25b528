package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/builders"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/planner"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/telemetry"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "config").Logger()
}

const EnvPrefix = "ORAIDEX"

// DefaultSmartRouterURL is the public OraiDEX smart router
const DefaultSmartRouterURL = "https://osor.oraidex.io"

var settingsKeys = []string{
	"slippage_bps", "ibc_timeout_seconds", "forward_timeout_seconds",
	"forward_retries", "wasm_transfer_timeout_seconds",
	"chain_registry", "pool_snapshots", "smart_router_urls",
	"log_level", "environment",
	"enable_tracing", "otlp_traces_url", "insecure_otlp", "development_mode",
}

// LoadSettings loads the settings from the toml file at configPath, or from
// the environment when configPath is nil. Keys missing from both keep their
// defaults.
func LoadSettings(configPath *string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if configPath == nil {
		config, err := loadEnv(v)
		if err != nil {
			return nil, fmt.Errorf("failed to load env config: %w", err)
		}
		return config, nil
	}
	config, err := loadFile(v, *configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load file config: %w", err)
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("slippage_bps", 100)
	v.SetDefault("ibc_timeout_seconds", int(builders.DefaultIBCTimeout.Seconds()))
	v.SetDefault("forward_timeout_seconds", int(builders.DefaultForwardTimeout.Seconds()))
	v.SetDefault("forward_retries", 2)
	v.SetDefault("wasm_transfer_timeout_seconds", int(builders.DefaultWasmTransferTimeout.Seconds()))
	v.SetDefault("smart_router_urls", []string{DefaultSmartRouterURL})
	v.SetDefault("log_level", "info")
	v.SetDefault("environment", "production")
	v.SetDefault("otlp_traces_url", telemetry.DefaultTracingConfig().OTLPTracesURL)
}

func loadEnv(v *viper.Viper) (*Settings, error) {
	// a missing .env is fine, the variables may come from the shell or a unit file
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, k := range settingsKeys {
		_ = v.BindEnv(k)
	}

	var config Settings
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal env config: %w", err)
	}
	if err := verifyConfig(&config); err != nil {
		return nil, fmt.Errorf("failed to verify config: %w", err)
	}
	return &config, nil
}

func loadFile(v *viper.Viper, configPath string) (*Settings, error) {
	if !strings.HasSuffix(configPath, ".toml") {
		return nil, fmt.Errorf("config file must be a toml file")
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Settings
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := verifyConfig(&config); err != nil {
		return nil, fmt.Errorf("failed to verify config: %w", err)
	}
	return &config, nil
}

func verifyConfig(config *Settings) error {
	if config.SlippageBps > builders.MaxSlippageBps {
		return &ValidationError{Field: "slippage_bps", Message: fmt.Sprintf("must be at most %d", builders.MaxSlippageBps)}
	}
	if config.IBCTimeoutSeconds <= 0 {
		return &ValidationError{Field: "ibc_timeout_seconds", Message: "must be positive"}
	}
	if config.ForwardTimeoutSeconds <= 0 {
		return &ValidationError{Field: "forward_timeout_seconds", Message: "must be positive"}
	}
	if config.WasmTransferTimeoutSeconds <= 0 {
		return &ValidationError{Field: "wasm_transfer_timeout_seconds", Message: "must be positive"}
	}
	if config.ForwardRetries < 0 {
		return &ValidationError{Field: "forward_retries", Message: "must not be negative"}
	}

	if len(config.SmartRouterURLs) == 0 {
		return &ValidationError{Field: "smart_router_urls", Message: "is required"}
	}
	for _, raw := range config.SmartRouterURLs {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return &ValidationError{Field: "smart_router_urls", Message: fmt.Sprintf("%q is not an http(s) URL", raw)}
		}
	}

	if _, err := zerolog.ParseLevel(config.LogLevel); err != nil {
		return &ValidationError{Field: "log_level", Message: err.Error()}
	}
	if config.EnableTracing && !config.DevelopmentMode && config.OTLPTracesURL == "" {
		return &ValidationError{Field: "otlp_traces_url", Message: "is required when tracing is enabled"}
	}
	return nil
}

// PlannerSettings converts the timeouts into planner settings
func (s *Settings) PlannerSettings() planner.Settings {
	return planner.Settings{
		SlippageBps:         s.SlippageBps,
		IBCTimeout:          time.Duration(s.IBCTimeoutSeconds) * time.Second,
		ForwardTimeout:      time.Duration(s.ForwardTimeoutSeconds) * time.Second,
		ForwardRetries:      s.ForwardRetries,
		WasmTransferTimeout: time.Duration(s.WasmTransferTimeoutSeconds) * time.Second,
	}
}

func (s *Settings) TracingConfig(serviceName, version string) telemetry.TracingConfig {
	return telemetry.TracingConfig{
		ServiceName:     serviceName,
		ServiceVersion:  version,
		Environment:     s.Environment,
		EnableTracing:   s.EnableTracing,
		OTLPTracesURL:   s.OTLPTracesURL,
		InsecureOTLP:    s.InsecureOTLP,
		DevelopmentMode: s.DevelopmentMode,
	}
}

// Level is the zerolog level named by log_level, info when it does not parse
func (s *Settings) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(s.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
