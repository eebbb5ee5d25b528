// Package cli implements the oraidex command: planning universal swap routes,
// querying the smart router and poking at oraiswap-v3 pool keys, swaps and
// cross-chain memos.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/config"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/telemetry"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "cmd").Logger()
}

const serviceName = "oraidex"

// Version is set at build time with -ldflags "-X ...cli.Version=..."
var Version = "dev"

// app is the state shared by the subcommands of one invocation
type app struct {
	configPath  string
	metricsFile string

	settings        *config.Settings
	metrics         *prometheus.Registry
	shutdownTracing func(context.Context) error
}

// NewRootCmd builds the oraidex command tree
func NewRootCmd() *cobra.Command {
	a := &app{metrics: prometheus.NewRegistry()}

	root := &cobra.Command{
		Use:   serviceName,
		Short: "OraiDEX universal swap planner and oraiswap-v3 toolkit",
		Long: `Plan universal swap routes into signed-ready messages, query the
OraiDEX smart router and inspect oraiswap-v3 pools.

Settings come from the --config toml file or from ORAIDEX_* environment
variables (a .env file in the working directory is read too).`,
		Version:            Version,
		SilenceUsage:       true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "settings toml file, ORAIDEX_* env vars when empty")
	root.PersistentFlags().StringVar(&a.metricsFile, "metrics-file", "", "write planner metrics in prometheus text format to this file")

	root.AddCommand(
		a.planCmd(),
		a.quoteCmd(),
		a.simulateCmd(),
		poolKeyCmd(),
		memoCmd(),
		registryCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var path *string
	if a.configPath != "" {
		path = &a.configPath
	}
	settings, err := config.LoadSettings(path)
	if err != nil {
		return err
	}
	a.settings = settings
	zerolog.SetGlobalLevel(settings.Level())

	shutdown, err := telemetry.Setup(cmd.Context(), settings.TracingConfig(serviceName, Version))
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	a.shutdownTracing = shutdown
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.metricsFile != "" {
		if err := prometheus.WriteToTextfile(a.metricsFile, a.metrics); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		log.Debug().Str("file", a.metricsFile).Msg("Wrote metrics")
	}
	if a.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownTracing(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to flush traces")
		}
	}
	return nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
