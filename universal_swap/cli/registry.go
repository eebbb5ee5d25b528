package cli

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/config"
)

func registryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Build and check chain registry files",
	}

	var (
		src    string
		chains []string
		out    string
	)
	importCmd := &cobra.Command{
		Use:   "import",
		Short: "Build a chain registry from the keplr chain registry",
		Long: `Download the keplr chain registry (or any go-getter directory laid out
the same way) and write a chain registry toml for the named chains.`,
		Example: "  oraidex registry import --chains oraichain,osmosis,cosmoshub,noble --out registry.toml",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := os.MkdirTemp("", "oraidex-keplr-")
			if err != nil {
				return err
			}
			defer func() {
				_ = os.RemoveAll(dir)
			}()

			registry, err := config.ImportKeplrRegistry(cmd.Context(), src, dir, chains)
			if err != nil {
				return err
			}
			if out == "" {
				return config.WriteRegistry(cmd.OutOrStdout(), registry)
			}
			var buf bytes.Buffer
			if err := config.WriteRegistry(&buf, registry); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return err
			}
			log.Info().Str("file", out).Int("chains", len(registry.Chains)).Msg("Wrote chain registry")
			return nil
		},
	}
	importCmd.Flags().StringVar(&src, "src", config.KeplrRegistrySource, "keplr registry directory, any go-getter source")
	importCmd.Flags().StringSliceVar(&chains, "chains", nil, "keplr file names to import")
	importCmd.Flags().StringVar(&out, "out", "", "output file, stdout when empty")
	_ = importCmd.MarkFlagRequired("chains")

	checkCmd := &cobra.Command{
		Use:   "check [source]",
		Short: "Load a chain registry and list its chains",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chains, err := loadChains(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), chains)
		},
	}

	cmd.AddCommand(importCmd, checkCmd)
	return cmd
}
