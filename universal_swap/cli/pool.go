package cli

import (
	"fmt"
	"strconv"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/helpers"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/maths"
	"github.com/Cogwheel-Validator/oraidex-sdk/oraiswap_v3/models"
)

func poolKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "poolkey",
		Short: "Parse and format oraiswap-v3 pool keys",
	}

	parse := &cobra.Command{
		Use:     "parse [pool-key]",
		Short:   "Split a pool key string into tokens and fee tier",
		Example: "  oraidex poolkey parse orai-orai12hzjxfh77wl572gdzct2fxv2arxcwh6gykc7qh-3000000000-100",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := helpers.ParsePoolKey(args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), key)
		},
	}

	format := &cobra.Command{
		Use:     "format [token-a] [token-b] [fee] [tick-spacing]",
		Short:   "Build the pool key string, ordering the tokens",
		Example: "  oraidex poolkey format orai uatom 3000000000 100",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			fee, err := strconv.ParseUint(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid fee %q: %w", args[2], err)
			}
			spacing, err := strconv.ParseUint(args[3], 10, 16)
			if err != nil {
				return fmt.Errorf("invalid tick spacing %q: %w", args[3], err)
			}
			tier, err := models.NewFeeTier(fee, uint16(spacing))
			if err != nil {
				return err
			}
			key, err := models.NewPoolKey(args[0], args[1], tier)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), helpers.PoolKeyToString(key))
			return err
		},
	}

	cmd.AddCommand(parse, format)
	return cmd
}

func (a *app) simulateCmd() *cobra.Command {
	var (
		poolsSrc   string
		poolKey    string
		amount     string
		xToY       bool
		byAmountIn bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Replay a swap against a pool snapshot",
		Long: `Simulate a swap across the initialized ticks of one pool snapshot. The
swap runs without a price limit, up to the tick search and crossing limits of
the pool contract.`,
		Example: "  oraidex simulate --pools pools.json --pool orai-uatom-3000000000-100 --amount 1000000 --x-to-y",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := helpers.ParsePoolKey(poolKey)
			if err != nil {
				return err
			}
			value, err := uint256.FromDecimal(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			pools, err := loadPools(cmd.Context(), orDefault(poolsSrc, a.settings.PoolSnapshots))
			if err != nil {
				return err
			}
			if pools == nil {
				return fmt.Errorf("no pool snapshots configured")
			}
			snapshot, ok := pools.Snapshot(key)
			if !ok {
				return fmt.Errorf("pool %s not in snapshots", poolKey)
			}

			limit := maths.GetGlobalMaxSqrtPrice()
			if xToY {
				limit = maths.GetGlobalMinSqrtPrice()
			}
			result, err := helpers.SimulateSwap(snapshot.PoolWithPoolKey, snapshot.Ticks, xToY, value, byAmountIn, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().StringVar(&poolsSrc, "pools", "", "pool snapshots source, overrides pool_snapshots from settings")
	cmd.Flags().StringVar(&poolKey, "pool", "", "pool key of the pool to swap in")
	cmd.Flags().StringVar(&amount, "amount", "", "swap amount in base units")
	cmd.Flags().BoolVar(&xToY, "x-to-y", false, "swap token x for token y")
	cmd.Flags().BoolVar(&byAmountIn, "by-amount-in", true, "amount is the input, false makes it the wanted output")
	_ = cmd.MarkFlagRequired("pool")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}
