package cli

import (
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/planner"
	routerquery "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/router_query"
)

func (a *app) quoteCmd() *cobra.Command {
	var (
		req       routerquery.QuoteRequest
		amount    string
		best      bool
		sender    string
		receiver  string
		sources   sourceFlags
		protocols []string
	)

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Ask the smart router for routes",
		Long: `Query the configured smart router endpoints, failing over to the backups
in order. With --receiver the best route is planned right away.`,
		Example: `  oraidex quote --source-asset orai --dest-asset uatom --dest-chain cosmoshub-4 --amount 1000000
  oraidex quote --source-asset orai --dest-asset uatom --dest-chain cosmoshub-4 --amount 1000000 --best
  oraidex quote --source-asset orai --dest-asset uosmo --dest-chain osmosis-1 --amount 1000000 --sender orai1... --receiver osmo1...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			offer, ok := sdkmath.NewIntFromString(amount)
			if !ok {
				return fmt.Errorf("invalid amount %q", amount)
			}
			req.OfferAmount = offer
			req.SwapOptions.Protocols = protocols

			urls := a.settings.SmartRouterURLs
			if len(urls) == 0 {
				return errors.New("no smart router urls configured")
			}
			client, err := routerquery.NewClient(urls[0], urls[1:], routerquery.DefaultFailoverConfig())
			if err != nil {
				return err
			}
			defer client.Close()

			resp, err := client.Quote(cmd.Context(), req)
			if err != nil {
				return err
			}
			if !best && receiver == "" {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			r, ok := routerquery.BestRoute(resp)
			if !ok {
				return errors.New("smart router returned no routes")
			}
			if receiver == "" {
				return printJSON(cmd.OutOrStdout(), r)
			}
			plan, err := a.plan(cmd.Context(), sources, r, sender, receiver)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().StringVar(&req.SourceAsset, "source-asset", "", "denom or contract offered")
	cmd.Flags().StringVar(&req.SourceChainID, "source-chain", planner.OraichainChainID, "chain id the offer starts on")
	cmd.Flags().StringVar(&req.DestAsset, "dest-asset", "", "denom or contract wanted")
	cmd.Flags().StringVar(&req.DestChainID, "dest-chain", planner.OraichainChainID, "chain id the output ends on")
	cmd.Flags().StringVar(&amount, "amount", "", "offer amount in base units")
	cmd.Flags().IntVar(&req.SwapOptions.MaxSplits, "max-splits", 0, "maximum number of routes, router default when 0")
	cmd.Flags().StringSliceVar(&protocols, "protocols", nil, "venues the router may use")
	cmd.Flags().BoolVar(&best, "best", false, "print only the route with the highest return amount")
	cmd.Flags().StringVar(&sender, "sender", "", "plan the best route for this sender")
	cmd.Flags().StringVar(&receiver, "receiver", "", "plan the best route for this receiver")
	sources.register(cmd)
	_ = cmd.MarkFlagRequired("source-asset")
	_ = cmd.MarkFlagRequired("dest-asset")
	_ = cmd.MarkFlagRequired("amount")
	cmd.MarkFlagsRequiredTogether("sender", "receiver")
	return cmd
}
