package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/planner"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
	routerquery "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/router_query"
)

type sourceFlags struct {
	registry string
	pools    string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.registry, "registry", "", "chain registry source, overrides chain_registry from settings")
	cmd.Flags().StringVar(&f.pools, "pools", "", "pool snapshots source, overrides pool_snapshots from settings")
}

func (a *app) planCmd() *cobra.Command {
	var (
		routeFile string
		sender    string
		receiver  string
		sources   sourceFlags
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Lower a smart router route into execute messages",
		Long: `Read a route (or a whole smart router response, in which case the best
route is used) and print one message per path. Only topMessage needs to be
signed, the other paths run through the memo it carries.`,
		Example: `  oraidex plan --route route.json --sender orai1... --receiver cosmos1...
  oraidex plan --route - --sender orai1... --receiver osmo1... --pools https://example.com/pools.json < response.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := readRoute(cmd.InOrStdin(), routeFile)
			if err != nil {
				return err
			}
			plan, err := a.plan(cmd.Context(), sources, r, sender, receiver)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), plan)
		},
	}
	cmd.Flags().StringVar(&routeFile, "route", "", "route or smart router response JSON file, - for stdin")
	cmd.Flags().StringVar(&sender, "sender", "", "user address on the first chain of the route")
	cmd.Flags().StringVar(&receiver, "receiver", "", "address that receives the output on the last chain of the route")
	sources.register(cmd)
	_ = cmd.MarkFlagRequired("route")
	_ = cmd.MarkFlagRequired("sender")
	_ = cmd.MarkFlagRequired("receiver")
	return cmd
}

func (a *app) plan(ctx context.Context, sources sourceFlags, r route.Route, sender, receiver string) (planner.Plan, error) {
	chains, err := loadChains(ctx, orDefault(sources.registry, a.settings.ChainRegistry))
	if err != nil {
		return planner.Plan{}, err
	}
	pools, err := loadPools(ctx, orDefault(sources.pools, a.settings.PoolSnapshots))
	if err != nil {
		return planner.Plan{}, err
	}

	opts := []planner.Option{planner.WithMetrics(planner.NewMetrics(a.metrics))}
	if pools != nil {
		opts = append(opts, planner.WithPoolSource(pools))
	}
	return planner.New(chains, a.settings.PlannerSettings(), opts...).Plan(r, sender, receiver)
}

// readRoute accepts either a single route or a smart router response
func readRoute(stdin io.Reader, path string) (route.Route, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return route.Route{}, fmt.Errorf("failed to read route: %w", err)
	}

	var probe struct {
		Routes json.RawMessage `json:"routes"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return route.Route{}, fmt.Errorf("failed to decode route: %w", err)
	}
	if probe.Routes != nil {
		var resp route.Response
		if err := json.Unmarshal(data, &resp); err != nil {
			return route.Route{}, fmt.Errorf("failed to decode router response: %w", err)
		}
		best, ok := routerquery.BestRoute(resp)
		if !ok {
			return route.Route{}, fmt.Errorf("router response has no routes")
		}
		return best, nil
	}

	var r route.Route
	if err := json.Unmarshal(data, &r); err != nil {
		return route.Route{}, fmt.Errorf("failed to decode route: %w", err)
	}
	return r, nil
}
