package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zeebo/assert"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/cli"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/msgs"
)

const (
	oraiSender = "orai1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5v36a80"
	cosmosUser = "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"

	atomOnOraichain = "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78"
	atomPoolKey     = atomOnOraichain + "-orai-3000000000-1"
)

// one Oraichain path: swap orai into atom through atomPoolKey, then bridge to the hub
const routerResponse = `{
	"swapAmount": "1500",
	"returnAmount": "1490",
	"routes": [
		{"swapAmount": "1500", "returnAmount": "1200", "paths": []},
		{
			"swapAmount": "1500",
			"returnAmount": "1490",
			"paths": [{
				"chainId": "Oraichain",
				"tokenIn": "orai",
				"tokenInAmount": "1500",
				"tokenOut": "uatom",
				"tokenOutAmount": "1490",
				"tokenOutChainId": "cosmoshub-4",
				"actions": [
					{
						"type": "Swap",
						"protocol": "OraidexV3",
						"tokenIn": "orai",
						"tokenInAmount": "1500",
						"tokenOut": "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78",
						"tokenOutAmount": "1490",
						"tokenOutChainId": "Oraichain",
						"swapInfo": [{
							"poolId": "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78-orai-3000000000-1",
							"tokenOut": "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78"
						}]
					},
					{
						"type": "Bridge",
						"protocol": "Bridge",
						"tokenIn": "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78",
						"tokenInAmount": "1490",
						"tokenOut": "uatom",
						"tokenOutAmount": "1490",
						"tokenOutChainId": "cosmoshub-4",
						"bridgeInfo": {"port": "transfer", "channel": "channel-15"}
					}
				]
			}]
		}
	]
}`

const snapshotsJSON = `[{
	"pool": {
		"liquidity": "2000000000000",
		"sqrt_price": "1000000000000000000000000",
		"current_tick_index": 0
	},
	"pool_key": {
		"token_x": "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78",
		"token_y": "orai",
		"fee_tier": {"fee": 3000000000, "tick_spacing": 1}
	},
	"ticks": [
		{"index": -20, "sign": true, "liquidity_change": "1000000000000"},
		{"index": -10, "sign": true, "liquidity_change": "1000000000000"},
		{"index": 10, "sign": false, "liquidity_change": "1000000000000"},
		{"index": 20, "sign": false, "liquidity_change": "1000000000000"}
	]
}]`

type planOutput struct {
	Messages []struct {
		ChainID        string `json:"chainId"`
		Shape          string `json:"shape"`
		MinimumReceive string `json:"minimumReceive"`
	} `json:"messages"`
	TopMessage struct {
		TypeURL string `json:"typeUrl"`
	} `json:"topMessage"`
}

// isolate clears ORAIDEX_* settings and runs the test in an empty dir
func isolate(t *testing.T) string {
	t.Helper()
	for _, e := range os.Environ() {
		if name, _, ok := strings.Cut(e, "="); ok && strings.HasPrefix(name, "ORAIDEX_") {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	if stdin != nil {
		root.SetIn(stdin)
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCommandTree(t *testing.T) {
	root := cli.NewRootCmd()
	for _, path := range [][]string{
		{"plan"},
		{"quote"},
		{"simulate"},
		{"poolkey", "parse"},
		{"poolkey", "format"},
		{"memo", "ibc-wasm"},
		{"memo", "ibc-hooks"},
		{"memo", "decode"},
		{"registry", "import"},
		{"registry", "check"},
	} {
		cmd, _, err := root.Find(path)
		assert.NoError(t, err)
		assert.Equal(t, cmd.Name(), path[len(path)-1])
		assert.NotNil(t, cmd.RunE)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("metrics-file"))
}

func TestPlanCommand(t *testing.T) {
	dir := isolate(t)
	routeFile := writeFile(t, dir, "response.json", routerResponse)
	poolsFile := writeFile(t, dir, "pools.json", snapshotsJSON)
	metricsFile := filepath.Join(dir, "planner.prom")

	out, err := run(t, nil,
		"plan",
		"--route", routeFile,
		"--sender", oraiSender,
		"--receiver", cosmosUser,
		"--pools", poolsFile,
		"--metrics-file", metricsFile,
	)
	assert.NoError(t, err)

	var plan planOutput
	assert.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, len(plan.Messages), 1)
	assert.Equal(t, plan.Messages[0].ChainID, "Oraichain")
	assert.Equal(t, plan.Messages[0].MinimumReceive, "1476")
	assert.Equal(t, plan.TopMessage.TypeURL, msgs.TypeURLMsgExecuteContract)

	metrics, err := os.ReadFile(metricsFile)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(metrics), `oraidex_planner_plans_total{result="ok"} 1`))
	assert.True(t, strings.Contains(string(metrics), `oraidex_planner_minimum_receive_total{source="simulated"} 1`))
}

func TestPlanCommandFromStdin(t *testing.T) {
	isolate(t)

	out, err := run(t, strings.NewReader(routerResponse),
		"plan", "--route", "-", "--sender", oraiSender, "--receiver", cosmosUser)
	assert.NoError(t, err)

	var plan planOutput
	assert.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, plan.Messages[0].MinimumReceive, "1475")
}

func TestPlanCommandErrors(t *testing.T) {
	dir := isolate(t)
	routeFile := writeFile(t, dir, "response.json", routerResponse)
	empty := writeFile(t, dir, "empty.json", `{"routes": []}`)
	garbage := writeFile(t, dir, "garbage.json", `[1, 2`)
	teleport := writeFile(t, dir, "teleport.json", `{"paths": [{"chainId": "Oraichain", "actions": [{"type": "Teleport"}]}]}`)

	tests := []struct {
		name string
		args []string
	}{
		{"missing receiver", []string{"plan", "--route", routeFile, "--sender", oraiSender}},
		{"missing sender", []string{"plan", "--route", routeFile, "--receiver", cosmosUser}},
		{"sender not bech32", []string{"plan", "--route", routeFile, "--sender", "orai1sender", "--receiver", cosmosUser}},
		{"no routes", []string{"plan", "--route", empty, "--sender", oraiSender, "--receiver", cosmosUser}},
		{"bad json", []string{"plan", "--route", garbage, "--sender", oraiSender, "--receiver", cosmosUser}},
		{"missing route file", []string{"plan", "--route", filepath.Join(dir, "nope.json"), "--sender", oraiSender, "--receiver", cosmosUser}},
		{"unknown action", []string{"plan", "--route", teleport, "--sender", oraiSender, "--receiver", cosmosUser}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, nil, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestQuoteCommand(t *testing.T) {
	isolate(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, routerResponse)
	}))
	defer server.Close()
	t.Setenv("ORAIDEX_SMART_ROUTER_URLS", server.URL)

	args := []string{
		"quote",
		"--source-asset", "orai",
		"--dest-asset", "uatom",
		"--dest-chain", "cosmoshub-4",
		"--amount", "1500",
	}

	out, err := run(t, nil, args...)
	assert.NoError(t, err)
	var resp struct {
		Routes []json.RawMessage `json:"routes"`
	}
	assert.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, len(resp.Routes), 2)

	out, err = run(t, nil, append(args, "--best")...)
	assert.NoError(t, err)
	var best struct {
		ReturnAmount string `json:"returnAmount"`
	}
	assert.NoError(t, json.Unmarshal([]byte(out), &best))
	assert.Equal(t, best.ReturnAmount, "1490")

	out, err = run(t, nil, append(args, "--sender", oraiSender, "--receiver", cosmosUser)...)
	assert.NoError(t, err)
	var plan planOutput
	assert.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.Equal(t, plan.TopMessage.TypeURL, msgs.TypeURLMsgExecuteContract)

	_, err = run(t, nil, "quote", "--source-asset", "orai", "--dest-asset", "uatom", "--amount", "lots")
	assert.Error(t, err)

	_, err = run(t, nil, append(args, "--receiver", cosmosUser)...)
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	dir := isolate(t)
	poolsFile := writeFile(t, dir, "pools.json", snapshotsJSON)

	out, err := run(t, nil, "simulate", "--pools", poolsFile, "--pool", atomPoolKey, "--amount", "1500")
	assert.NoError(t, err)
	var result struct {
		AmountIn  string `json:"amount_in"`
		AmountOut string `json:"amount_out"`
	}
	assert.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, result.AmountIn, "1500")
	assert.Equal(t, result.AmountOut, "1491")

	_, err = run(t, nil, "simulate", "--pools", poolsFile, "--pool", atomOnOraichain+"-orai-3000000000-10", "--amount", "1500")
	assert.Error(t, err)

	_, err = run(t, nil, "simulate", "--pool", atomPoolKey, "--amount", "1500")
	assert.Error(t, err)
}

func TestPoolKeyCommands(t *testing.T) {
	isolate(t)

	out, err := run(t, nil, "poolkey", "format", "orai", atomOnOraichain, "3000000000", "1")
	assert.NoError(t, err)
	assert.Equal(t, strings.TrimSpace(out), atomPoolKey)

	out, err = run(t, nil, "poolkey", "parse", atomPoolKey)
	assert.NoError(t, err)
	var key struct {
		TokenX  string `json:"token_x"`
		TokenY  string `json:"token_y"`
		FeeTier struct {
			Fee         uint64 `json:"fee"`
			TickSpacing uint16 `json:"tick_spacing"`
		} `json:"fee_tier"`
	}
	assert.NoError(t, json.Unmarshal([]byte(out), &key))
	assert.Equal(t, key.TokenX, atomOnOraichain)
	assert.Equal(t, key.TokenY, "orai")
	assert.Equal(t, key.FeeTier.Fee, uint64(3_000_000_000))
	assert.Equal(t, key.FeeTier.TickSpacing, uint16(1))

	tests := []struct {
		name string
		args []string
	}{
		{"same tokens", []string{"poolkey", "format", "orai", "orai", "3000000000", "1"}},
		{"spacing too large", []string{"poolkey", "format", "orai", "uatom", "3000000000", "101"}},
		{"bad fee", []string{"poolkey", "format", "orai", "uatom", "-1", "1"}},
		{"short key", []string{"poolkey", "parse", "orai-uatom"}},
		{"missing args", []string{"poolkey", "format", "orai"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, nil, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestMemoCommands(t *testing.T) {
	isolate(t)

	encoded, err := run(t, nil, "memo", "ibc-wasm", cosmosUser, "channel-15", "uatom")
	assert.NoError(t, err)

	out, err := run(t, nil, "memo", "decode", strings.TrimSpace(encoded))
	assert.NoError(t, err)
	var wasm map[string]string
	assert.NoError(t, json.Unmarshal([]byte(out), &wasm))
	assert.Equal(t, wasm["destination_receiver"], cosmosUser)
	assert.Equal(t, wasm["destination_channel"], "channel-15")
	assert.Equal(t, wasm["destination_denom"], "uatom")

	encoded, err = run(t, nil, "memo", "ibc-hooks", oraiSender, cosmosUser, "channel-15", "uatom")
	assert.NoError(t, err)
	out, err = run(t, nil, "memo", "decode", "--kind", "hooks", strings.TrimSpace(encoded))
	assert.NoError(t, err)
	var hooks map[string]string
	assert.NoError(t, json.Unmarshal([]byte(out), &hooks))
	assert.Equal(t, hooks["receiver"], "0102030405060708090a0b0c0d0e0f1011121314")
	assert.Equal(t, hooks["destination_receiver"], cosmosUser)

	_, err = run(t, nil, "memo", "decode", "--kind", "evm", strings.TrimSpace(encoded))
	assert.Error(t, err)

	_, err = run(t, nil, "memo", "ibc-hooks", "not-bech32", cosmosUser, "channel-15", "uatom")
	assert.Error(t, err)
}

func TestBadConfigFile(t *testing.T) {
	dir := isolate(t)
	configFile := writeFile(t, dir, "settings.toml", "slippage_bps = 20000\n")

	_, err := run(t, nil, "--config", configFile, "poolkey", "parse", atomPoolKey)
	assert.Error(t, err)
}

func TestRegistryCommands(t *testing.T) {
	dir := isolate(t)
	keplr := filepath.Join(dir, "cosmos")
	assert.NoError(t, os.Mkdir(keplr, 0o755))
	writeFile(t, keplr, "noble.json", `{
		"chainId": "noble-1",
		"bech32Config": {"bech32PrefixAccAddr": "noble"},
		"feeCurrencies": [{"coinMinimalDenom": "uusdc"}]
	}`)
	writeFile(t, keplr, "osmosis.json", `{
		"chainId": "osmosis-1",
		"bech32Config": {"bech32PrefixAccAddr": "osmo"},
		"stakeCurrency": {"coinMinimalDenom": "uosmo"}
	}`)
	registryFile := filepath.Join(dir, "registry.toml")

	_, err := run(t, nil, "registry", "import", "--src", keplr, "--chains", "noble,osmosis", "--out", registryFile)
	assert.NoError(t, err)

	out, err := run(t, nil, "registry", "check", registryFile)
	assert.NoError(t, err)
	var chains []struct {
		ChainID      string
		Kind         string
		Bech32Prefix string
		NativeDenom  string
	}
	assert.NoError(t, json.Unmarshal([]byte(out), &chains))
	assert.Equal(t, len(chains), 2)
	assert.Equal(t, chains[0].ChainID, "noble-1")
	assert.Equal(t, chains[0].NativeDenom, "uusdc")
	assert.Equal(t, chains[1].Kind, "osmosis")

	_, err = run(t, nil, "registry", "import", "--src", keplr, "--chains", "juno")
	assert.Error(t, err)
}
