package builders_test

import (
	"encoding/json"
	"errors"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/zeebo/assert"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/builders"
	ibcmemo "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/ibc_memo"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/msgs"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
)

func osmosisParams(actions ...route.Action) builders.Params {
	return builders.Params{
		Path: route.Path{
			ChainID: "osmosis-1",
			Actions: actions,
		},
		MinimumReceive:      "9900",
		Receiver:            "noble1final",
		CurrentChainAddress: "osmo1user",
		Options:             testOptions(),
	}
}

func atomToUsdcToNoble() []route.Action {
	return []route.Action{
		swapAction(atomOnOsmosis, 1000000,
			route.SwapInfo{PoolID: "1", TokenOut: "uosmo"},
			route.SwapInfo{PoolID: "1464", TokenOut: usdcOnOsmosis},
		),
		bridgeAction(usdcOnOsmosis, "uusdc", 10000, "transfer", "channel-750"),
	}
}

func TestOsmosisGetSwapAndBridgeInfo(t *testing.T) {
	info, err := builders.NewOsmosisMsg(osmosisParams(atomToUsdcToNoble()...)).GetSwapAndBridgeInfo()
	assert.NoError(t, err)

	assert.DeepEqual(t, info.Operations, []ibcmemo.SwapOperation{
		{Pool: "1", DenomIn: atomOnOsmosis, DenomOut: "uosmo"},
		{Pool: "1464", DenomIn: "uosmo", DenomOut: usdcOnOsmosis},
	})
	assert.Equal(t, info.DenomOut(), usdcOnOsmosis)
	assert.NotNil(t, info.Bridge)
	assert.Equal(t, info.Bridge.BridgeInfo.Channel, "channel-750")
}

func TestOsmosisGenMemoAsMiddleware(t *testing.T) {
	middleware, err := builders.NewOsmosisMsg(osmosisParams(atomToUsdcToNoble()...)).GenMemoAsMiddleware()
	assert.NoError(t, err)

	assert.Equal(t, middleware.Receiver, builders.OsmosisEntryPoint)
	assert.Equal(t, middleware.Memo, `{"wasm":{"contract":"osmo10a3k4hvk37cc4hnxctw4p95fhscd2z6h2rmx0aukc6rm8u9qqx9smfsh7u","msg":{"swap_and_action":{"user_swap":{"swap_exact_asset_in":{"swap_venue_name":"osmosis-poolmanager","operations":[{"pool":"1","denom_in":"ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2","denom_out":"uosmo"},{"pool":"1464","denom_in":"uosmo","denom_out":"ibc/498A0751C798A0D9A389AA3691123DADA57DAA4FE165D5C75894505B876BA6E4"}]}},"min_asset":{"native":{"denom":"ibc/498A0751C798A0D9A389AA3691123DADA57DAA4FE165D5C75894505B876BA6E4","amount":"9900"}},"timeout_timestamp":1700000000000000000,"post_swap_action":{"ibc_transfer":{"ibc_info":{"source_channel":"channel-750","receiver":"noble1final","memo":"","recover_address":"osmo1user"}}},"affiliates":[]}}}}`)
}

func TestOsmosisSwapOnly(t *testing.T) {
	params := osmosisParams(swapAction(atomOnOsmosis, 1000000, route.SwapInfo{PoolID: "1", TokenOut: "uosmo"}))
	params.MinimumReceive = ""
	params.Receiver = "osmo1final"

	middleware, err := builders.NewOsmosisMsg(params).GenMemoAsMiddleware()
	assert.NoError(t, err)

	var memo ibcmemo.WasmMemo
	assert.NoError(t, json.Unmarshal([]byte(middleware.Memo), &memo))
	swap := memo.Wasm.Msg.SwapAndAction
	assert.Equal(t, swap.MinAsset.Native.Amount, builders.DefaultMinimumReceive)
	assert.Equal(t, swap.MinAsset.Native.Denom, "uosmo")
	assert.Equal(t, swap.PostSwapAction.Transfer.ToAddress, "osmo1final")
	assert.Nil(t, swap.PostSwapAction.IBCTransfer)
}

func TestOsmosisGenExecuteMsg(t *testing.T) {
	params := osmosisParams(atomToUsdcToNoble()...)
	params.NextMemo = `{"forward":{"receiver":"cosmos1x","port":"transfer","channel":"channel-4","retries":2}}`

	obj, err := builders.NewOsmosisMsg(params).GenExecuteMsg()
	assert.NoError(t, err)
	assert.Equal(t, obj.TypeURL, msgs.TypeURLMsgExecuteContract)

	execute, ok := obj.Value.(*msgs.MsgExecuteContract)
	assert.True(t, ok)
	assert.Equal(t, execute.Sender, "osmo1user")
	assert.Equal(t, execute.Contract, builders.OsmosisEntryPoint)
	assert.Equal(t, len(execute.Funds), 1)
	assert.Equal(t, execute.Funds[0].Denom, atomOnOsmosis)
	assert.True(t, execute.Funds[0].Amount.Equal(sdkmath.NewInt(1000000)))

	var msg ibcmemo.WasmMsg
	assert.NoError(t, json.Unmarshal(execute.Msg, &msg))
	info := msg.SwapAndAction.PostSwapAction.IBCTransfer.IBCInfo
	assert.Equal(t, info.Memo, params.NextMemo)
	assert.Equal(t, info.RecoverAddress, "osmo1user")

	_, err = obj.ToAny()
	assert.NoError(t, err)
}

func TestOsmosisWithoutSwapsFallsBack(t *testing.T) {
	params := osmosisParams(bridgeAction("uosmo", "uosmo", 5, "transfer", "channel-0"))

	middleware, err := builders.NewOsmosisMsg(params).GenMemoAsMiddleware()
	assert.NoError(t, err)
	assert.Equal(t, middleware.Receiver, "osmo1user")

	var forward ibcmemo.ForwardMemo
	assert.NoError(t, json.Unmarshal([]byte(middleware.Memo), &forward))
	assert.Equal(t, forward.Forward.Channel, "channel-0")
	assert.Equal(t, forward.Forward.Retries, ibcmemo.DefaultForwardRetries)

	obj, err := builders.NewOsmosisMsg(params).GenExecuteMsg()
	assert.NoError(t, err)
	assert.Equal(t, obj.TypeURL, msgs.TypeURLMsgTransfer)
}

func TestOsmosisRejects(t *testing.T) {
	tests := []struct {
		name    string
		actions []route.Action
		want    error
	}{
		{
			name: "wasm port after swap",
			actions: []route.Action{
				swapAction(atomOnOsmosis, 1, route.SwapInfo{PoolID: "1", TokenOut: "uosmo"}),
				bridgeAction("uosmo", "orai", 1, "wasm.orai123", "channel-1"),
			},
			want: route.ErrRouteShape,
		},
		{
			name: "bridge before swap",
			actions: []route.Action{
				bridgeAction("uosmo", "uosmo", 1, "transfer", "channel-1"),
				swapAction("uosmo", 1, route.SwapInfo{PoolID: "1", TokenOut: atomOnOsmosis}),
			},
			want: route.ErrRouteShape,
		},
		{
			name: "bridge without channel",
			actions: []route.Action{
				swapAction(atomOnOsmosis, 1, route.SwapInfo{PoolID: "1", TokenOut: "uosmo"}),
				bridgeAction("uosmo", "uosmo", 1, "transfer", ""),
			},
			want: route.ErrMissingPostAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := builders.NewOsmosisMsg(osmosisParams(tt.actions...))

			_, err := builder.GenMemoAsMiddleware()
			assert.True(t, errors.Is(err, tt.want))

			_, err = builder.GenExecuteMsg()
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}
