package builders

import (
	errorsmod "cosmossdk.io/errors"

	ibcmemo "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/ibc_memo"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/msgs"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
)

// CosmosMsg builds messages for chains without a swap venue. Such a path may
// only hold a single Bridge action.
type CosmosMsg struct {
	params Params
}

func NewCosmosMsg(params Params) *CosmosMsg {
	return &CosmosMsg{params: params}
}

func (c *CosmosMsg) bridge() (route.Action, error) {
	actions := c.params.Path.Actions
	if len(actions) != 1 || actions[0].Type != route.ActionTypeBridge {
		return route.Action{}, errorsmod.Wrapf(route.ErrRouteShape, "only support bridge on %s", c.params.Path.ChainID)
	}
	if err := actions[0].Validate(); err != nil {
		return route.Action{}, errorsmod.Wrapf(err, "bridge on %s", c.params.Path.ChainID)
	}
	return actions[0], nil
}

// GetPostAction returns a transfer to the receiver when there is nothing left
// to bridge, else an ibc_transfer that refunds to the current chain address.
func (c *CosmosMsg) GetPostAction(bridgeInfo *route.BridgeInfo) (*ibcmemo.PostSwapAction, error) {
	if bridgeInfo == nil {
		return ibcmemo.NewTransferAction(c.params.Receiver), nil
	}
	return ibcTransferAction(c.params, bridgeInfo)
}

// GenMemoAsMiddleware returns the PFM forward memo that moves incoming funds
// over this path's bridge.
func (c *CosmosMsg) GenMemoAsMiddleware() (Middleware, error) {
	bridge, err := c.bridge()
	if err != nil {
		return Middleware{}, err
	}
	return forwardMiddleware(c.params, bridge.BridgeInfo)
}

// GenExecuteMsg returns the MsgTransfer that starts the route on this chain
func (c *CosmosMsg) GenExecuteMsg() (msgs.EncodeObject, error) {
	bridge, err := c.bridge()
	if err != nil {
		return msgs.EncodeObject{}, err
	}
	if bridge.BridgeInfo.Port != route.IBCTransferPort {
		return msgs.EncodeObject{}, errorsmod.Wrapf(route.ErrRouteShape,
			"only support IBC bridge on %s, got port %s", c.params.Path.ChainID, bridge.BridgeInfo.Port)
	}
	return transferMsg(c.params)
}
