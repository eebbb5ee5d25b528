// Package planner lowers a smart router route into one execute message per
// path. Paths are built from the last to the first so that each path can
// embed the memo of the path after it.
package planner

import (
	"os"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/rs/zerolog"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/builders"
	ibcmemo "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/ibc_memo"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/msgs"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "planner").Logger()
}

// Settings are the knobs the planner stamps into every plan
type Settings struct {
	SlippageBps         uint32
	IBCTimeout          time.Duration
	ForwardTimeout      time.Duration
	ForwardRetries      int
	WasmTransferTimeout time.Duration
}

// DefaultSettings is 1% slippage with the builder default timeouts
func DefaultSettings() Settings {
	return Settings{
		SlippageBps:         100,
		IBCTimeout:          builders.DefaultIBCTimeout,
		ForwardTimeout:      builders.DefaultForwardTimeout,
		ForwardRetries:      2,
		WasmTransferTimeout: builders.DefaultWasmTransferTimeout,
	}
}

func (s Settings) options(now time.Time) builders.Options {
	return builders.Options{
		TimeoutTimestamp:    uint64(now.Add(s.IBCTimeout).UnixNano()),
		ForwardTimeout:      s.ForwardTimeout,
		ForwardRetries:      s.ForwardRetries,
		WasmTransferTimeout: s.WasmTransferTimeout,
	}
}

// PathMessage is the lowered form of one path
type PathMessage struct {
	ChainID string `json:"chainId"`
	Shape   string `json:"shape"`
	// Sender is the user's address on ChainID
	Sender         string `json:"sender"`
	Receiver       string `json:"receiver"`
	MinimumReceive string `json:"minimumReceive"`
	// NextMemo is the memo carried out of this chain
	NextMemo string `json:"nextMemo"`
	// Middleware is how the previous path hands funds to this one
	Middleware builders.Middleware `json:"middleware"`
	Message    msgs.EncodeObject   `json:"message"`
}

// Plan holds one message per path in route order. TopMessage is the only one
// the user signs, the rest run through the memo chain.
type Plan struct {
	Messages   []PathMessage     `json:"messages"`
	TopMessage msgs.EncodeObject `json:"topMessage"`
}

// Planner is safe for concurrent use
type Planner struct {
	chains    map[string]Chain
	addresses *AddressConverter
	pools     PoolSource
	metrics   *Metrics
	settings  Settings
	now       func() time.Time
}

type Option func(*Planner)

// WithPoolSource enables simulated minimum receives for oraiswap-v3 hops
func WithPoolSource(pools PoolSource) Option {
	return func(p *Planner) { p.pools = pools }
}

func WithMetrics(metrics *Metrics) Option {
	return func(p *Planner) { p.metrics = metrics }
}

func WithClock(now func() time.Time) Option {
	return func(p *Planner) { p.now = now }
}

func New(chains []Chain, settings Settings, opts ...Option) *Planner {
	p := &Planner{
		chains:    make(map[string]Chain, len(chains)),
		addresses: NewAddressConverter(chains),
		settings:  settings,
		now:       time.Now,
	}
	for _, chain := range chains {
		p.chains[chain.ChainID] = chain
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) chain(chainID string) Chain {
	if chain, ok := p.chains[chainID]; ok {
		if chain.Kind == "" {
			chain.Kind = KindOf(chainID)
		}
		return chain
	}
	return Chain{ChainID: chainID, Kind: KindOf(chainID)}
}

func (p *Planner) builder(chain Chain, params builders.Params) (builders.MsgBuilder, error) {
	params.EntryPoint = chain.EntryPointContract
	switch chain.Kind {
	case ChainKindOraichain:
		return builders.NewOraichainMsg(params), nil
	case ChainKindOsmosis:
		return builders.NewOsmosisMsg(params), nil
	case ChainKindCosmos:
		return builders.NewCosmosMsg(params), nil
	default:
		return nil, errorsmod.Wrapf(route.ErrRouteShape, "no message builder for %s chain %s", chain.Kind, chain.ChainID)
	}
}

// Plan lowers r for sender, delivering the output to receiver on the chain
// the last path ends on. sender must be a bech32 account on the first chain.
func (p *Planner) Plan(r route.Route, sender, receiver string) (plan Plan, err error) {
	start := time.Now()
	defer func() { p.metrics.observePlan(start, err) }()

	if len(r.Paths) == 0 {
		return Plan{}, errorsmod.Wrap(route.ErrRouteShape, "route has no paths")
	}
	if _, err := ibcmemo.CanonicalAddress(sender); err != nil {
		return Plan{}, errorsmod.Wrapf(route.ErrInvalidAddress, "sender: %v", err)
	}
	if receiver == "" {
		return Plan{}, errorsmod.Wrap(route.ErrInvalidAddress, "receiver is empty")
	}

	opts := p.settings.options(p.now())
	messages := make([]PathMessage, len(r.Paths))
	nextReceiver, nextMemo := receiver, ""

	for i := len(r.Paths) - 1; i >= 0; i-- {
		path := r.Paths[i]
		chain := p.chain(path.ChainID)

		shape, err := path.Classify()
		if err != nil {
			return Plan{}, err
		}

		current := sender
		if i > 0 {
			current, err = p.addresses.ConvertAddress(sender, path.ChainID)
			if err != nil {
				return Plan{}, errorsmod.Wrapf(route.ErrRouteShape, "no address on %s: %v", path.ChainID, err)
			}
		}

		minimum, source := p.minimumReceive(path)
		p.metrics.observeMinimumReceive(source)

		builder, err := p.builder(chain, builders.Params{
			Path:                path,
			MinimumReceive:      minimum,
			Receiver:            nextReceiver,
			CurrentChainAddress: current,
			NextMemo:            nextMemo,
			Options:             opts,
		})
		if err != nil {
			return Plan{}, err
		}

		msg, err := builder.GenExecuteMsg()
		if err != nil {
			return Plan{}, errorsmod.Wrapf(err, "path %d", i)
		}
		var middleware builders.Middleware
		if i > 0 {
			middleware, err = builder.GenMemoAsMiddleware()
			if err != nil {
				return Plan{}, errorsmod.Wrapf(err, "path %d", i)
			}
		}

		messages[i] = PathMessage{
			ChainID:        path.ChainID,
			Shape:          shape.String(),
			Sender:         current,
			Receiver:       nextReceiver,
			MinimumReceive: minimum,
			NextMemo:       nextMemo,
			Middleware:     middleware,
			Message:        msg,
		}
		p.metrics.observePath(chain.Kind, shape.String())

		log.Debug().
			Int("path", i).
			Str("chainId", path.ChainID).
			Str("kind", string(chain.Kind)).
			Str("shape", shape.String()).
			Str("minimumReceive", minimum).
			Str("minimumSource", string(source)).
			Msg("Lowered path")

		nextReceiver, nextMemo = middleware.Receiver, middleware.Memo
	}

	return Plan{Messages: messages, TopMessage: messages[0].Message}, nil
}
