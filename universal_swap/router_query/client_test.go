package routerquery_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/zeebo/assert"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	routerquery "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/router_query"
	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
)

const quoteResponse = `{
	"swapAmount": "1000000",
	"returnAmount": "2950000",
	"routes": [{
		"swapAmount": "1000000",
		"returnAmount": "2950000",
		"paths": [{
			"chainId": "Oraichain",
			"tokenIn": "orai",
			"tokenInAmount": "1000000",
			"tokenOut": "uatom",
			"tokenOutAmount": "2950000",
			"tokenOutChainId": "cosmoshub-4",
			"actions": [
				{
					"type": "Swap",
					"protocol": "OraidexV3",
					"tokenIn": "orai",
					"tokenInAmount": "1000000",
					"tokenOut": "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78",
					"tokenOutAmount": "2950000",
					"tokenOutChainId": "Oraichain",
					"swapInfo": [{
						"poolId": "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78-orai-3000000000-100",
						"tokenOut": "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78"
					}]
				},
				{
					"type": "Bridge",
					"protocol": "Bridge",
					"tokenIn": "ibc/A2E2EEC9057A4A1C2C0A6A4C78B0239118DF5F278830F50B4A6BDD7A66506B78",
					"tokenInAmount": "2950000",
					"tokenOut": "uatom",
					"tokenOutAmount": "2950000",
					"tokenOutChainId": "cosmoshub-4",
					"bridgeInfo": {"port": "transfer", "channel": "channel-15"}
				}
			]
		}]
	}]
}`

func testConfig() routerquery.FailoverConfig {
	return routerquery.FailoverConfig{
		MaxRetries: 2,
		RetryDelay: time.Millisecond,
		HealthPath: "/health",
		Timeout:    time.Second,
	}
}

func quoteRequest() routerquery.QuoteRequest {
	return routerquery.QuoteRequest{
		SourceAsset:   "orai",
		SourceChainID: "Oraichain",
		DestAsset:     "uatom",
		DestChainID:   "cosmoshub-4",
		OfferAmount:   sdkmath.NewInt(1000000),
	}
}

// routerServer answers quotes after failing the first failures requests
func routerServer(t *testing.T, failures int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if calls.Add(1) <= failures {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, quoteResponse)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func TestQuote(t *testing.T) {
	var got routerquery.QuoteRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, r.Method, http.MethodPost)
		assert.Equal(t, r.URL.Path, routerquery.QuotePath)
		assert.Equal(t, r.Header.Get("Content-Type"), "application/json")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = io.WriteString(w, quoteResponse)
	}))
	defer server.Close()

	client, err := routerquery.NewClient(server.URL, nil, testConfig())
	assert.NoError(t, err)
	defer client.Close()

	response, err := client.Quote(context.Background(), quoteRequest())
	assert.NoError(t, err)
	assert.Equal(t, response.ReturnAmount.String(), "2950000")
	assert.Equal(t, len(response.Routes), 1)

	path := response.Routes[0].Paths[0]
	shape, err := path.Classify()
	assert.NoError(t, err)
	assert.Equal(t, shape, route.ShapeSwapThenBridge)

	assert.Equal(t, got.OfferAmount.String(), "1000000")
	assert.DeepEqual(t, got.SwapOptions.Protocols, routerquery.DefaultProtocols)
}

func TestQuoteRetries(t *testing.T) {
	server, calls := routerServer(t, 2)

	client, err := routerquery.NewClient(server.URL, nil, testConfig())
	assert.NoError(t, err)
	defer client.Close()

	_, err = client.Quote(context.Background(), quoteRequest())
	assert.NoError(t, err)
	assert.Equal(t, calls.Load(), int32(3))
}

func TestQuoteGivesUp(t *testing.T) {
	server, calls := routerServer(t, 10)

	client, err := routerquery.NewClient(server.URL, nil, testConfig())
	assert.NoError(t, err)
	defer client.Close()

	_, err = client.Quote(context.Background(), quoteRequest())
	assert.Error(t, err)
	assert.Equal(t, calls.Load(), int32(3))
}

func TestQuoteFailover(t *testing.T) {
	primary, primaryCalls := routerServer(t, 100)
	backup, backupCalls := routerServer(t, 0)

	client, err := routerquery.NewClient(primary.URL, []string{backup.URL, "not a url"}, testConfig())
	assert.NoError(t, err)
	defer client.Close()

	response, err := client.Quote(context.Background(), quoteRequest())
	assert.NoError(t, err)
	assert.Equal(t, len(response.Routes), 1)
	assert.Equal(t, primaryCalls.Load(), int32(3))
	assert.Equal(t, backupCalls.Load(), int32(1))
	assert.Equal(t, client.CurrentURL(), backup.URL)
}

func TestQuoteRejectsBadRoutes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"routes": [{"paths": [{"chainId": "Oraichain", "actions": [{"type": "Teleport"}]}]}]}`)
	}))
	defer server.Close()

	client, err := routerquery.NewClient(server.URL, nil, testConfig())
	assert.NoError(t, err)
	defer client.Close()

	_, err = client.Quote(context.Background(), quoteRequest())
	assert.True(t, errors.Is(err, route.ErrUnknownActionType))
}

func TestQuoteValidation(t *testing.T) {
	client, err := routerquery.NewClient("http://127.0.0.1:1", nil, testConfig())
	assert.NoError(t, err)
	defer client.Close()

	noAmount := quoteRequest()
	noAmount.OfferAmount = sdkmath.Int{}
	zero := quoteRequest()
	zero.OfferAmount = sdkmath.ZeroInt()
	noDest := quoteRequest()
	noDest.DestChainID = ""

	tests := []struct {
		name string
		req  routerquery.QuoteRequest
	}{
		{"missing amount", noAmount},
		{"zero amount", zero},
		{"missing destination chain", noDest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.Quote(context.Background(), tt.req)
			assert.Error(t, err)
		})
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	_, err := routerquery.NewClient("ftp://router", nil, testConfig())
	assert.Error(t, err)

	_, err = routerquery.NewClient("https://", nil, testConfig())
	assert.Error(t, err)
}

func TestQuoteCanceled(t *testing.T) {
	server, _ := routerServer(t, 100)
	config := testConfig()
	config.RetryDelay = time.Hour

	client, err := routerquery.NewClient(server.URL, nil, config)
	assert.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.Quote(ctx, quoteRequest())
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestQuoteSpans(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	server, _ := routerServer(t, 1)
	client, err := routerquery.NewClient(server.URL, nil, testConfig(), routerquery.WithTracerProvider(tp))
	assert.NoError(t, err)
	defer client.Close()

	_, err = client.Quote(context.Background(), quoteRequest())
	assert.NoError(t, err)

	_, err = client.Quote(context.Background(), routerquery.QuoteRequest{})
	assert.Error(t, err)

	spans := exporter.GetSpans()
	assert.Equal(t, len(spans), 2)
	assert.Equal(t, spans[0].Name, "routerquery.Quote")
	assert.Equal(t, len(spans[0].Events), 2)
	assert.Equal(t, spans[0].Status.Code, codes.Unset)
	assert.Equal(t, spans[1].Status.Code, codes.Error)
}

func TestBestRoute(t *testing.T) {
	_, ok := routerquery.BestRoute(route.Response{})
	assert.False(t, ok)

	best, ok := routerquery.BestRoute(route.Response{Routes: []route.Route{
		{ReturnAmount: sdkmath.NewInt(10)},
		{},
		{ReturnAmount: sdkmath.NewInt(30)},
		{ReturnAmount: sdkmath.NewInt(20)},
	}})
	assert.True(t, ok)
	assert.Equal(t, best.ReturnAmount.String(), "30")
}
