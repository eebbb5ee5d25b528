package routerquery

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/route"
)

var log zerolog.Logger

func init() {
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	log = zerolog.New(out).With().Timestamp().Str("component", "routerquery").Logger()
}

const (
	tracerName = "github.com/Cogwheel-Validator/oraidex-sdk/universal_swap/router_query"

	// QuotePath is the smart router endpoint answering route quotes
	QuotePath = "/smart-router/alpha-router"
)

// DefaultProtocols are the venues the smart router may route through
var DefaultProtocols = []string{"Oraidex", "OraidexV3", "Osmosis"}

// Client queries the OraiDEX smart router with failover support.
// It keeps a primary endpoint and switches to a backup endpoint when the
// primary stops answering, going back once the primary is healthy again.
type Client struct {
	httpClient     *http.Client
	primaryURL     string
	backupURLs     []string
	currentURL     string
	mu             sync.RWMutex
	healthChecker  *healthChecker
	failoverConfig FailoverConfig
	tracer         trace.Tracer
}

// FailoverConfig controls failover behavior
type FailoverConfig struct {
	// MaxRetries is the number of times to retry a failed request on the current endpoint
	MaxRetries int
	// RetryDelay is the initial delay between retries (doubles with each retry)
	RetryDelay time.Duration
	// HealthCheckInterval is how often to check if the primary endpoint is back up
	HealthCheckInterval time.Duration
	// HealthPath is requested with GET to decide whether an endpoint is up
	HealthPath string
	// Timeout is the HTTP request timeout
	Timeout time.Duration
}

func DefaultFailoverConfig() FailoverConfig {
	return FailoverConfig{
		MaxRetries:          2,
		RetryDelay:          500 * time.Millisecond,
		HealthCheckInterval: 30 * time.Second,
		HealthPath:          "/health",
		Timeout:             10 * time.Second,
	}
}

type Option func(*Client)

// WithTracerProvider replaces the global tracer provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) { c.tracer = tp.Tracer(tracerName) }
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// healthChecker periodically checks if the primary endpoint is healthy
type healthChecker struct {
	client    *Client
	stopCh    chan struct{}
	stoppedCh chan struct{}
	isRunning bool
	mu        sync.Mutex
}

// NewClient validates the endpoints and starts the health checker when there
// is something to fail over to. Call Close when done.
func NewClient(primaryURL string, backupURLs []string, config FailoverConfig, opts ...Option) (*Client, error) {
	if err := validateURL(primaryURL); err != nil {
		return nil, fmt.Errorf("invalid primary smart router URL: %w", err)
	}

	validBackups := make([]string, 0, len(backupURLs))
	for _, u := range backupURLs {
		if err := validateURL(u); err != nil {
			log.Warn().Err(err).Str("url", u).Msg("Invalid backup URL, skipping")
			continue
		}
		validBackups = append(validBackups, u)
	}

	client := &Client{
		httpClient:     &http.Client{Timeout: config.Timeout},
		primaryURL:     primaryURL,
		backupURLs:     validBackups,
		currentURL:     primaryURL,
		failoverConfig: config,
		tracer:         otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(client)
	}

	if len(validBackups) > 0 && config.HealthCheckInterval > 0 {
		client.startHealthChecker()
	}

	log.Info().
		Str("primary", primaryURL).
		Int("backups", len(validBackups)).
		Msg("Smart router client initialized")
	return client, nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q in %s", u.Scheme, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %s", raw)
	}
	return nil
}

func (c *Client) startHealthChecker() {
	c.healthChecker = &healthChecker{
		client:    c,
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
	c.healthChecker.start()
}

func (h *healthChecker) start() {
	h.mu.Lock()
	if h.isRunning {
		h.mu.Unlock()
		return
	}
	h.isRunning = true
	h.mu.Unlock()

	go func() {
		defer close(h.stoppedCh)
		ticker := time.NewTicker(h.client.failoverConfig.HealthCheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-h.stopCh:
				return
			case <-ticker.C:
				h.checkAndRestore()
			}
		}
	}()
}

func (h *healthChecker) stop() {
	h.mu.Lock()
	if !h.isRunning {
		h.mu.Unlock()
		return
	}
	h.isRunning = false
	h.mu.Unlock()

	close(h.stopCh)
	<-h.stoppedCh
}

// checkAndRestore switches back to the primary endpoint once it answers again
func (h *healthChecker) checkAndRestore() {
	h.client.mu.RLock()
	currentURL := h.client.currentURL
	primaryURL := h.client.primaryURL
	h.client.mu.RUnlock()

	if currentURL == primaryURL {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.client.failoverConfig.Timeout)
	defer cancel()
	if h.client.isEndpointHealthy(ctx, primaryURL) {
		h.client.mu.Lock()
		h.client.currentURL = primaryURL
		h.client.mu.Unlock()
		log.Info().Str("url", primaryURL).Msg("Restored primary endpoint")
	}
}

func (c *Client) isEndpointHealthy(ctx context.Context, endpoint string) bool {
	healthURL := endpoint + c.failoverConfig.HealthPath
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("url", healthURL).Msg("Health check failed")
		return false
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	log.Debug().Str("url", healthURL).Int("status", resp.StatusCode).Msg("Health check response")
	return resp.StatusCode == http.StatusOK
}

// CurrentURL returns the endpoint requests are sent to
func (c *Client) CurrentURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentURL
}

// failover switches to the next healthy endpoint, in configuration order
func (c *Client) failover(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	allURLs := append([]string{c.primaryURL}, c.backupURLs...)
	currentIdx := -1
	for i, u := range allURLs {
		if u == c.currentURL {
			currentIdx = i
			break
		}
	}

	for i := 1; i <= len(allURLs); i++ {
		nextURL := allURLs[(currentIdx+i)%len(allURLs)]
		if nextURL == c.currentURL {
			continue
		}
		if c.isEndpointHealthy(ctx, nextURL) {
			c.currentURL = nextURL
			log.Info().Str("url", nextURL).Msg("Failover to endpoint")
			return true
		}
	}

	log.Warn().Str("url", c.currentURL).Msg("All endpoints unhealthy, staying on current")
	return false
}

// Close stops the health checker
func (c *Client) Close() {
	if c.healthChecker != nil {
		c.healthChecker.stop()
	}
}

// statusError is a non 200 answer from the smart router
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.status, e.body)
}

func (c *Client) post(ctx context.Context, endpoint, path string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode, body: string(body)}
	}
	return body, nil
}

// doRequestWithFailover posts payload with retries on the current endpoint,
// then fails over and tries once more on the new endpoint.
func (c *Client) doRequestWithFailover(ctx context.Context, path string, payload []byte) ([]byte, error) {
	var lastErr error
	retryDelay := c.failoverConfig.RetryDelay
	span := trace.SpanFromContext(ctx)

	for attempt := 0; attempt <= c.failoverConfig.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("request canceled after %d attempts: %w", attempt, errors.Join(ctx.Err(), lastErr))
			case <-time.After(retryDelay):
			}
			retryDelay *= 2
		}

		endpoint := c.CurrentURL()
		span.AddEvent("attempt", trace.WithAttributes(
			attribute.Int("attempt", attempt),
			attribute.String("endpoint", endpoint),
		))
		body, err := c.post(ctx, endpoint, path, payload)
		if err == nil {
			return body, nil
		}
		lastErr = err
		log.Debug().Err(err).Int("attempt", attempt).Str("url", endpoint).Msg("Smart router request failed")
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request canceled: %w", errors.Join(ctx.Err(), lastErr))
		}
	}

	if len(c.backupURLs) > 0 && c.failover(ctx) {
		endpoint := c.CurrentURL()
		span.AddEvent("failover", trace.WithAttributes(attribute.String("endpoint", endpoint)))
		body, err := c.post(ctx, endpoint, path, payload)
		if err != nil {
			return nil, fmt.Errorf("failover request failed: %w (original: %w)", err, lastErr)
		}
		return body, nil
	}

	return nil, fmt.Errorf("request failed after %d retries: %w", c.failoverConfig.MaxRetries+1, lastErr)
}

// SwapOptions narrows the venues and split count the router may use
type SwapOptions struct {
	Protocols []string `json:"protocols,omitempty"`
	MaxSplits int      `json:"maxSplits,omitempty"`
}

// QuoteRequest asks for routes moving OfferAmount of SourceAsset on
// SourceChainID into DestAsset on DestChainID.
type QuoteRequest struct {
	SourceAsset   string      `json:"sourceAsset"`
	SourceChainID string      `json:"sourceChainId"`
	DestAsset     string      `json:"destAsset"`
	DestChainID   string      `json:"destChainId"`
	OfferAmount   sdkmath.Int `json:"offerAmount"`
	SwapOptions   SwapOptions `json:"swapOptions"`
}

func (r QuoteRequest) Validate() error {
	if r.SourceAsset == "" || r.DestAsset == "" {
		return errors.New("source and destination assets are required")
	}
	if r.SourceChainID == "" || r.DestChainID == "" {
		return errors.New("source and destination chain ids are required")
	}
	if r.OfferAmount.IsNil() || !r.OfferAmount.IsPositive() {
		return errors.New("offer amount must be positive")
	}
	if r.SwapOptions.MaxSplits < 0 {
		return errors.New("max splits must not be negative")
	}
	return nil
}

// Quote returns the routes the smart router found for req. Every returned
// route has passed route validation.
func (c *Client) Quote(ctx context.Context, req QuoteRequest) (route.Response, error) {
	ctx, span := c.tracer.Start(ctx, "routerquery.Quote", trace.WithAttributes(
		attribute.String("source.asset", req.SourceAsset),
		attribute.String("source.chain_id", req.SourceChainID),
		attribute.String("dest.asset", req.DestAsset),
		attribute.String("dest.chain_id", req.DestChainID),
	))
	defer span.End()

	response, err := c.quote(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return route.Response{}, err
	}
	span.SetAttributes(
		attribute.Int("routes", len(response.Routes)),
		attribute.String("return_amount", response.ReturnAmount.String()),
	)
	return response, nil
}

func (c *Client) quote(ctx context.Context, req QuoteRequest) (route.Response, error) {
	if err := req.Validate(); err != nil {
		return route.Response{}, fmt.Errorf("invalid quote request: %w", err)
	}
	if len(req.SwapOptions.Protocols) == 0 {
		req.SwapOptions.Protocols = DefaultProtocols
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return route.Response{}, fmt.Errorf("failed to encode quote request: %w", err)
	}
	body, err := c.doRequestWithFailover(ctx, QuotePath, payload)
	if err != nil {
		return route.Response{}, err
	}

	var response route.Response
	if err := json.Unmarshal(body, &response); err != nil {
		return route.Response{}, fmt.Errorf("failed to parse quote response: %w", err)
	}
	for i, r := range response.Routes {
		for j, path := range r.Paths {
			if _, err := path.Classify(); err != nil {
				return route.Response{}, fmt.Errorf("route %d path %d: %w", i, j, err)
			}
		}
	}
	return response, nil
}

// BestRoute returns the route with the highest return amount
func BestRoute(response route.Response) (route.Route, bool) {
	if len(response.Routes) == 0 {
		return route.Route{}, false
	}
	best := response.Routes[0]
	for _, r := range response.Routes[1:] {
		if returnAmount(r).GT(returnAmount(best)) {
			best = r
		}
	}
	return best, true
}

func returnAmount(r route.Route) sdkmath.Int {
	if r.ReturnAmount.IsNil() {
		return sdkmath.ZeroInt()
	}
	return r.ReturnAmount
}
