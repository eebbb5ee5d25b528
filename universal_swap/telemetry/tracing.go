// Package telemetry sets up OpenTelemetry tracing for the smart router client
// and the CLI. Metrics stay on the prometheus client and logs on zerolog.
package telemetry

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
)

// TracingConfig configures the trace exporter
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string

	EnableTracing bool
	// OTLPTracesURL is the full collector URL, e.g. http://localhost:4318/v1/traces
	OTLPTracesURL string

	// InsecureOTLP allows plain HTTP to the collector
	InsecureOTLP   bool
	OTLPCACertFile string

	// DevelopmentMode prints spans to stdout instead of exporting them
	DevelopmentMode bool
}

func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName:    "oraidex-sdk",
		ServiceVersion: "1.0.0",
		Environment:    "production",
		EnableTracing:  false,
		OTLPTracesURL:  "http://localhost:4318/v1/traces",
	}
}

// Setup installs the global tracer provider and propagator. The returned
// shutdown flushes pending spans and must be called before exit.
func Setup(ctx context.Context, config TracingConfig) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }
	if !config.EnableTracing {
		return noop, nil
	}

	res, err := newResource(config)
	if err != nil {
		return noop, fmt.Errorf("failed to create resource: %w", err)
	}

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tracerProvider, err := newTracerProvider(ctx, res, config)
	if err != nil {
		return noop, err
	}
	otel.SetTracerProvider(tracerProvider)

	return func(ctx context.Context) error {
		return errors.Join(tracerProvider.ForceFlush(ctx), tracerProvider.Shutdown(ctx))
	}, nil
}

func newResource(config TracingConfig) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironmentName(config.Environment),
		),
	)
}

func buildTLSConfig(config TracingConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{MinVersion: tls.VersionTLS12}
	if config.OTLPCACertFile == "" {
		return tlsConfig, nil
	}
	caCert, err := os.ReadFile(config.OTLPCACertFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("failed to append CA certificate")
	}
	tlsConfig.RootCAs = pool
	return tlsConfig, nil
}

func newTracerProvider(ctx context.Context, res *resource.Resource, config TracingConfig) (*trace.TracerProvider, error) {
	var exporter trace.SpanExporter
	var err error

	if config.DevelopmentMode {
		exporter, err = stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
		}
	} else {
		opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(config.OTLPTracesURL)}
		if config.InsecureOTLP {
			opts = append(opts, otlptracehttp.WithInsecure())
		} else {
			tlsConfig, err := buildTLSConfig(config)
			if err != nil {
				return nil, fmt.Errorf("failed to build TLS config for traces: %w", err)
			}
			opts = append(opts, otlptracehttp.WithTLSClientConfig(tlsConfig))
		}
		exporter, err = otlptracehttp.New(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
		}
	}

	return trace.NewTracerProvider(
		trace.WithBatcher(exporter, trace.WithBatchTimeout(5*time.Second)),
		trace.WithResource(res),
	), nil
}
