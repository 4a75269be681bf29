package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	lookups       metric.Int64Counter
	blocks        metric.Int64Counter
	callsRecorded metric.Int64Counter
	feedback      metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "callshield"
	}
	meter := provider.Meter(name)

	lookups, err := meter.Int64Counter("callshield_lookups_total")
	if err != nil {
		return nil, err
	}
	blocks, err := meter.Int64Counter("callshield_blocks_total")
	if err != nil {
		return nil, err
	}
	callsRecorded, err := meter.Int64Counter("callshield_calls_recorded_total")
	if err != nil {
		return nil, err
	}
	feedback, err := meter.Int64Counter("callshield_feedback_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		lookups:       lookups,
		blocks:        blocks,
		callsRecorded: callsRecorded,
		feedback:      feedback,
	}, nil
}

// RecordLookup increments lookup counts by hit/miss and classification.
func (m *Metrics) RecordLookup(ctx context.Context, found bool, classification string) {
	if m == nil {
		return
	}
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("found", found),
		attribute.String("classification", strings.TrimSpace(classification)),
	))
}

// RecordBlock increments block counts by provenance.
func (m *Metrics) RecordBlock(ctx context.Context, autoBlocked bool) {
	if m == nil {
		return
	}
	m.blocks.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("auto_blocked", autoBlocked),
	))
}

// RecordCall increments recorded call counts by direction.
func (m *Metrics) RecordCall(ctx context.Context, direction string) {
	if m == nil {
		return
	}
	m.callsRecorded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("direction", strings.TrimSpace(direction)),
	))
}

// RecordFeedback increments feedback submission counts.
func (m *Metrics) RecordFeedback(ctx context.Context, verdict string) {
	if m == nil {
		return
	}
	m.feedback.Add(ctx, 1, metric.WithAttributes(
		attribute.String("verdict", strings.TrimSpace(verdict)),
	))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "http", "http/protobuf":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp protocol %q", protocol)
	}
}
