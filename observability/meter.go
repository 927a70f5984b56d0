package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/sitekit/logger"
)

// InitMeter installs a global meter provider exporting over OTLP/HTTP every interval.
func InitMeter(ctx context.Context, cfg Config, interval time.Duration) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(interval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields("endpoint", cfg.Endpoint, "interval", interval.String()))
	return mp, nil
}

// FetchMetrics holds the instruments recorded by the fetch wrapper and providers.
type FetchMetrics struct {
	fetchTotal    metric.Int64Counter
	fetchDuration metric.Float64Histogram
	discarded     metric.Int64Counter
}

// NewFetchMetrics creates instruments on mp, or on the global provider when mp is nil.
func NewFetchMetrics(mp metric.MeterProvider) (*FetchMetrics, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(InstrumentationName)

	fetchTotal, err := meter.Int64Counter("fetch.total",
		metric.WithDescription("Completed fetch calls by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.total counter: %w", err)
	}
	fetchDuration, err := meter.Float64Histogram("fetch.duration",
		metric.WithDescription("Fetch duration including simulated loading"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating fetch.duration histogram: %w", err)
	}
	discarded, err := meter.Int64Counter("provider.discarded",
		metric.WithDescription("Provider loads dropped because a newer load was issued"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating provider.discarded counter: %w", err)
	}

	return &FetchMetrics{fetchTotal: fetchTotal, fetchDuration: fetchDuration, discarded: discarded}, nil
}

// RecordFetch records one completed fetch. outcome is "ok" or an error kind.
// A nil receiver records nothing.
func (m *FetchMetrics) RecordFetch(ctx context.Context, method, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetchTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("outcome", outcome),
	))
	m.fetchDuration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String("method", method)))
}

// RecordDiscarded records a provider load whose result was dropped as stale.
func (m *FetchMetrics) RecordDiscarded(ctx context.Context, providerName string) {
	if m == nil {
		return
	}
	m.discarded.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", providerName)))
}
