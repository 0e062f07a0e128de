package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/robbyt/go-polytemplate/platform/constants"
)

// Recorder records resolver metrics.
// Use NewRecorder() for OTel metrics or NoopRecorder{} when disabled.
type Recorder interface {
	// RecordResolve records one Resolve call with its duration and error status.
	RecordResolve(ctx context.Context, strict bool, duration time.Duration, err error)

	// RecordCacheLookup records a lookup in the named cache.
	RecordCacheLookup(ctx context.Context, cache string, hit bool)
}

type otelRecorder struct {
	resolveCount    metric.Int64Counter
	resolveDuration metric.Float64Histogram
	cacheLookups    metric.Int64Counter
}

var (
	defaultRecorder     *otelRecorder
	defaultRecorderOnce sync.Once
	defaultRecorderErr  error
)

func getDefaultRecorder() (*otelRecorder, error) {
	defaultRecorderOnce.Do(func() {
		defaultRecorder, defaultRecorderErr = newOtelRecorder()
	})
	return defaultRecorder, defaultRecorderErr
}

func newOtelRecorder() (*otelRecorder, error) {
	meter := otel.Meter(constants.MeterName)

	resolveCount, err := meter.Int64Counter(constants.MetricResolveCount,
		metric.WithDescription("Number of template resolutions"),
	)
	if err != nil {
		return nil, err
	}

	resolveDuration, err := meter.Float64Histogram(constants.MetricResolveDuration,
		metric.WithDescription("Template resolution latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(constants.MetricExpressionCache,
		metric.WithDescription("Number of compiled expression cache lookups"),
	)
	if err != nil {
		return nil, err
	}

	return &otelRecorder{
		resolveCount:    resolveCount,
		resolveDuration: resolveDuration,
		cacheLookups:    cacheLookups,
	}, nil
}

// NewRecorder returns a Recorder backed by the global OTel meter provider.
// If instrument creation fails, it returns a no-op recorder.
func NewRecorder() Recorder {
	r, err := getDefaultRecorder()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopRecorder{}
	}
	return r
}

func (r *otelRecorder) RecordResolve(ctx context.Context, strict bool, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.Bool("strict", strict),
		attribute.Bool("success", err == nil),
	)
	r.resolveCount.Add(ctx, 1, attrs)
	r.resolveDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

func (r *otelRecorder) RecordCacheLookup(ctx context.Context, cache string, hit bool) {
	r.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("cache", cache),
		attribute.Bool("hit", hit),
	))
}

// NoopRecorder discards all measurements.
type NoopRecorder struct{}

func (NoopRecorder) RecordResolve(context.Context, bool, time.Duration, error) {}

func (NoopRecorder) RecordCacheLookup(context.Context, string, bool) {}
