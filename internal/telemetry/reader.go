package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/texforge/texpack/internal/imagemeta"
)

const readerScopeName = "github.com/texforge/texpack/imagemeta"

// InstrumentedReader wraps imagemeta.Reader with OTel tracing and metrics.
// Every decode gets a span and is counted in texpack.images.* metrics.
// Use WrapReader to create one; it returns the original reader unchanged when
// telemetry is disabled.
type InstrumentedReader struct {
	inner  imagemeta.Reader
	tracer trace.Tracer
	ops    metric.Int64Counter
	dur    metric.Float64Histogram
	errs   metric.Int64Counter
}

// WrapReader returns r decorated with OTel instrumentation.
// When telemetry is disabled, r is returned as-is with zero overhead.
func WrapReader(r imagemeta.Reader) imagemeta.Reader {
	if !Enabled() {
		return r
	}
	m := Meter(readerScopeName)
	ops, _ := m.Int64Counter("texpack.images.operations",
		metric.WithDescription("Total image decode operations executed"),
	)
	dur, _ := m.Float64Histogram("texpack.images.operation.duration",
		metric.WithDescription("Image decode operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	errs, _ := m.Int64Counter("texpack.images.errors",
		metric.WithDescription("Total image decode errors"),
	)
	return &InstrumentedReader{
		inner:  r,
		tracer: Tracer(readerScopeName),
		ops:    ops,
		dur:    dur,
		errs:   errs,
	}
}

// op starts a span and records a metric for the named decode operation.
func (r *InstrumentedReader) op(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span, time.Time) {
	all := append([]attribute.KeyValue{attribute.String("image.operation", name)}, attrs...)
	ctx, span := r.tracer.Start(ctx, "imagemeta."+name,
		trace.WithAttributes(all...),
	)
	r.ops.Add(ctx, 1, metric.WithAttributes(all...))
	return ctx, span, time.Now()
}

// done ends the span, records duration and optional error.
func (r *InstrumentedReader) done(ctx context.Context, span trace.Span, start time.Time, err error, attrs ...attribute.KeyValue) {
	ms := float64(time.Since(start).Milliseconds())
	r.dur.Record(ctx, ms, metric.WithAttributes(attrs...))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.errs.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	span.End()
}

func (r *InstrumentedReader) Info(ctx context.Context, path string) (imagemeta.Info, error) {
	attrs := []attribute.KeyValue{attribute.String("image.path", path)}
	ctx, span, t := r.op(ctx, "Info", attrs...)
	info, err := r.inner.Info(ctx, path)
	if err == nil {
		span.SetAttributes(
			attribute.String("image.format", info.Format),
			attribute.Int("image.width", info.Width),
			attribute.Int("image.height", info.Height),
		)
	}
	r.done(ctx, span, t, err, attrs...)
	return info, err
}

func (r *InstrumentedReader) Extrema(ctx context.Context, path string) (imagemeta.Extrema, error) {
	attrs := []attribute.KeyValue{attribute.String("image.path", path)}
	ctx, span, t := r.op(ctx, "Extrema", attrs...)
	ex, err := r.inner.Extrema(ctx, path)
	r.done(ctx, span, t, err, attrs...)
	return ex, err
}
