// Package tracing provides OpenTelemetry tracing for sync operations. It
// supports stdout and OTLP/HTTP exporters and offers span helpers shaped
// after the orchestrator's operations.
package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/MKhiriev/go-req-sync/internal/config"
	"github.com/MKhiriev/go-req-sync/internal/utils"
	"github.com/MKhiriev/go-req-sync/models"
)

// TracerName is the instrumentation scope of every span.
const TracerName = "github.com/MKhiriev/go-req-sync"

// Config holds tracing configuration.
type Config struct {
	Enabled      bool
	ExporterType string
	OTLPEndpoint string
	ServiceName  string
	Version      string
	SampleRate   float64
	Output       io.Writer // stdout exporter destination, os.Stdout when nil
}

// ConfigFrom converts the application configuration.
func ConfigFrom(cfg config.Tracing, app config.App) Config {
	return Config{
		Enabled:      cfg.Enabled,
		ExporterType: cfg.Exporter,
		OTLPEndpoint: cfg.OTLPEndpoint,
		ServiceName:  "go-req-sync",
		Version:      app.Version,
		SampleRate:   cfg.SampleRate,
	}
}

// Tracer wraps an OpenTelemetry tracer together with its provider.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
}

// Nop returns a tracer whose spans are discarded.
func Nop() *Tracer {
	return &Tracer{tracer: noop.NewTracerProvider().Tracer(TracerName)}
}

// New creates a Tracer. A disabled configuration yields [Nop].
func New(ctx context.Context, cfg Config) (*Tracer, error) {
	if !cfg.Enabled || cfg.ExporterType == "" || cfg.ExporterType == config.ExporterNone {
		return Nop(), nil
	}

	exporter, err := createExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
		),
		resource.WithHost(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var sampler sdktrace.Sampler
	switch {
	case cfg.SampleRate >= 1.0:
		sampler = sdktrace.AlwaysSample()
	case cfg.SampleRate <= 0.0:
		sampler = sdktrace.NeverSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	otel.SetTracerProvider(provider)

	return &Tracer{
		tracer:   provider.Tracer(TracerName, trace.WithInstrumentationVersion(cfg.Version)),
		provider: provider,
	}, nil
}

func createExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.ExporterType {
	case config.ExporterStdout:
		opts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
		if cfg.Output != nil {
			opts = append(opts, stdouttrace.WithWriter(cfg.Output))
		}
		return stdouttrace.New(opts...)

	case config.ExporterOTLP:
		opts := []otlptracehttp.Option{otlptracehttp.WithInsecure()}
		if cfg.OTLPEndpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.OTLPEndpoint))
		}
		return otlptracehttp.New(ctx, opts...)

	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.ExporterType)
	}
}

// Shutdown flushes pending spans and stops the provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// Start starts a new span with the given name.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// SyncSpan covers one orchestrator operation.
type SyncSpan struct {
	span trace.Span
}

// StartSyncSpan starts a span for operation op. collectionID may be empty
// for operations spanning every collection.
func (t *Tracer) StartSyncSpan(ctx context.Context, op, collectionID string) (context.Context, *SyncSpan) {
	attrs := []attribute.KeyValue{attribute.String("sync.operation", op)}
	if collectionID != "" {
		attrs = append(attrs, attribute.String("collection.id", collectionID))
	}
	if traceID, ok := utils.GetTraceIDFromContext(ctx); ok {
		attrs = append(attrs, attribute.String("request.trace_id", traceID))
	}

	ctx, span := t.tracer.Start(ctx, "sync."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	return ctx, &SyncSpan{span: span}
}

// SetPlan records the merge classification sizes.
func (s *SyncSpan) SetPlan(plan models.MergePlan) {
	s.span.SetAttributes(
		attribute.Int("merge.push", len(plan.Push)),
		attribute.Int("merge.skip", len(plan.Skip)),
		attribute.Int("merge.delete", len(plan.Delete)),
		attribute.Int("merge.conflicts", len(plan.Conflicts)),
	)
}

// SetCommit records the id of the remote revision written.
func (s *SyncSpan) SetCommit(commitID string) {
	s.span.SetAttributes(attribute.String("remote.commit_id", commitID))
}

// AddEvent adds a named event to the span.
func (s *SyncSpan) AddEvent(name string, attrs ...attribute.KeyValue) {
	s.span.AddEvent(name, trace.WithAttributes(attrs...))
}

// Finish ends the span, marking it failed when err is non-nil.
func (s *SyncSpan) Finish(err error) {
	if err != nil {
		s.span.RecordError(err)
		s.span.SetStatus(codes.Error, err.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()
}
