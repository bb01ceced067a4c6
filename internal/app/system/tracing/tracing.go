// Package tracing sets up the OpenTelemetry tracer used by the export pipeline.
//
// Tracing is off unless configured. When off, Tracer returns a no-op tracer so
// instrumented code never has to check.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// InstrumentationName names the tracer handed to pipeline components.
const InstrumentationName = "github.com/tantrafest/tantra/export"

// Span names used by the pipeline.
const (
	SpanGather      = "exportrows.gather"
	SpanBatchChunk  = "batch.chunk"
	SpanResolve     = "participants.resolve"
	SpanRender      = "export.render"
	AttrCollection  = "docstore.collection"
	AttrField       = "docstore.field"
	AttrChunkIndex  = "batch.chunk.index"
	AttrChunkSize   = "batch.chunk.size"
	AttrResultCount = "docstore.result.count"
	AttrFormat      = "export.format"
	AttrRowCount    = "export.rows"
)

// Config selects the exporter. Exporter is "none" or "stdout".
type Config struct {
	Enabled     bool
	Exporter    string
	ServiceName string
}

// Provider owns the tracer provider for the life of the process.
type Provider struct {
	sdk    *sdktrace.TracerProvider
	tracer trace.Tracer
}

// NewProvider builds a provider from cfg. A disabled config yields a no-op tracer.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{tracer: noop.NewTracerProvider().Tracer(InstrumentationName)}, nil
	}

	var opts []sdktrace.TracerProviderOption
	switch cfg.Exporter {
	case "stdout":
		exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		opts = append(opts, sdktrace.WithSyncer(exp))
	case "none", "":
	default:
		return nil, fmt.Errorf("unsupported trace exporter: %s", cfg.Exporter)
	}

	name := cfg.ServiceName
	if name == "" {
		name = "tantra"
	}
	opts = append(opts, sdktrace.WithResource(resource.NewSchemaless(
		attribute.String("service.name", name),
	)))

	sdk := sdktrace.NewTracerProvider(opts...)
	return &Provider{sdk: sdk, tracer: sdk.Tracer(InstrumentationName)}, nil
}

func (p *Provider) Tracer() trace.Tracer { return p.tracer }

// Shutdown flushes pending spans. Safe to call on a disabled provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.sdk == nil {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// OrNoop returns t, or a no-op tracer when t is nil.
func OrNoop(t trace.Tracer) trace.Tracer {
	if t == nil {
		return noop.NewTracerProvider().Tracer(InstrumentationName)
	}
	return t
}
