package otel

import (
	"context"
	"log/slog"
	"time"

	"github.com/adrianliechti/emailbison-mcp/pkg/tool"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Tool interface {
	Observable
	tool.Provider
}

type observableTool struct {
	provider string

	tool tool.Provider

	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

func NewTool(provider string, p tool.Provider) Tool {
	t := &observableTool{
		tool: p,

		provider: provider,
	}

	t.otelSetup()

	return t
}

func (p *observableTool) otelSetup() {
	meter := otel.Meter(instrumentationName)

	p.calls, _ = meter.Int64Counter("emailbison.tool.calls",
		metric.WithDescription("Number of tool invocations"),
	)

	p.duration, _ = meter.Float64Histogram("emailbison.tool.duration",
		metric.WithDescription("Duration of tool invocations"),
		metric.WithUnit("s"),
	)
}

func (p *observableTool) Tools(ctx context.Context) ([]tool.Tool, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "tools")
	defer span.End()

	tools, err := p.tool.Tools(ctx)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return tools, err
}

func (p *observableTool) Execute(ctx context.Context, name string, parameters map[string]any) (any, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "execute_tool "+name, trace.WithAttributes(
		String("tool.provider", p.provider),
		String("tool.name", name),
	))
	defer span.End()

	start := time.Now()

	result, err := p.tool.Execute(ctx, name, parameters)

	elapsed := time.Since(start)

	attrs := metric.WithAttributes(
		String("tool.name", name),
		Bool("tool.error", err != nil),
	)

	if p.calls != nil {
		p.calls.Add(ctx, 1, attrs)
	}

	if p.duration != nil {
		p.duration.Record(ctx, elapsed.Seconds(), attrs)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	if EnableDebug {
		slog.DebugContext(ctx, "tool executed", "tool", name, "duration", elapsed, "error", err)
	}

	return result, err
}
