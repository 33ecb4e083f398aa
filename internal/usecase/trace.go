package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("excitement-engine/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only nests under an existing span, so helpers called outside a request
// or a batch run do not produce stray root spans.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if name == "" || !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// startRunSpan opens the span a batch run hangs off. Cron-triggered runs have no parent,
// so this one is allowed to be a root.
func startRunSpan(ctx context.Context, result BatchResult) (context.Context, trace.Span) {
	return usecaseTracer.Start(ctx, "usecase.ExcitementService.Run."+result.Mode,
		trace.WithAttributes(
			attribute.String("excitement.run_id", result.RunID),
			attribute.String("excitement.mode", result.Mode),
		),
	)
}

func endRunSpan(span trace.Span, result BatchResult, err error) {
	span.SetAttributes(
		attribute.Int("excitement.total", result.Total),
		attribute.Int("excitement.scored", result.Scored),
		attribute.Int("excitement.skipped", result.Skipped),
		attribute.Int("excitement.failed", result.Failed),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

func fixtureAttr(fixtureID string) attribute.KeyValue {
	return attribute.String("excitement.fixture_id", fixtureID)
}
