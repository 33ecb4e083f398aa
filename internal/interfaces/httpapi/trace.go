package httpapi

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("excitement-engine/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startHandlerSpan nests a handler span under the otelhttp server span. Filtered routes
// such as /healthz have no server span and get a no-op.
func startHandlerSpan(r *http.Request, name string) (context.Context, trace.Span) {
	ctx := r.Context()
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, "httpapi.Handler."+name,
		trace.WithAttributes(attribute.String("http.route", r.Pattern)),
	)
}

// markSpanError flags server-side failures on the active span. Client errors stay unset
// so 4xx responses do not show up as failed traces.
func markSpanError(ctx context.Context, err error, status int) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() || status < http.StatusInternalServerError {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
