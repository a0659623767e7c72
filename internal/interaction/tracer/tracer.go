// Package tracer is the tracing seam used by interaction recording. Callers
// depend on Tracer; OTelTracer backs it in production and NoopTracer in tests.
package tracer

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// Span represents an active trace span. End must be called exactly once.
type Span interface {
	// End completes the span, marking it failed when err is non-nil.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a span attribute. It is the OpenTelemetry type so spans need
// no conversion on the hot path.
type Attribute = attribute.KeyValue

var (
	String = attribute.String
	Bool   = attribute.Bool
	Int64  = attribute.Int64
)

// Duration records d in whole milliseconds.
func Duration(key string, d time.Duration) Attribute {
	return attribute.Int64(key, d.Milliseconds())
}

const (
	SpanCreateInteraction = "interaction.create"
	SpanValidateRefs      = "interaction.validate_references"
	SpanExistenceCheck    = "existence.check"
)

const (
	AttrTarget        = "existence.target"
	AttrEntityID      = "existence.entity_id"
	AttrOutcome       = "existence.outcome"
	AttrCategory      = "existence.error_category"
	AttrConcurrent    = "existence.concurrent"
	AttrDurationMs    = "existence.duration_ms"
	AttrUserID        = "interaction.user_id"
	AttrProductID     = "interaction.product_id"
	AttrInteractionID = "interaction.id"
)

const (
	EventPersisted = "interaction.persisted"
	EventRejected  = "interaction.rejected"
)
