// Package tracing wires OpenTelemetry into the Lambda runtime and the AWS SDK.
package tracing

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda/xrayconfig"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Start registers the X-Ray tracer provider globally and returns the options
// the handler must be instrumented with.
func Start(ctx context.Context) ([]otellambda.Option, error) {
	tp, err := xrayconfig.NewTracerProvider(ctx)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	return xrayconfig.WithRecommendedOptions(tp), nil
}

// Instrument wraps a Lambda handler so each invocation opens a root span.
func Instrument(handler interface{}, options []otellambda.Option) interface{} {
	return otellambda.InstrumentHandler(handler, options...)
}

// InstrumentConfig adds SDK call spans to every client built from cfg.
func InstrumentConfig(cfg *aws.Config) {
	otelaws.AppendMiddlewares(&cfg.APIOptions)
}

func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

func UserId(id string) attribute.KeyValue {
	return attribute.String("user.id", id)
}

func EntityId(id string) attribute.KeyValue {
	return attribute.String("entity.id", id)
}

func RecordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
