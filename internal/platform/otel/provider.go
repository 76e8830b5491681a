// Package otel configures OpenTelemetry tracing for registrar processes.
package otel

import (
	"context"
	"fmt"

	"github.com/louisbranch/registrar/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Settings holds the tracing environment.
type Settings struct {
	Enabled     bool    `env:"REGISTRAR_OTEL_ENABLED" envDefault:"true"`
	Endpoint    string  `env:"REGISTRAR_OTEL_ENDPOINT"`
	SampleRatio float64 `env:"REGISTRAR_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Setup initialises OpenTelemetry tracing for the given service.
//
// Tracing is opt-in: when REGISTRAR_OTEL_ENDPOINT is empty or
// REGISTRAR_OTEL_ENABLED is false, Setup returns a no-op shutdown function
// and no global provider is registered.
//
// The returned shutdown function flushes pending spans and should be deferred
// by the caller.
func Setup(ctx context.Context, serviceName string) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }

	var settings Settings
	if err := config.ParseEnv(&settings); err != nil {
		return noop, fmt.Errorf("otel settings: %w", err)
	}
	if !settings.Enabled || settings.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(settings.Endpoint),
	)
	if err != nil {
		return noop, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
		),
	)
	if err != nil {
		return noop, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(settings.SampleRatio)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio >= 1:
		return sdktrace.AlwaysSample()
	case ratio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))
	}
}
