package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beout/beout-admin/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.27.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultMetricInterval = 15 * time.Second
	instrumentationName   = "github.com/beout/beout-admin"
)

// Config holds OpenTelemetry configuration
type Config struct {
	Enabled        bool
	ServiceName    string
	ServiceVersion string
	Environment    string
	CollectorAddr  string
	MetricInterval time.Duration
	// SampleRatio of 0 samples every trace
	SampleRatio float64
}

// FromAppConfig builds telemetry settings from the application config
func FromAppConfig(cfg *config.Config) *Config {
	name := cfg.OTel.ServiceName
	if name == "" {
		name = cfg.App.Name
	}
	return &Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}
}

// providers is what Init installed
type providers struct {
	tracer   trace.Tracer
	meter    metric.Meter
	shutdown []func(context.Context) error
}

var global *providers

// Init installs the tracer and meter used by StartSpan and the admin
// metrics. Disabled telemetry falls back to the otel global no-op providers.
func Init(ctx context.Context, cfg *Config) error {
	if cfg == nil || !cfg.Enabled {
		global = &providers{
			tracer: otel.Tracer(instrumentationName),
			meter:  otel.Meter(instrumentationName),
		}
		return nil
	}

	interval := cfg.MetricInterval
	if interval <= 0 {
		interval = defaultMetricInterval
	}
	res := serviceResource(cfg)

	spanExporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(cfg.CollectorAddr),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return fmt.Errorf("otlp trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(spanExporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler(cfg.SampleRatio)),
	)

	metricExporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(cfg.CollectorAddr),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return fmt.Errorf("otlp metric exporter: %w", err)
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter, sdkmetric.WithInterval(interval))),
	)

	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	global = &providers{
		tracer:   tp.Tracer(instrumentationName),
		meter:    mp.Meter(instrumentationName),
		shutdown: []func(context.Context) error{tp.Shutdown, mp.Shutdown},
	}
	return nil
}

// serviceResource describes the admin service. It is not merged with
// resource.Default() because that carries a newer schema URL than semconv v1.27.0.
func serviceResource(cfg *Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		semconv.DeploymentEnvironmentNameKey.String(cfg.Environment),
		attribute.String("service.namespace", "beout"),
		semconv.TelemetrySDKLanguageGo,
	)
}

func sampler(ratio float64) sdktrace.Sampler {
	switch {
	case ratio <= 0 || ratio >= 1:
		return sdktrace.AlwaysSample()
	default:
		return sdktrace.TraceIDRatioBased(ratio)
	}
}

// Shutdown flushes and stops whatever Init installed
func Shutdown(ctx context.Context) error {
	if global == nil {
		return nil
	}
	var errs []error
	for _, stop := range global.shutdown {
		if err := stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	global.shutdown = nil
	return errors.Join(errs...)
}

// GetMeter returns the meter admin metrics are created on
func GetMeter() metric.Meter {
	if global == nil || global.meter == nil {
		return otel.Meter(instrumentationName)
	}
	return global.meter
}

// StartSpan starts a span named name. Before Init it returns ctx unchanged
// along with the span already in ctx.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if global == nil || global.tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return global.tracer.Start(ctx, name, opts...)
}

// SetSpanError records err on the span in ctx and marks it failed
func SetSpanError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// Trace runs fn inside a span named name, marking the span failed when fn
// returns an error.
func Trace(ctx context.Context, name string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	ctx, span := StartSpan(ctx, name, trace.WithAttributes(attrs...))
	defer span.End()

	if err := fn(ctx); err != nil {
		SetSpanError(ctx, err)
		return err
	}
	return nil
}
