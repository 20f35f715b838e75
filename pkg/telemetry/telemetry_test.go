package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/beout/beout-admin/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans routes StartSpan to an in-memory recorder for the test
func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	global = &providers{tracer: tp.Tracer("test"), shutdown: []func(context.Context) error{tp.Shutdown}}
	t.Cleanup(func() { global = nil })
	return rec
}

func TestInit_Disabled(t *testing.T) {
	t.Cleanup(func() { global = nil })
	ctx := context.Background()

	require.NoError(t, Init(ctx, nil))
	require.NotNil(t, global)
	assert.NotNil(t, global.tracer)
	assert.NotNil(t, GetMeter())

	require.NoError(t, Init(ctx, &Config{Enabled: false, ServiceName: "beout-admin"}))
	assert.Empty(t, global.shutdown)
	assert.NoError(t, Shutdown(ctx))
}

func TestShutdown_NilGlobal(t *testing.T) {
	global = nil
	assert.NoError(t, Shutdown(context.Background()))
}

func TestFromAppConfig(t *testing.T) {
	cfg := &config.Config{
		App:  config.AppConfig{Name: "beout-admin", Version: "2.0.0", Environment: "staging"},
		OTel: config.OTelConfig{Enabled: true, CollectorAddr: "otel:4317", SampleRatio: 0.5},
	}

	tc := FromAppConfig(cfg)
	assert.True(t, tc.Enabled)
	assert.Equal(t, "beout-admin", tc.ServiceName)
	assert.Equal(t, "2.0.0", tc.ServiceVersion)
	assert.Equal(t, "staging", tc.Environment)
	assert.Equal(t, "otel:4317", tc.CollectorAddr)
	assert.Equal(t, 0.5, tc.SampleRatio)

	cfg.OTel.ServiceName = "custom"
	assert.Equal(t, "custom", FromAppConfig(cfg).ServiceName)
}

func TestStartSpan_BeforeInit(t *testing.T) {
	global = nil
	ctx := context.Background()

	newCtx, span := StartSpan(ctx, "noop")
	assert.Equal(t, ctx, newCtx)
	assert.False(t, span.SpanContext().IsValid())
}

func TestTrace(t *testing.T) {
	rec := recordSpans(t)
	ctx := context.Background()
	declined := errors.New("card declined")

	err := Trace(ctx, "payment.refund", func(context.Context) error { return declined },
		attribute.String("payment_id", "pay-1"))
	assert.ErrorIs(t, err, declined)

	require.NoError(t, Trace(ctx, "push.send_test", func(ctx context.Context) error {
		_, child := StartSpan(ctx, "fcm.send")
		child.End()
		return nil
	}))

	spans := rec.Ended()
	require.Len(t, spans, 3)

	refund := spans[0]
	assert.Equal(t, "payment.refund", refund.Name())
	assert.Equal(t, codes.Error, refund.Status().Code)
	assert.Equal(t, "card declined", refund.Status().Description)
	assert.Contains(t, refund.Attributes(), attribute.String("payment_id", "pay-1"))
	require.Len(t, refund.Events(), 1)
	assert.Equal(t, "exception", refund.Events()[0].Name)

	child, parent := spans[1], spans[2]
	assert.Equal(t, "fcm.send", child.Name())
	assert.Equal(t, parent.SpanContext().SpanID(), child.Parent().SpanID())
	assert.Equal(t, codes.Unset, parent.Status().Code)

	assert.NoError(t, Shutdown(ctx))
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(0).Description())
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.TraceIDRatioBased(0.25).Description(), sampler(0.25).Description())
}

func TestServiceResource(t *testing.T) {
	res := serviceResource(&Config{ServiceName: "beout-admin", ServiceVersion: "1.0.0", Environment: "test"})

	attrs := map[attribute.Key]string{}
	for _, attr := range res.Attributes() {
		attrs[attr.Key] = attr.Value.Emit()
	}
	assert.Equal(t, "beout", attrs["service.namespace"])
	assert.Equal(t, "beout-admin", attrs["service.name"])
	assert.Equal(t, "1.0.0", attrs["service.version"])
}
