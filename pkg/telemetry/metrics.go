package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricOpts holds options for creating metrics
type MetricOpts struct {
	Name        string
	Description string
	Unit        string
}

// Counter wraps an OTel counter for easier use
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a new counter metric
func NewCounter(opts MetricOpts) (*Counter, error) {
	counter, err := GetMeter().Int64Counter(
		opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Counter{counter: counter}, nil
}

// Add increments the counter by the given value
func (c *Counter) Add(ctx context.Context, value int64, attrs ...attribute.KeyValue) {
	if c == nil {
		return
	}
	c.counter.Add(ctx, value, metric.WithAttributes(attrs...))
}

// Inc increments the counter by 1
func (c *Counter) Inc(ctx context.Context, attrs ...attribute.KeyValue) {
	c.Add(ctx, 1, attrs...)
}

// Histogram wraps an OTel histogram for easier use
type Histogram struct {
	histogram metric.Float64Histogram
}

// NewHistogram creates a new histogram metric
func NewHistogram(opts MetricOpts) (*Histogram, error) {
	histogram, err := GetMeter().Float64Histogram(
		opts.Name,
		metric.WithDescription(opts.Description),
		metric.WithUnit(opts.Unit),
	)
	if err != nil {
		return nil, err
	}
	return &Histogram{histogram: histogram}, nil
}

// Record records a value in the histogram
func (h *Histogram) Record(ctx context.Context, value float64, attrs ...attribute.KeyValue) {
	if h == nil {
		return
	}
	h.histogram.Record(ctx, value, metric.WithAttributes(attrs...))
}

// Metric attribute keys
const (
	AttrActionType   = "admin.action_type"
	AttrOutcome      = "outcome"
	AttrLanguage     = "language"
	AttrTemplateName = "template.name"
	AttrCurrency     = "payment.currency"
	AttrPaymentID    = "payment.id"
)

// ActionTypeAttr labels an admin action type
func ActionTypeAttr(actionType string) attribute.KeyValue {
	return attribute.String(AttrActionType, actionType)
}

// OutcomeAttr labels success or failure
func OutcomeAttr(ok bool) attribute.KeyValue {
	if ok {
		return attribute.String(AttrOutcome, "success")
	}
	return attribute.String(AttrOutcome, "failure")
}

// LanguageAttr labels a content language
func LanguageAttr(lang string) attribute.KeyValue {
	return attribute.String(AttrLanguage, lang)
}

// PaymentAttr labels a payment transaction
func PaymentAttr(paymentID string) attribute.KeyValue {
	return attribute.String(AttrPaymentID, paymentID)
}

// TemplateAttr labels a template name
func TemplateAttr(name string) attribute.KeyValue {
	return attribute.String(AttrTemplateName, name)
}

// AdminMetrics groups the counters the admin service records
type AdminMetrics struct {
	AdminActions   *Counter
	Refunds        *Counter
	RefundedAmount *Histogram
	EmailsSent     *Counter
	PushPublished  *Counter
}

// NewAdminMetrics registers the admin counters on the global meter
func NewAdminMetrics() (*AdminMetrics, error) {
	actions, err := NewCounter(MetricOpts{
		Name:        "admin.actions",
		Description: "Admin actions recorded",
		Unit:        "{action}",
	})
	if err != nil {
		return nil, err
	}

	refunds, err := NewCounter(MetricOpts{
		Name:        "admin.refunds",
		Description: "Refunds issued from the admin console",
		Unit:        "{refund}",
	})
	if err != nil {
		return nil, err
	}

	amount, err := NewHistogram(MetricOpts{
		Name:        "admin.refunds.amount",
		Description: "Refunded amount per refund",
		Unit:        "{currency}",
	})
	if err != nil {
		return nil, err
	}

	emails, err := NewCounter(MetricOpts{
		Name:        "admin.emails.sent",
		Description: "Emails sent through the admin console",
		Unit:        "{email}",
	})
	if err != nil {
		return nil, err
	}

	pushes, err := NewCounter(MetricOpts{
		Name:        "admin.push.published",
		Description: "Push notification jobs published",
		Unit:        "{job}",
	})
	if err != nil {
		return nil, err
	}

	return &AdminMetrics{
		AdminActions:   actions,
		Refunds:        refunds,
		RefundedAmount: amount,
		EmailsSent:     emails,
		PushPublished:  pushes,
	}, nil
}
