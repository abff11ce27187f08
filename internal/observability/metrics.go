package observability

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/yungbote/blogwriter-backend"

// Metrics records generation outcomes and backend usage.
type Metrics struct {
	generations metric.Int64Counter
	diagnostics metric.Int64Counter
	llmRequests metric.Int64Counter
	llmLatency  metric.Float64Histogram
	llmTokens   metric.Int64Counter
	httpReqs    metric.Int64Counter
	httpLatency metric.Float64Histogram
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init builds the instruments against the global meter provider once.
func Init() *Metrics {
	initOnce.Do(func() {
		m, err := NewMetrics(otel.Meter(instrumentationName))
		if err == nil {
			instance = m
		}
	})
	return instance
}

// Current returns the process-wide metrics, or nil when Init was never called.
func Current() *Metrics {
	return instance
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	generations, err := meter.Int64Counter("blog_generations_total",
		metric.WithDescription("Blog generations by writer and outcome"))
	if err != nil {
		return nil, err
	}
	diagnostics, err := meter.Int64Counter("blog_generation_diagnostics_total",
		metric.WithDescription("Validation diagnostics by writer and kind"))
	if err != nil {
		return nil, err
	}
	llmRequests, err := meter.Int64Counter("llm_requests_total")
	if err != nil {
		return nil, err
	}
	llmLatency, err := meter.Float64Histogram("llm_request_duration_seconds", metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	llmTokens, err := meter.Int64Counter("llm_tokens_total")
	if err != nil {
		return nil, err
	}
	httpReqs, err := meter.Int64Counter("http_requests_total")
	if err != nil {
		return nil, err
	}
	httpLatency, err := meter.Float64Histogram("http_request_duration_seconds", metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}
	return &Metrics{
		httpReqs:    httpReqs,
		httpLatency: httpLatency,
		generations: generations,
		diagnostics: diagnostics,
		llmRequests: llmRequests,
		llmLatency:  llmLatency,
		llmTokens:   llmTokens,
	}, nil
}

func orUnknown(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "unknown"
	}
	return s
}

func (m *Metrics) ObserveGeneration(ctx context.Context, blogType, outcome string) {
	if m == nil {
		return
	}
	m.generations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("blog_type", orUnknown(blogType)),
		attribute.String("outcome", orUnknown(outcome)),
	))
}

func (m *Metrics) ObserveDiagnostic(ctx context.Context, blogType, kind string) {
	if m == nil {
		return
	}
	m.diagnostics.Add(ctx, 1, metric.WithAttributes(
		attribute.String("blog_type", orUnknown(blogType)),
		attribute.String("kind", orUnknown(kind)),
	))
}

func (m *Metrics) ObserveLLMRequest(ctx context.Context, backend, status string, dur time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("backend", orUnknown(backend)),
		attribute.String("status", orUnknown(status)),
	)
	m.llmRequests.Add(ctx, 1, attrs)
	m.llmLatency.Record(ctx, dur.Seconds(), attrs)
	if inputTokens > 0 {
		m.llmTokens.Add(ctx, int64(inputTokens), metric.WithAttributes(attribute.String("backend", orUnknown(backend)), attribute.String("direction", "input")))
	}
	if outputTokens > 0 {
		m.llmTokens.Add(ctx, int64(outputTokens), metric.WithAttributes(attribute.String("backend", orUnknown(backend)), attribute.String("direction", "output")))
	}
}

func (m *Metrics) ObserveHTTP(ctx context.Context, method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", orUnknown(method)),
		attribute.String("route", orUnknown(route)),
		attribute.String("status", orUnknown(status)),
	)
	m.httpReqs.Add(ctx, 1, attrs)
	m.httpLatency.Record(ctx, dur.Seconds(), attrs)
}

// Tracer returns the package tracer for pipeline spans.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
