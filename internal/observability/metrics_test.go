package observability

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMetrics_RecordsGenerationAndLLMCounters(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	ctx := context.Background()
	m.ObserveGeneration(ctx, "BEAUTY", "success")
	m.ObserveDiagnostic(ctx, "BEAUTY", "InvalidRecommendation")
	m.ObserveLLMRequest(ctx, "openai:gpt", "ok", 120*time.Millisecond, 100, 50)
	m.ObserveHTTP(ctx, "POST", "/api/blog/generate", "200", 2*time.Second)

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	seen := map[string]bool{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			seen[md.Name] = true
		}
	}
	for _, name := range []string{"blog_generations_total", "blog_generation_diagnostics_total", "llm_requests_total", "llm_request_duration_seconds", "llm_tokens_total", "http_requests_total", "http_request_duration_seconds"} {
		if !seen[name] {
			t.Fatalf("metric %s not recorded (seen=%v)", name, seen)
		}
	}
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveGeneration(context.Background(), "", "")
	m.ObserveLLMRequest(context.Background(), "", "", 0, 0, 0)
	m.ObserveHTTP(context.Background(), "", "", "", 0)
}

func TestParseHeaders(t *testing.T) {
	h := parseHeaders("a=1, b = 2 ,bad,=x")
	if len(h) != 2 || h["a"] != "1" || h["b"] != "2" {
		t.Fatalf("unexpected headers %v", h)
	}
}
