package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel"

	"github.com/ghuser/organcare/pkg/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		ServiceName:    "test-service",
		ServiceVersion: "test",
		Environment:    "testing",
		StorageDriver:  config.StorageMemory,
		OtelEndpoint:   "", // disabled
	}
}

func TestSetup_NoOtelEndpoint(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shutdown == nil {
		t.Fatal("expected non-nil shutdown")
	}
	if handler == nil {
		t.Fatal("expected non-nil metrics handler")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown error: %v", err)
	}
}

func TestSetup_MetricsHandlerServesPrometheusFormat(t *testing.T) {
	_, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))

	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	ct := rr.Header().Get("Content-Type")
	if !strings.Contains(ct, "text/plain") {
		t.Errorf("expected text/plain content-type, got %q", ct)
	}
}

func TestSetup_InstallsTraceContextPropagator(t *testing.T) {
	shutdown, _, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background()) //nolint:errcheck

	fields := otel.GetTextMapPropagator().Fields()
	if !slices.Contains(fields, "traceparent") {
		t.Fatalf("expected traceparent among propagator fields, got %v", fields)
	}
}

func TestMeter_CountersAppearOnMetricsEndpoint(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background()) //nolint:errcheck

	counter, err := Meter().Int64Counter("organcare.test.events")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	counter.Add(context.Background(), 3)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))
	if !strings.Contains(rr.Body.String(), "organcare_test_events") {
		t.Fatalf("expected counter in metrics output, got:\n%s", rr.Body.String())
	}
}

func TestCaptureError_NilIsNoOp(t *testing.T) {
	CaptureError(nil, map[string]string{"component": "test"})
}

func TestObserveOrgans(t *testing.T) {
	shutdown, handler, err := Setup(context.Background(), baseConfig())
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	defer shutdown(context.Background()) //nolint:errcheck

	reg, err := ObserveOrgans(func() (int64, int64) { return 5, 2 })
	if err != nil {
		t.Fatalf("observe: %v", err)
	}
	defer reg.Unregister() //nolint:errcheck

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", http.NoBody))
	body := rr.Body.String()
	for _, want := range []string{"organcare_organs", `status="pending"`, `status="up_to_date"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in metrics output, got:\n%s", want, body)
		}
	}
}

func TestNewCounter(t *testing.T) {
	c, err := NewCounter(MetricMutations, "test")
	if err != nil {
		t.Fatalf("counter: %v", err)
	}
	c.Add(context.Background(), 1)
}

func TestScrubEvent(t *testing.T) {
	event := &sentry.Event{Request: &sentry.Request{
		URL:     "http://localhost:8080/api/actions/submit",
		Method:  http.MethodPost,
		Data:    `{"secret":"1234","reason":"Instrumento vendido"}`,
		Cookies: "organcare_session=abc",
		Headers: map[string]string{
			"Cookie":       "organcare_session=abc",
			"Content-Type": "application/json",
		},
	}}

	got := scrubEvent(event, nil)
	if got.Request.Data != "" || got.Request.Cookies != "" {
		t.Fatalf("expected body and cookies dropped, got %+v", got.Request)
	}
	if _, ok := got.Request.Headers["Cookie"]; ok {
		t.Fatal("expected Cookie header dropped")
	}
	if got.Request.Headers["Content-Type"] != "application/json" {
		t.Fatal("expected other headers kept")
	}
	if scrubEvent(&sentry.Event{}, nil) == nil {
		t.Fatal("expected events without a request to pass through")
	}
}
