package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ghuser/organcare/pkg/httpx"
)

type stubChecker struct{ err error }

func (s *stubChecker) Ping(_ context.Context) error { return s.err }

var errDown = errors.New("down")

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name       string
		storage    httpx.HealthChecker
		redis      httpx.HealthChecker
		eventBus   httpx.HealthChecker
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name:    "all healthy",
			storage: &stubChecker{}, redis: &stubChecker{}, eventBus: &stubChecker{},
			wantCode: http.StatusOK, wantStatus: "ok",
			wantChecks: map[string]string{"storage": "ok", "redis": "ok", "event_bus": "ok"},
		},
		{
			name:    "storage down",
			storage: &stubChecker{err: errDown}, redis: &stubChecker{}, eventBus: &stubChecker{},
			wantCode: http.StatusServiceUnavailable, wantStatus: "degraded",
			wantChecks: map[string]string{"storage": "unreachable", "redis": "ok", "event_bus": "ok"},
		},
		{
			name:    "event bus down",
			storage: &stubChecker{}, redis: &stubChecker{}, eventBus: &stubChecker{err: errDown},
			wantCode: http.StatusServiceUnavailable, wantStatus: "degraded",
			wantChecks: map[string]string{"storage": "ok", "redis": "ok", "event_bus": "unreachable"},
		},
		{
			name:    "file storage without redis or durable bus",
			storage: &stubChecker{},
			wantCode: http.StatusOK, wantStatus: "ok",
			wantChecks: map[string]string{"storage": "ok", "redis": "disabled", "event_bus": "disabled"},
		},
		{
			name:    "disabled redis does not hide a failing store",
			storage: &stubChecker{err: errDown},
			wantCode: http.StatusServiceUnavailable, wantStatus: "degraded",
			wantChecks: map[string]string{"storage": "unreachable", "redis": "disabled", "event_bus": "disabled"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := httpx.HealthHandler(
				httpx.Check{Name: "storage", Checker: tt.storage},
				httpx.Check{Name: "redis", Checker: tt.redis},
				httpx.Check{Name: "event_bus", Checker: tt.eventBus},
			)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

			if rr.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, rr.Code)
			}
			var resp httpx.HealthResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Fatalf("expected status %q, got %q", tt.wantStatus, resp.Status)
			}
			for name, want := range tt.wantChecks {
				if got := resp.Checks[name]; got != want {
					t.Errorf("%s: expected %q, got %q", name, want, got)
				}
			}
		})
	}
}

func TestHealthHandler_ContentType(t *testing.T) {
	h := httpx.HealthHandler(httpx.Check{Name: "storage", Checker: &stubChecker{}})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if ct := rr.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("expected application/json; charset=utf-8, got %q", ct)
	}
}
