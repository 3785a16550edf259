package httpx

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const healthTimeout = 2 * time.Second

// Check outcomes reported per dependency.
const (
	CheckOK          = "ok"
	CheckUnreachable = "unreachable"
	CheckDisabled    = "disabled"
)

// HealthChecker is anything with a Ping: the state repository, the Redis
// client and the event bus all qualify.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// Check names one dependency checked by HealthHandler. A nil Checker is
// reported as disabled and never degrades the status.
type Check struct {
	Name    string
	Checker HealthChecker
}

// HealthResponse is the body served by HealthHandler.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// HealthHandler pings every check in parallel within two seconds. It answers
// 200 when all reachable dependencies respond and 503 otherwise.
func HealthHandler(checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := HealthResponse{Status: "ok", Checks: make(map[string]string, len(checks))}
		var mu sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		for _, c := range checks {
			g.Go(func() error {
				result := runCheck(gctx, c.Checker)
				mu.Lock()
				defer mu.Unlock()
				resp.Checks[c.Name] = result
				if result == CheckUnreachable {
					resp.Status = "degraded"
				}
				return nil
			})
		}
		_ = g.Wait()

		status := http.StatusOK
		if resp.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		JSON(w, status, resp)
	}
}

func runCheck(ctx context.Context, c HealthChecker) string {
	if c == nil {
		return CheckDisabled
	}
	if err := c.Ping(ctx); err != nil {
		return CheckUnreachable
	}
	return CheckOK
}
