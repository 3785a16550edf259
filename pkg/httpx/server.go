package httpx

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	defaultMaxBodyBytes   = 10 << 20
	defaultRateLimit      = 100
	defaultHandlerTimeout = 30 * time.Second
)

// ServerConfig holds the options for NewRouter. Zero values pick defaults.
type ServerConfig struct {
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated list; "*" allows any origin
	// but disables credentials.
	CORSAllowedOrigins string
	// MaxBodyBytes caps request bodies. Maintenance photos travel inline as
	// data URLs, so the default is 10 MB.
	MaxBodyBytes int64
	// RateLimitPerMinute is the per-IP request budget. Default 100.
	RateLimitPerMinute int
	// HandlerTimeout bounds each request. Default 30 s.
	HandlerTimeout time.Duration
}

func (c ServerConfig) withDefaults() ServerConfig {
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = defaultRateLimit
	}
	if c.HandlerTimeout <= 0 {
		c.HandlerTimeout = defaultHandlerTimeout
	}
	return c
}

// Middlewares are the process-level middlewares NewRouter installs ahead of
// its own stack. Nil entries are skipped.
type Middlewares struct {
	Recovery func(http.Handler) http.Handler
	Sentry   func(http.Handler) http.Handler
	Otel     func(http.Handler) http.Handler
	Logger   func(http.Handler) http.Handler
}

// NewRouter returns a chi.Mux with the standard stack, outermost first:
// recovery, sentry, request id, otel, request log, real ip, per-IP rate
// limit, CORS, body limit, handler timeout, security headers.
func NewRouter(cfg ServerConfig, mw Middlewares) *chi.Mux {
	cfg = cfg.withDefaults()

	stack := make([]func(http.Handler) http.Handler, 0, 11)
	add := func(m func(http.Handler) http.Handler) {
		if m != nil {
			stack = append(stack, m)
		}
	}
	add(mw.Recovery)
	add(mw.Sentry)
	add(middleware.RequestID)
	add(mw.Otel)
	add(mw.Logger)
	add(middleware.RealIP)
	add(httprate.LimitByIP(cfg.RateLimitPerMinute, time.Minute))
	add(CORSMiddleware(cfg.CORSAllowedOrigins))
	add(RequestBodyLimit(cfg.MaxBodyBytes))
	add(middleware.Timeout(cfg.HandlerTimeout))
	add(SecurityHeaders(cfg.IsDevelopment))

	r := chi.NewRouter()
	r.Use(stack...)
	return r
}

// SecurityHeaders sets HSTS, CSP and related headers. The CSP admits data:
// images so inline maintenance photos render. Development mode disables the
// checks.
func SecurityHeaders(isDevelopment bool) func(http.Handler) http.Handler {
	return secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; img-src 'self' data:",
		PermissionsPolicy:     "geolocation=(), microphone=(), camera=(self)",
		IsDevelopment:         isDevelopment,
	}).Handler
}

// CORSMiddleware allows the given comma-separated origins. Credentials, and
// so the session cookie carrying edit grants, are only allowed for explicit
// origins.
func CORSMiddleware(allowedOrigins string) func(http.Handler) http.Handler {
	origins := parseOrigins(allowedOrigins)
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	})
}

func parseOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps request bodies at maxBytes. Reads past the cap fail
// and the validator reports them as 413.
func RequestBodyLimit(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server whose write timeout outlasts
// handlerTimeout, so timed-out handlers can still write their 503.
func NewServer(addr string, handler http.Handler, handlerTimeout time.Duration) *http.Server {
	if handlerTimeout <= 0 {
		handlerTimeout = defaultHandlerTimeout
	}
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      handlerTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
