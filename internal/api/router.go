package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"tankarena/internal/config"
	"tankarena/internal/engine"
	"tankarena/internal/session"
)

// EngineInterface defines the engine methods the HTTP layer calls. Kept
// minimal and mockable so router tests don't need a running tick loop.
type EngineInterface interface {
	Counts() engine.Counts
	Config() config.AppConfig
}

// HubInterface defines the session layer's surface the router mounts at
// /ws. Kept minimal for the same reason as EngineInterface.
type HubInterface interface {
	HandleWebSocket(w http.ResponseWriter, r *http.Request)
	ClientCount() int
}

// RouterConfig holds NewRouter's dependencies.
//
// Example usage in tests:
//
//	cfg := api.RouterConfig{
//	    Engine: mockEngine,
//	    Hub:    mockHub,
//	    RateLimitConfig: &session.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
//	}
//	router := api.NewRouter(cfg)
//	ts := httptest.NewServer(router)
type RouterConfig struct {
	Engine EngineInterface
	Hub    HubInterface

	// RateLimiter is an optional pre-configured limiter; if nil one is
	// built from RateLimitConfig (or session.DefaultRateLimitConfig).
	RateLimiter     *session.IPRateLimiter
	RateLimitConfig *session.RateLimitConfig

	// CORSOrigins overrides the default allowed origins.
	CORSOrigins []string

	// DisableLogging skips the request logger middleware (useful in tests).
	DisableLogging bool
}

type routerHandlers struct {
	engine EngineInterface
}

// NewRouter builds the chi router: health/terrain HTTP endpoints, the
// WebSocket upgrade route, and the rate-limit/CORS/recover middleware
// chain every request passes through.
func NewRouter(cfg RouterConfig) *chi.Mux {
	h := &routerHandlers{engine: cfg.Engine}

	rateLimiter := cfg.RateLimiter
	if rateLimiter == nil {
		limitCfg := session.DefaultRateLimitConfig
		if cfg.RateLimitConfig != nil {
			limitCfg = *cfg.RateLimitConfig
		}
		rateLimiter = session.NewIPRateLimiter(limitCfg)
	}

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = session.AllowedOrigins
	}

	r := chi.NewRouter()
	if !cfg.DisableLogging {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(rateLimiter.Middleware)
	r.Use(metricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/terrain-maps", h.handleListTerrainMaps)
		r.Get("/terrain-maps/{id}", h.handleGetTerrainMap)
	})

	if cfg.Hub != nil {
		r.Get("/ws", cfg.Hub.HandleWebSocket)
	}

	return r
}

// metricsMiddleware records request latency and outcome per route
// pattern (not raw path, to keep label cardinality bounded even with
// path params like /api/terrain-maps/{id}).
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		endpoint := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			endpoint = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		RecordRequest(r.Method, endpoint, status, time.Since(start))
	})
}
