package api

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tankarena/internal/session"
)

// Server combines the HTTP router with the debug/metrics listener. The
// WebSocket hub itself lives in internal/session and is injected as a
// HubInterface so this package never imports it directly except for the
// rate limiter and CORS origin defaults, which belong to the connection
// layer session already owns.
type Server struct {
	router      *chi.Mux
	rateLimiter *session.IPRateLimiter
	obsCfg      ObservabilityConfig
}

// NewServer builds the HTTP router. Background workers (the debug server)
// do not start until Start is called, so tests can exercise Router()
// without opening a listener.
func NewServer(engine EngineInterface, hub HubInterface) *Server {
	rateLimiter := session.NewIPRateLimiter(session.DefaultRateLimitConfig)
	router := NewRouter(RouterConfig{
		Engine:      engine,
		Hub:         hub,
		RateLimiter: rateLimiter,
	})
	return &Server{router: router, rateLimiter: rateLimiter, obsCfg: DefaultObservabilityConfig()}
}

// Router returns the HTTP handler, for httptest-based integration tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving HTTP on addr and starts the debug/metrics listener.
// Call once; blocks until the listener errors or the process exits.
func (s *Server) Start(addr string) error {
	if err := StartDebugServer(s.obsCfg); err != nil {
		log.Printf("api: debug server failed to start: %v", err)
	}
	log.Printf("api: server starting on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// Stop releases background resources. The HTTP listener itself is closed
// by the process exiting; there is no graceful http.Server shutdown wired
// here because main.go owns the process lifetime via signal handling.
func (s *Server) Stop() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
