package api

import (
	"log"
	"net/http"
	"net/http/pprof"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics with bounded cardinality (no per-player labels, to keep the
// series count independent of arena population).
var (
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "tankarena_tick_duration_seconds",
		Help:    "Time spent in one simulation step",
		Buckets: []float64{0.001, 0.002, 0.005, 0.01, 0.016, 0.025, 0.05},
	})

	skippedFrames = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tankarena_skipped_frames_total",
		Help: "Cumulative tick-loop catch-up-cap overruns",
	})

	playerCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tankarena_player_count",
		Help: "Current number of connected players (human + AI)",
	})

	shellCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tankarena_shell_count",
		Help: "Current number of live shells",
	})

	upgradeCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tankarena_upgrade_count",
		Help: "Current number of uncollected upgrades",
	})

	requestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tankarena_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint"})

	requestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tankarena_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "endpoint", "status"})
)

// ObservabilityConfig configures the localhost-only debug server.
type ObservabilityConfig struct {
	Enabled       bool
	ListenAddr    string // MUST be loopback in production
	BasicAuthUser string
	BasicAuthPass string
}

// DefaultObservabilityConfig returns safe defaults.
func DefaultObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{Enabled: true, ListenAddr: "127.0.0.1:6060"}
}

// StartDebugServer starts pprof + /metrics + /health on a loopback-only
// listener. Never expose this port externally — it carries profiling data.
func StartDebugServer(cfg ObservabilityConfig) error {
	if !cfg.Enabled {
		log.Println("api: debug server disabled")
		return nil
	}

	if cfg.ListenAddr != "127.0.0.1:6060" && cfg.ListenAddr != "localhost:6060" {
		if os.Getenv("ALLOW_DEBUG_EXTERNAL") != "true" {
			log.Println("api: debug server forced to loopback for safety")
			cfg.ListenAddr = "127.0.0.1:6060"
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	var handler http.Handler = mux
	if cfg.BasicAuthUser != "" {
		handler = basicAuthMiddleware(cfg.BasicAuthUser, cfg.BasicAuthPass, mux)
	}

	go func() {
		log.Printf("api: debug server on %s", cfg.ListenAddr)
		if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
			log.Printf("api: debug server error: %v", err)
		}
	}()
	return nil
}

func basicAuthMiddleware(user, pass string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || u != user || p != pass {
			w.Header().Set("WWW-Authenticate", `Basic realm="debug"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RecordTick records one simulation step's wall-clock duration.
func RecordTick(duration time.Duration) {
	tickDuration.Observe(duration.Seconds())
}

// UpdateSkippedFrames sets the catch-up-cap overrun gauge.
func UpdateSkippedFrames(count uint64) {
	skippedFrames.Set(float64(count))
}

// UpdatePlayerCount sets the player gauge.
func UpdatePlayerCount(count int) {
	playerCount.Set(float64(count))
}

// UpdateShellCount sets the live-shell gauge.
func UpdateShellCount(count int) {
	shellCount.Set(float64(count))
}

// UpdateUpgradeCount sets the uncollected-upgrade gauge.
func UpdateUpgradeCount(count int) {
	upgradeCount.Set(float64(count))
}

// RecordRequest records HTTP request latency and outcome.
func RecordRequest(method, endpoint string, status int, duration time.Duration) {
	requestLatency.WithLabelValues(method, endpoint).Observe(duration.Seconds())
	requestTotal.WithLabelValues(method, endpoint, http.StatusText(status)).Inc()
}
