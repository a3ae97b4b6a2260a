package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDefaultObservabilityConfigIsLoopbackOnly(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	if cfg.ListenAddr != "127.0.0.1:6060" {
		t.Errorf("ListenAddr = %q, want loopback default", cfg.ListenAddr)
	}
	if !cfg.Enabled {
		t.Error("expected the debug server to be enabled by default")
	}
}

func TestStartDebugServerDisabledIsNoop(t *testing.T) {
	if err := StartDebugServer(ObservabilityConfig{Enabled: false}); err != nil {
		t.Errorf("StartDebugServer(disabled) returned %v, want nil", err)
	}
}

func TestRecordHelpersDoNotPanic(t *testing.T) {
	RecordTick(5 * time.Millisecond)
	UpdateSkippedFrames(2)
	UpdatePlayerCount(4)
	UpdateShellCount(10)
	UpdateUpgradeCount(1)
	RecordRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
}

func TestBasicAuthMiddlewareRejectsMissingCredentials(t *testing.T) {
	handler := basicAuthMiddleware("user", "pass", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without credentials", rec.Code)
	}
}
