package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"tankarena/internal/config"
)

func TestNewServerRouterServesHealth(t *testing.T) {
	eng := &fakeEngine{cfg: config.Load()}
	s := NewServer(eng, &fakeHub{})
	defer s.Stop()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestServerStopReleasesRateLimiter(t *testing.T) {
	eng := &fakeEngine{cfg: config.Load()}
	s := NewServer(eng, &fakeHub{})
	s.Stop() // should not panic, and should be safe even though nothing else called Stop
}
