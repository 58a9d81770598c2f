package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/myrteametrics/goldenbatch-api/internal/scheduler"
	"github.com/myrteametrics/goldenbatch-api/internal/simulation"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func initSimulation(t *testing.T) {
	t.Helper()
	cfg := simulation.DefaultConfig()
	cfg.Seed = 7
	cfg.Autoplay = false
	c, err := simulation.New(cfg, scheduler.NewScheduler(), nil)
	if err != nil {
		t.Fatal(err)
	}
	reverse := simulation.ReplaceGlobals(c)
	t.Cleanup(func() {
		reverse()
		c.Close()
	})
}

func serve(r http.Handler, method, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	req.RemoteAddr = "10.0.0.1:5555"
	r.ServeHTTP(rr, req)
	return rr
}

func TestRoutes(t *testing.T) {
	initSimulation(t)
	r := NewChiRouter(Config{LogLevel: zap.NewAtomicLevel(), RequestTimeout: 10 * time.Second})

	cases := []struct {
		method string
		target string
		status int
	}{
		{"GET", "/api/v1/isalive", http.StatusOK},
		{"GET", "/api/v1/simulation", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"GET", "/log_level", http.StatusOK},
		{"GET", "/api/v1/unknown", http.StatusNotFound},
		{"DELETE", "/api/v1/simulation", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		if rr := serve(r, tc.method, tc.target); rr.Code != tc.status {
			t.Errorf("%s %s: got %d want %d", tc.method, tc.target, rr.Code, tc.status)
		}
	}
}

func TestCORS(t *testing.T) {
	initSimulation(t)
	r := NewChiRouter(Config{EnableCORS: true, LogLevel: zap.NewAtomicLevel()})

	req := httptest.NewRequest("GET", "/api/v1/isalive", nil)
	req.Header.Set("Origin", "http://dashboard.local")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("CORS headers missing: %v", rr.Header())
	}
}

func TestRateLimit(t *testing.T) {
	initSimulation(t)
	r := NewChiRouter(Config{LogLevel: zap.NewAtomicLevel(), RateLimit: RateLimitConfig{RPS: 0.001, Burst: 2}})

	for i := 0; i < 2; i++ {
		if rr := serve(r, "POST", "/api/v1/simulation/toggle"); rr.Code != http.StatusOK {
			t.Fatalf("request %d: got %d", i, rr.Code)
		}
	}
	rr := serve(r, "POST", "/api/v1/simulation/toggle")
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("got %d want %d", rr.Code, http.StatusTooManyRequests)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After header")
	}

	// read endpoints are not limited
	if rr := serve(r, "GET", "/api/v1/simulation"); rr.Code != http.StatusOK {
		t.Errorf("got %d on a read endpoint", rr.Code)
	}
}

func TestRateLimiterAllow(t *testing.T) {
	disabled := NewRateLimiter(RateLimitConfig{})
	for i := 0; i < 10; i++ {
		if !disabled.Allow("viewer:a") {
			t.Fatal("a disabled limiter must allow every command")
		}
	}

	rl := NewRateLimiter(RateLimitConfig{RPS: 0.001, Burst: 1})
	if !rl.Allow("viewer:a") {
		t.Fatal("first command refused")
	}
	if rl.Allow("viewer:a") {
		t.Error("second command allowed above the burst")
	}
	if !rl.Allow("viewer:b") {
		t.Error("budgets must be kept per client")
	}
}

func TestRateLimiterSweepsStaleClients(t *testing.T) {
	rl := NewRateLimiter(RateLimitConfig{RPS: 1, Burst: 1})
	current := time.Date(2024, time.May, 10, 10, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return current }

	rl.limiter("10.0.0.1")
	rl.limiter("10.0.0.2")
	if len(rl.limiters) != 2 {
		t.Fatalf("unexpected limiter count %d", len(rl.limiters))
	}

	current = current.Add(staleLimiterTTL + time.Minute)
	rl.limiter("10.0.0.3")
	if len(rl.limiters) != 1 {
		t.Errorf("stale limiters not removed, %d left", len(rl.limiters))
	}
}

func TestRequestLogIncludesAction(t *testing.T) {
	initSimulation(t)
	core, logs := observer.New(zapcore.InfoLevel)
	defer zap.ReplaceGlobals(zap.New(core))()

	r := NewChiRouter(Config{LogLevel: zap.NewAtomicLevel()})
	if rr := serve(r, "POST", "/api/v1/simulation/play"); rr.Code != http.StatusOK {
		t.Fatalf("got %d", rr.Code)
	}

	entries := logs.FilterMessage("request served").All()
	if len(entries) != 1 {
		t.Fatalf("unexpected request log count %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["action"] != "play" {
		t.Errorf("action not logged: %v", fields)
	}
	if fields["http_status"] != int64(http.StatusOK) {
		t.Errorf("unexpected status field %v", fields["http_status"])
	}
	if fields["requestid"] == "" || fields["remoteaddr"] != "10.0.0.1:5555" {
		t.Errorf("unexpected request fields %v", fields)
	}
}
