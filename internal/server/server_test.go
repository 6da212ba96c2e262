package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/energyops/assetbot/internal/bot"
	"github.com/energyops/assetbot/internal/version"
)

type fakeStats struct {
	stats bot.Stats
}

func (f fakeStats) Stats() bot.Stats {
	return f.stats
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHealth(t *testing.T) {
	r := NewRouter(fakeStats{}, time.Now().Add(-90*time.Second))

	rec := get(t, r, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s", ct)
	}

	var body healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" {
		t.Errorf("status = %s, want ok", body.Status)
	}
	if body.Uptime == "" || body.Uptime == "0s" {
		t.Errorf("uptime = %q", body.Uptime)
	}
}

func TestVersion(t *testing.T) {
	rec := get(t, NewRouter(fakeStats{}, time.Now()), "/version")

	var body versionResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Version != version.Version || body.Full != version.Full() {
		t.Errorf("body = %+v", body)
	}
}

func TestStats(t *testing.T) {
	want := bot.Stats{Active: 2, Handled: 40, Failures: 3}
	rec := get(t, NewRouter(fakeStats{stats: want}, time.Now()), "/stats")

	var got bot.Stats
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	r := NewRouter(fakeStats{}, time.Now())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/stats", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := get(t, NewRouter(fakeStats{}, time.Now()), "/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestServerStartShutdown(t *testing.T) {
	srv := New(&Config{Addr: "127.0.0.1:0"}, fakeStats{})
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	http.DefaultClient.CloseIdleConnections()
	if _, err := http.Get("http://" + srv.Addr() + "/health"); err == nil {
		t.Error("server still serving after Shutdown")
	}
}

func TestServerStartPortInUse(t *testing.T) {
	first := New(&Config{Addr: "127.0.0.1:0"}, fakeStats{})
	if err := first.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer first.Shutdown(context.Background())

	second := New(&Config{Addr: first.Addr()}, fakeStats{})
	if err := second.Start(); err == nil {
		t.Error("expected listen error for a bound port")
	}
}
