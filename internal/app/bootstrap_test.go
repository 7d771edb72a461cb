package app

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/routes"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestListenAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", " :9090 ": ":9090"}
	for in, want := range cases {
		got, err := ListenAddr(in)
		if err != nil || got != want {
			t.Fatalf("ListenAddr(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ListenAddr("  "); err == nil {
		t.Fatalf("expected error for empty port")
	}
}

func TestNew_GlobalMiddleware(t *testing.T) {
	cfg := config.Config{CORS: config.CORSConfig{AllowedOrigins: []string{"https://app.example.com"}}}
	registry := routes.NewRegistry(routes.Handlers{
		Health: handler.NewHealthHandler(pinger{}, pinger{err: errors.New("down")}),
	}, nil)
	app := New(cfg, log.New(io.Discard, "", 0), registry)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://app.example.com")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "https://app.example.com" {
		t.Fatalf("expected CORS header")
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || len(body) == 0 {
		t.Fatalf("unexpected metrics response %d", resp.StatusCode)
	}
}
