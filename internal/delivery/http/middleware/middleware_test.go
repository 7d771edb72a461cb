package middleware

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":     "abc",
		"bearer   abc  ": "abc",
		"Basic abc":      "",
		"Bearer":         "",
		"Bearer    ":     "",
		"":               "",
	}
	for in, want := range cases {
		got, ok := BearerToken(in)
		if got != want || ok != (want != "") {
			t.Fatalf("BearerToken(%q) = %q,%v", in, got, ok)
		}
	}
}

func TestNormalizeError(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{NewAppError(fiber.StatusConflict, "taken", nil, nil), fiber.StatusConflict, "taken"},
		{NewAppError(fiber.StatusNotFound, "", nil, nil), fiber.StatusNotFound, "not found"},
		{NewAppError(fiber.StatusInternalServerError, "db exploded", nil, nil), fiber.StatusInternalServerError, "internal server error"},
		{NewAppError(fiber.StatusServiceUnavailable, "shutting down", nil, nil), fiber.StatusServiceUnavailable, "shutting down"},
		{fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), fiber.StatusMethodNotAllowed, "nope"},
		{errors.New("raw"), fiber.StatusInternalServerError, "internal server error"},
	}
	for _, c := range cases {
		status, msg, _ := normalizeError(c.err)
		if status != c.status || msg != c.message {
			t.Fatalf("normalizeError(%v) = %d %q, want %d %q", c.err, status, msg, c.status, c.message)
		}
	}
}

func TestErrorMiddleware_RecoversPanic(t *testing.T) {
	app := fiber.New()
	app.Use(NewErrorMiddleware(log.New(io.Discard, "", 0)).Middleware())
	app.Get("/boom", func(fiber.Ctx) error { panic("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if resp.StatusCode != fiber.StatusInternalServerError {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
}

func TestAccessLog_RequestID(t *testing.T) {
	var buf strings.Builder
	app := fiber.New()
	app.Use(NewAccessLogMiddleware(log.New(&buf, "", 0)).Middleware())
	app.Get("/x", func(c fiber.Ctx) error { return c.SendString(RequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(HeaderRequestID, "rid-1")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "rid-1" || resp.Header.Get(HeaderRequestID) != "rid-1" {
		t.Fatalf("request id not propagated: body=%q header=%q", body, resp.Header.Get(HeaderRequestID))
	}
	if !strings.Contains(buf.String(), "[HTTP] access | rid=rid-1") {
		t.Fatalf("unexpected log %q", buf.String())
	}
}

func TestCORS_Preflight(t *testing.T) {
	app := fiber.New()
	app.Use(CORS([]string{"https://app.example.com"}))
	app.Get("/x", func(c fiber.Ctx) error { return c.SendString("ok") })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://app.example.com")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("unexpected allow origin %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin must not be allowed, got %q", got)
	}
}
