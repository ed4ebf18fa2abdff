package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type stubLimiter struct {
	allowed   bool
	err       error
	lastScope string
	calls     int
}

func (l *stubLimiter) Allow(_ context.Context, scope, caller string, limit int, window time.Duration) (bool, error) {
	l.calls++
	l.lastScope = scope
	return l.allowed, l.err
}

func runLimited(t *testing.T, limiter *stubLimiter) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	mw := RateLimit(limiter, "login", 10, time.Minute, zerolog.Nop())
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRateLimit_UnderLimit(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	rec, called := runLimited(t, limiter)

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if limiter.lastScope != "login" {
		t.Fatalf("expected scope login, got %q", limiter.lastScope)
	}
}

func TestRateLimit_OverLimit(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	rec, called := runLimited(t, limiter)

	if called {
		t.Fatalf("next must not run over the limit")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

func TestRateLimit_BackendFailureFailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	rec, called := runLimited(t, limiter)

	if !called {
		t.Fatalf("limiter outage must not block requests")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
