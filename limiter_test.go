package ofcrse

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
)

func TestRenderLimiterBlocksAfterMax(t *testing.T) {
	limiter := NewRenderLimiter(2, 200*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.10"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first render to be allowed")
	}
	if !limiter.Allow(ip) {
		t.Fatalf("expected second render to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected third render to be blocked")
	}
}

func TestRenderLimiterResetsAfterWindow(t *testing.T) {
	limiter := NewRenderLimiter(1, 150*time.Millisecond)
	defer limiter.Stop()
	ip := "203.0.113.20"

	if !limiter.Allow(ip) {
		t.Fatalf("expected first render to be allowed")
	}
	if limiter.Allow(ip) {
		t.Fatalf("expected second render to be blocked")
	}

	time.Sleep(200 * time.Millisecond)
	if !limiter.Allow(ip) {
		t.Fatalf("expected render after window to be allowed")
	}
}

func TestRenderLimiterIsPerIP(t *testing.T) {
	limiter := NewRenderLimiter(1, 200*time.Millisecond)
	defer limiter.Stop()

	if !limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be allowed")
	}
	if !limiter.Allow("203.0.113.31") {
		t.Fatalf("expected second ip to be allowed independently")
	}
	if limiter.Allow("203.0.113.30") {
		t.Fatalf("expected first ip to be blocked after max")
	}
}

func TestRenderLimiterStopTwice(t *testing.T) {
	limiter := NewRenderLimiter(1, time.Second)
	limiter.Stop()
	limiter.Stop()
}

func TestRenderLimiterMiddleware(t *testing.T) {
	limiter := NewRenderLimiter(1, time.Minute)
	defer limiter.Stop()

	e := echo.New()
	h := limiter.Middleware(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	serve := func() (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodGet, "/images/cover/default.png", nil)
		req.RemoteAddr = "203.0.113.40:1234"
		rec := httptest.NewRecorder()
		return rec, h(e.NewContext(req, rec))
	}

	if rec, err := serve(); err != nil || rec.Code != http.StatusOK {
		t.Fatalf("first request = %d, %v; want 200", rec.Code, err)
	}
	rec, err := serve()
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("second request error = %v, want 429", err)
	}
	if got := rec.Header().Get("Retry-After"); got != "60" {
		t.Errorf("Retry-After = %q, want %q", got, "60")
	}
}
