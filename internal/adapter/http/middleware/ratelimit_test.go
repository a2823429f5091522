package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimiterEnforcesBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	handler := rl.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/offerings/", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("10.0.0.1:4000"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}

	if code := send("10.0.0.1:4000"); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", code)
	}

	// Other clients keep their own budget
	if code := send("10.0.0.2:4000"); code != http.StatusOK {
		t.Fatalf("expected 200 for fresh client, got %d", code)
	}
}

func TestRateLimiterReset(t *testing.T) {
	rl := NewRateLimiter(1, 1)

	if !rl.getLimiter("10.0.0.1").Allow() {
		t.Fatalf("expected first request to pass")
	}
	if rl.getLimiter("10.0.0.1").Allow() {
		t.Fatalf("expected budget to be spent")
	}

	rl.Reset()

	if !rl.getLimiter("10.0.0.1").Allow() {
		t.Fatalf("expected budget back after reset")
	}
}
