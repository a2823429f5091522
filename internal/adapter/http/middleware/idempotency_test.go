package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// fakeIdempotencyStore backs the middleware tests without Redis.
type fakeIdempotencyStore struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeIdempotencyStore() *fakeIdempotencyStore {
	return &fakeIdempotencyStore{entries: make(map[string][]byte)}
}

func (s *fakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[key]; ok {
		return true, existing, nil
	}

	if response != nil {
		s.entries[key] = response
	} else {
		s.entries[key] = []byte("processing")
	}

	return false, nil, nil
}

func (s *fakeIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = response
	return nil
}

func TestIdempotencyMiddleware_ReplaysCachedResponse(t *testing.T) {
	store := newFakeIdempotencyStore()
	mw := NewIdempotencyMiddleware(store)

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"balance":500}`))
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/acc-1/trips", nil)
		req.Header.Set(IdempotencyKeyHeader, "charge-1")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Body.String() != `{"balance":500}` {
			t.Fatalf("attempt %d: unexpected body %s", i, rec.Body.String())
		}

		if i == 1 && rec.Header().Get("X-Idempotency-Replay") != "true" {
			t.Error("expected replay header on second attempt")
		}
	}

	if calls != 1 {
		t.Fatalf("expected handler to run once, ran %d times", calls)
	}
}

func TestIdempotencyMiddleware_SkipsWithoutKey(t *testing.T) {
	mw := NewIdempotencyMiddleware(newFakeIdempotencyStore())

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	if calls != 2 {
		t.Fatalf("expected 2 handler runs without a key, got %d", calls)
	}
}

func TestIdempotencyMiddleware_SkipsReads(t *testing.T) {
	mw := NewIdempotencyMiddleware(newFakeIdempotencyStore())

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/offerings", nil)
		req.Header.Set(IdempotencyKeyHeader, "read-1")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
	}

	if calls != 2 {
		t.Fatalf("expected GET requests to bypass idempotency, got %d runs", calls)
	}
}

func TestIdempotencyMiddleware_DoesNotCacheErrors(t *testing.T) {
	store := newFakeIdempotencyStore()
	mw := NewIdempotencyMiddleware(store)

	calls := 0
	handler := mw.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"boom"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"ok":true}`))
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
	req.Header.Set(IdempotencyKeyHeader, "retry-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	// The key is still marked processing, so the retry runs the handler.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/accounts", nil)
	req.Header.Set(IdempotencyKeyHeader, "retry-1")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if calls != 2 {
		t.Fatalf("expected failed response not to be replayed, handler ran %d times", calls)
	}
}
