package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAdminKeyAuth(t *testing.T) {
	t.Run("valid key passes", func(t *testing.T) {
		limiter := NewAuthAttemptLimiter(5, time.Minute, time.Minute)
		h := AdminKeyAuth("secret", limiter)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("X-Admin-Key", "secret")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("invalid key rejected", func(t *testing.T) {
		limiter := NewAuthAttemptLimiter(5, time.Minute, time.Minute)
		h := AdminKeyAuth("secret", limiter)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.Header.Set("X-Admin-Key", "wrong")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("missing key rejected", func(t *testing.T) {
		limiter := NewAuthAttemptLimiter(5, time.Minute, time.Minute)
		h := AdminKeyAuth("secret", limiter)(okHandler())

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("repeated failures trip the limiter", func(t *testing.T) {
		limiter := NewAuthAttemptLimiter(3, time.Minute, time.Minute)
		h := AdminKeyAuth("secret", limiter)(okHandler())

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			req.RemoteAddr = "198.51.100.7:4444"
			req.Header.Set("X-Admin-Key", "wrong")
			h.ServeHTTP(httptest.NewRecorder(), req)
		}

		req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
		req.RemoteAddr = "198.51.100.7:4444"
		req.Header.Set("X-Admin-Key", "secret")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429 after repeated failures, got %d", rec.Code)
		}
	})
}

func TestBearerAuth(t *testing.T) {
	t.Run("valid token passes", func(t *testing.T) {
		limiter := NewAuthAttemptLimiter(5, time.Minute, time.Minute)
		h := BearerAuth("droptoken", limiter)(okHandler())

		req := httptest.NewRequest(http.MethodPost, "/api/airdrop", nil)
		req.Header.Set("Authorization", "Bearer droptoken")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		limiter := NewAuthAttemptLimiter(5, time.Minute, time.Minute)
		h := BearerAuth("droptoken", limiter)(okHandler())

		req := httptest.NewRequest(http.MethodPost, "/api/airdrop", nil)
		req.Header.Set("Authorization", "droptoken")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("wrong token rejected", func(t *testing.T) {
		limiter := NewAuthAttemptLimiter(5, time.Minute, time.Minute)
		h := BearerAuth("droptoken", limiter)(okHandler())

		req := httptest.NewRequest(http.MethodPost, "/api/airdrop", nil)
		req.Header.Set("Authorization", "Bearer other")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}
