package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nft-mint-gateway/internal/metrics"
)

// AdminKeyAuth guards the admin surface with a shared secret carried in the
// X-Admin-Key header. Comparison is constant time, and repeated failures from
// one client IP trip the attempt limiter before the comparison runs.
func AdminKeyAuth(adminKey string, limiter *AuthAttemptLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIPKey(r, "admin")
			if !limiter.allow(key) {
				metrics.AuthAttemptsBlocked.Inc()
				respondError(w, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS",
					"too many failed authentication attempts, try again later")
				return
			}

			provided := r.Header.Get("X-Admin-Key")
			if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(adminKey)) != 1 {
				limiter.registerFailure(key)
				log.Warn().Str("remote", r.RemoteAddr).Str("path", r.URL.Path).Msg("admin auth failed")
				respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid admin key")
				return
			}

			limiter.registerSuccess(key)
			next.ServeHTTP(w, r)
		})
	}
}

// BearerAuth guards a route with a bearer token shared secret.
func BearerAuth(token string, limiter *AuthAttemptLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIPKey(r, "bearer")
			if !limiter.allow(key) {
				metrics.AuthAttemptsBlocked.Inc()
				respondError(w, http.StatusTooManyRequests, "TOO_MANY_ATTEMPTS",
					"too many failed authentication attempts, try again later")
				return
			}

			header := r.Header.Get("Authorization")
			provided, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				limiter.registerFailure(key)
				log.Warn().Str("remote", r.RemoteAddr).Str("path", r.URL.Path).Msg("bearer auth failed")
				respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or missing bearer token")
				return
			}

			limiter.registerSuccess(key)
			next.ServeHTTP(w, r)
		})
	}
}
