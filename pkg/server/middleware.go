package server

import (
	"errors"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/getzep/zep-extract/config"
)

const versionHeader = "X-Zep-Extract-Version"

// SendVersion is a middleware that adds the current version to the response
func SendVersion(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		if w.Header().Get(versionHeader) == "" {
			w.Header().Add(
				versionHeader,
				config.VersionString,
			)
		}
		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(fn)
}

var errRateLimited = errors.New("rate limit exceeded")

// RateLimit rejects requests above requestsPerSecond with 429. The limiter is
// shared by all clients. A burst below 1 is raised to 1.
func RateLimit(requestsPerSecond float64, burst int) func(http.Handler) http.Handler {
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(requestsPerSecond), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				renderError(w, errRateLimited, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
