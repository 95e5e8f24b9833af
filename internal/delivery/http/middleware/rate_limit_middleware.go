package middleware

import (
	"net/http"
	"time"

	"health-records-api/pkg/response"

	"github.com/go-chi/httprate"
)

// RateLimit caps requests per client IP and endpoint. A non-positive limit
// disables it.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w)
		}),
	)
}
