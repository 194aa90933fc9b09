package middleware

import (
	"net/http"
	"sync/atomic"
)

// Metrics counts every request, and every 4xx/5xx response, into the given
// counters. The /metrics endpoint reports them.
func Metrics(requests, errors *atomic.Int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			if rw.status >= 400 {
				errors.Add(1)
			}
		})
	}
}
