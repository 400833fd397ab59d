package middleware

import (
	"net/http"
	"time"
)

// requestObserver records served requests.
type requestObserver interface {
	ObserveRequest(route, method string, status int, d time.Duration)
}

// Metrics returns middleware that reports every request to obs, labelled by
// the ServeMux pattern that matched it. It must wrap the mux directly so the
// pattern set during routing is visible after next returns.
func Metrics(obs requestObserver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			obs.ObserveRequest(r.Pattern, r.Method, sw.status, time.Since(start))
		})
	}
}
