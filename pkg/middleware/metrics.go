package middleware

import (
	"net/http"
	"time"

	"planetarium-booking/pkg/monitoring"

	"github.com/go-chi/chi/v5"
)

// Metrics records request count and latency per chi route pattern, so path
// parameters do not blow up label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := wrapWriter(w)

		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}

		monitoring.ObserveHTTPRequest(r.Method, route, rw.statusCode, time.Since(start))
	})
}
