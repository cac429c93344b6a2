package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jaekwang-park/dailytasker/internal/metrics"
)

// Metrics records request counts and latencies. It must wrap the ServeMux
// directly so that r.Pattern is populated once the mux has routed the
// request; unmatched requests are labelled "unmatched".
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		metrics.ActiveRequests.Inc()
		defer metrics.ActiveRequests.Dec()

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.statusCode)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
