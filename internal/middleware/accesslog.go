package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/google/uuid"
	"github.com/haguru/resumatch/internal/interfaces"
)

const (
	RequestIDHeader = "X-Request-ID"
	OtherPathLabel  = "other"

	HTTPRequestsTotal              = "http_requests_total"
	HTTPRequestsTotalHelp          = "Total number of HTTP requests by method, path and status"
	HTTPRequestDurationSeconds     = "http_request_duration_seconds"
	HTTPRequestDurationSecondsHelp = "Duration of HTTP requests in seconds"
)

var HTTPRequestDurationSecondsBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// AccessLog logs one line per request and records request counters and latency.
// Paths outside knownPaths share the "other" label to bound metric cardinality.
func AccessLog(logger interfaces.Logger, metrics interfaces.Metrics, knownPaths ...string) func(http.Handler) http.Handler {
	metrics.RegisterCounterVec(HTTPRequestsTotal, HTTPRequestsTotalHelp, []string{"method", "path", "status"})
	metrics.RegisterHistogramVec(HTTPRequestDurationSeconds, HTTPRequestDurationSecondsHelp, HTTPRequestDurationSecondsBuckets, []string{"method", "path"})

	known := make(map[string]bool, len(knownPaths))
	for _, p := range knownPaths {
		known[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(RequestIDHeader)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, rid)

			m := httpsnoop.CaptureMetrics(next, w, r)

			path := r.URL.Path
			if !known[path] {
				path = OtherPathLabel
			}
			status := strconv.Itoa(m.Code)
			metrics.IncCounterVec(HTTPRequestsTotal, r.Method, path, status)
			metrics.ObserveHistogramVec(HTTPRequestDurationSeconds, m.Duration.Seconds(), r.Method, path)

			logger.Info("HTTP access",
				"rid", rid,
				"method", r.Method,
				"path", r.URL.Path,
				"status", m.Code,
				"latency", m.Duration.String(),
				"resp_bytes", m.Written,
				"remote", r.RemoteAddr,
				"ua", r.UserAgent(),
			)
		})
	}
}
