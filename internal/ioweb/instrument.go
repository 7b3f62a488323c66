package ioweb

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gnames/degportal/internal/iometrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// instrument records metrics of every request by its route pattern.
func instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		dur := time.Since(start)
		iometrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		iometrics.HTTPRequestDuration.WithLabelValues(route).Observe(dur.Seconds())
		slog.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", dur,
		)
	})
}
