package middleware

import (
	"net/http"
	"time"

	"github.com/dtroode/gophauth/internal/logger"
	"github.com/dtroode/gophauth/internal/metrics"
)

const (
	catchAllPattern = "/"
	unmatchedRoute  = "unmatched"
)

// Logging logs every request and records it in the HTTP metrics.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

// Handle logs method, route, duration and status for each request.
func (l *Logging) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newStatusWriter(w)

		l.logger.Debug("HTTP request started",
			"method", r.Method,
			"path", r.URL.Path)

		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		route := routeLabel(r.Pattern)
		metrics.RecordHTTPRequest(r.Method, route, rw.status, duration)

		l.logger.Info("HTTP request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"duration_ms", duration.Milliseconds(),
			"status", rw.status,
			"size", rw.size)
	})
}

// routeLabel maps a mux pattern to a metrics label. Requests served by the
// catch-all pattern or by no pattern at all share one label.
func routeLabel(pattern string) string {
	if pattern == "" || pattern == catchAllPattern {
		return unmatchedRoute
	}
	return pattern
}

// statusWriter captures the status code and body size of a response.
type statusWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func newStatusWriter(w http.ResponseWriter) *statusWriter {
	return &statusWriter{ResponseWriter: w, status: http.StatusOK}
}

func (w *statusWriter) WriteHeader(status int) {
	if !w.wroteHeader {
		w.status = status
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
