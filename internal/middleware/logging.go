package middleware

import (
	"net/http"
	"time"

	"github.com/mlindqvist/minauth/internal/logging"
)

type statusWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// RequestLogger emits one access-log entry per request with method, URI,
// status, response size, and duration.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logging.FromRequest(r)
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		if sw.status == 0 {
			sw.status = http.StatusOK
		}

		log.Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", sw.status).
			Int("size", sw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
