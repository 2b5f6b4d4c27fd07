package middleware

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mlindqvist/minauth/internal/logging"
)

const traceIDHeader = "X-Trace-ID"

// TraceID attaches a request-scoped child logger carrying a trace ID to
// the request context and echoes the ID on the response. An incoming
// X-Trace-ID header is honored; otherwise a new ID is generated.
func TraceID(log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get(traceIDHeader)
			if traceID == "" {
				traceID = uuid.NewString()
			}

			child := log.Child()
			child.UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("trace_id", traceID)
			})
			r = r.WithContext(child.WithContext(r.Context()))

			w.Header().Set(traceIDHeader, traceID)
			next.ServeHTTP(w, r)
		})
	}
}
