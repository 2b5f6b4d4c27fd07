// Package logging wraps zerolog with the constructors and context helpers
// used across the service. Handlers and repositories obtain request-scoped
// loggers via FromContext or FromRequest rather than reaching for a global.
package logging

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a thin wrapper around zerolog.Logger. Embedding exposes the
// full zerolog API while leaving room for application helpers.
type Logger struct {
	zerolog.Logger
}

// New constructs a JSON logger writing to stdout at the given level.
// Unknown level strings fall back to info.
func New(level string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(os.Stdout).Level(lvl).With().Timestamp().Logger()
	return &Logger{logger}
}

// Nop returns a logger that discards all output. Intended for tests.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Child returns a new logger inheriting all fields of the receiver. The
// child can be enriched with request-scoped fields without touching the
// parent.
func (l *Logger) Child() *Logger {
	return &Logger{l.With().Logger()}
}

// FromContext returns the logger attached to ctx, or a disabled logger if
// none was attached.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}

// FromRequest returns the logger attached to the request's context.
func FromRequest(r *http.Request) *Logger {
	return &Logger{*log.Ctx(r.Context())}
}
