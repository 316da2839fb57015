// Package logging builds the service's zerolog logger.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a timestamped JSON logger tagged with app, at the given level.
// Unknown levels fall back to info.
func New(app, level string) zerolog.Logger {
	return NewWithWriter(os.Stdout, app, level)
}

// NewWithWriter is New with an explicit output, mostly for tests.
func NewWithWriter(w io.Writer, app, level string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	return zerolog.New(w).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Str("app", app).
		Logger()
}

// ParseLevel maps LOG_LEVEL values such as "debug" or "WARN" to zerolog levels.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
