// Package logging builds the zerolog loggers handed to the simulation.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a timestamped JSON logger writing to w at the named level.
// Unknown levels fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).Level(ParseLevel(level)).With().Timestamp().Logger()
}

// Console returns a human-readable logger on stderr. When file is non-nil the
// same lines are mirrored into it without colors.
func Console(level string, file io.Writer) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if file != nil {
		out = zerolog.MultiLevelWriter(
			out,
			zerolog.ConsoleWriter{Out: file, TimeFormat: time.RFC3339, NoColor: true},
		)
	}
	return New(out, level)
}

// ParseLevel maps a case-insensitive level name onto zerolog.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	case "DISABLED", "OFF":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
