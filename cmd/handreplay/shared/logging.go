// Package shared holds helpers common to the handreplay commands.
package shared

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger configures zerolog for the server commands. Console output by
// default; structured selects JSON lines for log shippers.
func NewLogger(debug, structured bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	if structured {
		zerolog.TimeFieldFormat = time.RFC3339Nano
		return zerolog.New(os.Stderr).
			Level(level).
			With().
			Timestamp().
			Logger()
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
