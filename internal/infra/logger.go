package infra

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger aliases zerolog.Logger so commands can pass it around without
// importing zerolog themselves.
type Logger = zerolog.Logger

// NewLogger writes JSON to stdout, or console output at debug level in
// development.
func NewLogger(appEnv string) zerolog.Logger {
	return NewLoggerTo(appEnv, os.Stdout)
}

// NewLoggerTo is NewLogger with an explicit destination.
func NewLoggerTo(appEnv string, w io.Writer) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "development" {
		level = zerolog.DebugLevel
	}
	zerolog.DurationFieldUnit = time.Millisecond

	logger := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("service", "aidconnect").
		Logger()

	if appEnv == "development" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339})
	}
	return logger
}
