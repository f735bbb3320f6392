// Package telemetry provides the package-level structured logger used by the
// shape selector (console-friendly
// zerolog.Logger, unix-time timestamps). Logging here is advisory only: it
// must never sit on the DLX cover/uncover hot path, only around search
// entry/exit and selector-level decisions.
package telemetry

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the shared root logger. Callers derive scoped child loggers with
// Log.With().Str("component", name).Logger() rather than logging directly
// against Log.
var Log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

// SetLevel adjusts the global zerolog level, e.g. for cmd/ binaries wired to
// a -verbose flag.
func SetLevel(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
}
