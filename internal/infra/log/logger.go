package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger создаёт настроенный zerolog с выводом в stdout.
func NewLogger(appEnv string) zerolog.Logger {
	return New(os.Stdout, appEnv)
}

// New создаёт zerolog, пишущий в w. В окружении dev включается уровень debug.
func New(w io.Writer, appEnv string) zerolog.Logger {
	level := zerolog.InfoLevel
	if appEnv == "dev" {
		level = zerolog.DebugLevel
	}
	zerolog.TimeFieldFormat = time.RFC3339
	return zerolog.New(w).With().Timestamp().Str("service", "feedback-bot").Logger().Level(level)
}
