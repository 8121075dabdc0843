// Package logger builds the process-wide zerolog logger.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// New returns a logger at the given level. In the dev environment output
// goes through the human-readable console writer; otherwise JSON lines.
func New(level, envName string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	log := zerolog.New(os.Stderr)
	if envName == "dev" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return log.Level(lvl).With().Timestamp().Logger()
}
