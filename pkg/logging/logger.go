// Package logging provides structured logging for dl3kit using zerolog.
// Output is human-readable when stderr is a terminal and JSON otherwise,
// so batch runs can be piped into log collectors unchanged.
//
// A logger travels with the context through IRF loading and parallel
// batches:
//
//	ctx := logging.WithTask(ctx, "load_irfs")
//	logging.FromContext(ctx).Debug().Int("input", 3).Msg("task done")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var defaultLogger = NewLoggerFromConfig(FromEnv())

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault sets the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

func stderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
