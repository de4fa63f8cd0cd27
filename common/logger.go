package common

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// LoggerOptions contains options for creating a logger.
type LoggerOptions struct {
	Quiet   bool
	Verbose bool
	JSON    bool
	Output  io.Writer
}

// NewLogger builds the logger handed to every component. Quiet keeps errors
// only, verbose enables debug output.
func NewLogger(opts LoggerOptions) zerolog.Logger {
	var output io.Writer = os.Stderr
	if opts.Output != nil {
		output = opts.Output
	}
	if !opts.JSON {
		output = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.Kitchen,
		}
	}

	level := zerolog.InfoLevel
	switch {
	case opts.Quiet:
		level = zerolog.ErrorLevel
	case opts.Verbose:
		level = zerolog.DebugLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}
