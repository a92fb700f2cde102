package output

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns the diagnostics logger. Verbose mode shows info
// messages; otherwise only warnings and errors get through.
func NewLogger(w io.Writer, verbose, color bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.InfoLevel
	}
	cw := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !color,
		TimeFormat: time.Kitchen,
	}
	return zerolog.New(cw).Level(level).With().Timestamp().Logger()
}
