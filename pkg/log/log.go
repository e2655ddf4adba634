package log

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the process-wide root logger. Packages derive component
// loggers from it rather than logging through it directly.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// Config holds logging configuration
type Config struct {
	// Level is one of debug, info, warn or error. Anything else falls
	// back to info.
	Level string

	// JSON emits one JSON object per line instead of console output.
	JSON bool

	// Output defaults to stdout.
	Output io.Writer
}

// Init replaces the root logger according to cfg. Component loggers
// derived afterwards inherit the new settings; loggers derived before
// keep the old ones, so call this before wiring any components.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if !cfg.JSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	Logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// WithComponent derives a logger tagged with the owning component.
func WithComponent(component string) zerolog.Logger {
	return Logger.With().Str("component", component).Logger()
}
