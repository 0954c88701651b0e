package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger so packages share one construction path.
type Logger struct {
	*zerolog.Logger
}

// New creates a console logger writing to out (stderr when nil).
// level is a zerolog level name; unknown names fall back to warn.
func New(out io.Writer, level string) *Logger {
	if out == nil {
		out = os.Stderr
	}

	consoleWriter := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    os.Getenv("NO_COLOR") != "",
	}

	zlog := zerolog.New(consoleWriter).
		Level(ParseLevel(level)).
		With().
		Timestamp().
		Logger()

	return &Logger{&zlog}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	zlog := zerolog.Nop()
	return &Logger{&zlog}
}

// ParseLevel maps a level name to a zerolog level, defaulting to warn.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return zerolog.WarnLevel
	}
	return lvl
}

// WithComponent creates a child logger with a component field.
func (l *Logger) WithComponent(component string) *Logger {
	child := l.Logger.With().Str("component", component).Logger()
	return &Logger{&child}
}
