package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

var (
	// global is the process-wide logger. Init may swap it while other
	// goroutines derive component loggers, so every access holds mu.
	global zerolog.Logger
	mu     sync.RWMutex
)

func init() {
	// Default to info level on stderr so stdout stays clean for command output.
	// Can be reconfigured later with Init()
	set(newLogger(os.Stderr))
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		With().
		Timestamp().
		Caller().
		Logger()
}

func set(l zerolog.Logger) {
	mu.Lock()
	global = l
	log.Logger = l
	mu.Unlock()
}

// ParseLevel maps a config/flag level name to a zerolog level.
// Unknown names fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ValidLevel reports whether level is one ParseLevel understands.
func ValidLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}

// IsTerminal reports whether stderr is attached to a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Init initializes the global logger with the specified level and output
func Init(level string, pretty bool) {
	InitWriter(os.Stderr, level, pretty)
}

// InitWriter is Init with an explicit destination.
func InitWriter(w io.Writer, level string, pretty bool) {
	zerolog.SetGlobalLevel(ParseLevel(level))

	output := w
	if pretty {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	set(newLogger(output))
}

// Get returns a copy of the global logger
func Get() *zerolog.Logger {
	mu.RLock()
	l := global
	mu.RUnlock()
	return &l
}

// WithComponent returns a logger with a component field set
func WithComponent(component string) *zerolog.Logger {
	mu.RLock()
	l := global.With().Str("component", component).Logger()
	mu.RUnlock()
	return &l
}
