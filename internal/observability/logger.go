package observability

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog for structured logging.
type Logger struct {
	logger zerolog.Logger
}

// NewLogger creates a JSON logger tagged with service and version. A nil
// output writes to stdout.
func NewLogger(service, version string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	zerolog.TimeFieldFormat = time.RFC3339

	logger := zerolog.New(output).With().
		Timestamp().
		Str("service", service).
		Str("version", version).
		Logger()

	return &Logger{logger: logger}
}

// NewConsoleLogger creates a human-readable logger for the CLI.
func NewConsoleLogger(output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}
	w := zerolog.ConsoleWriter{Out: output, TimeFormat: time.Kitchen}
	return &Logger{logger: zerolog.New(w).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger { return &Logger{logger: zerolog.Nop()} }

// WithLevel returns a copy of l filtering below level ("debug", "info",
// "warn", "error"). Unknown levels leave l unchanged.
func (l *Logger) WithLevel(level string) *Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || level == "" {
		return l
	}
	return &Logger{logger: l.logger.Level(lvl)}
}

// WithSession adds a session fingerprint to the logger. Never pass a raw
// session identifier.
func (l *Logger) WithSession(fingerprint string) *Logger {
	return &Logger{
		logger: l.logger.With().Str("session", fingerprint).Logger(),
	}
}

// WithPeer adds peer context to logger.
func (l *Logger) WithPeer(peer string) *Logger {
	return &Logger{
		logger: l.logger.With().Str("peer", peer).Logger(),
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.logger.Debug().Msg(msg)
}

// Info logs an info message.
func (l *Logger) Info(msg string) {
	l.logger.Info().Msg(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.logger.Warn().Msg(msg)
}

// Error logs an error message.
func (l *Logger) Error(err error, msg string) {
	l.logger.Error().Err(err).Msg(msg)
}

// SessionEstablished logs a completed key agreement.
func (l *Logger) SessionEstablished(role string, oneTimeKey bool) {
	l.logger.Info().
		Str("role", role).
		Bool("one_time_key", oneTimeKey).
		Msg("session established")
}

// SessionFailed logs a failed key agreement.
func (l *Logger) SessionFailed(role, kind string, err error) {
	l.logger.Warn().
		Str("role", role).
		Str("kind", kind).
		Err(err).
		Msg("session establishment failed")
}

// DecryptRejected logs a message that could not be opened. Only the failure
// kind is recorded.
func (l *Logger) DecryptRejected(kind string) {
	l.logger.Warn().
		Str("kind", kind).
		Msg("message rejected")
}

// Request logs one directory HTTP request.
func (l *Logger) Request(method, path string, status, bytes int, elapsed time.Duration) {
	l.logger.Info().
		Str("method", method).
		Str("path", path).
		Int("status", status).
		Int("bytes", bytes).
		Dur("duration", elapsed).
		Msg("request")
}
