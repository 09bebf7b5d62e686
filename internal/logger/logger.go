package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/go-tangra/go-tangra-hwscore/internal/errors"
	"github.com/rs/zerolog"
)

// stdout carries command output, so logs go to stderr.
var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

// ParseLevel maps a configured level name to a zerolog level.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}

	return zerolog.NoLevel, errors.New().WithData(errors.ErrInvalidLogLevel, level)
}

// Init configures the global logger. Interactive runs get a console
// writer; service runs drop timestamps because the event log adds its own.
func Init(level string, isService bool) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	if isService {
		output.NoColor = true
		output.FormatTimestamp = func(_ interface{}) string {
			return ""
		}
	}

	log = zerolog.New(output).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(lvl)

	return nil
}

// SetOutput redirects the logger to w as uncolored console lines
// without timestamps, so each line starts with its level (ERR, WRN, ...).
func SetOutput(w io.Writer) {
	log = log.Output(zerolog.ConsoleWriter{
		Out:     w,
		NoColor: true,
		FormatTimestamp: func(_ interface{}) string {
			return ""
		},
	})
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message with its error code
func ErrorWithCode(err errors.Error) *LogEvent {
	return &LogEvent{log.Error().
		Str("error_code", string(err.Code())).
		Str("error_message", err.Error()).
		AnErr("error", err.Unwrap())}
}
