package internal

import (
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents the logging level
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

var (
	logLevel atomic.Int32
	logger   atomic.Pointer[zerolog.Logger]
)

func init() {
	SetLogLevel(LogLevelInfo)
	SetLogOutput(os.Stderr)
}

func newLogger(w io.Writer) *zerolog.Logger {
	l := zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()
	return &l
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	logLevel.Store(int32(level))
}

// CurrentLogLevel returns the global log level
func CurrentLogLevel() LogLevel {
	return LogLevel(logLevel.Load())
}

// SetVerbose enables verbose (debug) logging
func SetVerbose(verbose bool) {
	if verbose {
		SetLogLevel(LogLevelDebug)
	} else {
		SetLogLevel(LogLevelInfo)
	}
}

// SetLogOutput redirects log output, e.g. to a file while the TUI owns the terminal
func SetLogOutput(w io.Writer) {
	logger.Store(newLogger(w))
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	if CurrentLogLevel() >= LogLevelError {
		logger.Load().Error().Msgf(format, args...)
	}
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	if CurrentLogLevel() >= LogLevelWarn {
		logger.Load().Warn().Msgf(format, args...)
	}
}

// LogInfo logs an info message
func LogInfo(format string, args ...interface{}) {
	if CurrentLogLevel() >= LogLevelInfo {
		logger.Load().Info().Msgf(format, args...)
	}
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	if CurrentLogLevel() >= LogLevelDebug {
		logger.Load().Debug().Msgf(format, args...)
	}
}
