package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	logFile *os.File
	mu      sync.Mutex
)

// SetupLogger configures the global logger. Verbosity 0 shows warnings,
// 1 info, 2 debug and 3 or more trace. Output goes to stderr and, when file
// is not empty, is also appended to file.
func SetupLogger(verbosity int, file string) error {
	return setupLogger(os.Stderr, verbosity, file, !isTerminal(os.Stderr))
}

func setupLogger(out io.Writer, verbosity int, file string, noColor bool) error {
	mu.Lock()
	defer mu.Unlock()

	switch {
	case verbosity <= 0:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case verbosity == 1:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case verbosity == 2:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}

	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}}

	closeLogFile()
	var fileErr error
	if file != "" {
		logFile, fileErr = openLogFile(file)
		if fileErr == nil {
			writers = append(writers, logFile)
		}
	}

	log.Logger = zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if verbosity >= 2 {
		log.Logger = log.Logger.With().Caller().Logger()
	}

	if fileErr != nil {
		return fileErr
	}
	log.Debug().Int("verbosity", verbosity).Str("logFile", file).Msg("Logger initialized")
	return nil
}

// openLogFile creates the log file and its parent directories
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func closeLogFile() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

// CloseLogger closes the log file (if any)
func CloseLogger() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// GetLogger returns the global logger tagged with a component name
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Convenience functions for the global logger
func Warning(format string, args ...interface{}) {
	log.Warn().Msgf(format, args...)
}

func Debug(format string, args ...interface{}) {
	log.Debug().Msgf(format, args...)
}
