package config

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// SetupLogging builds the diagnostic logger for the selected output mode.
// Returns the log file handle (caller must close it) or nil if no file
func SetupLogging(args Args) (*logrus.Logger, *os.File, error) {
	var writers []io.Writer
	var logFile *os.File

	// Add file writer if specified
	if args.Log != "" {
		f, err := os.OpenFile(args.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		logFile = f
		writers = append(writers, f)
	}

	// Diagnostics always go to stderr; measurement data owns stdout.
	writers = append(writers, os.Stderr)

	log := logrus.New()
	if len(writers) == 1 {
		log.SetOutput(writers[0])
	} else {
		log.SetOutput(io.MultiWriter(writers...))
	}

	log.SetLevel(parseLogLevel(args.LogLevel))
	if args.Json {
		// JSON mode gets JSON-formatted logs
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if log.IsLevelEnabled(logrus.DebugLevel) {
		log.SetReportCaller(true)
	}

	return log, logFile, nil
}

// parseLogLevel converts string to logrus.Level
func parseLogLevel(level string) logrus.Level {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.WarnLevel
	}
	return l
}
