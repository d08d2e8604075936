// Package logger configures the global logrus logger.
package logger

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Init sets up logging to stderr, optionally duplicated to a file so
// multi-day runs leave a reviewable trail. Level comes from LOG_LEVEL
// unless verbose forces debug. Safe to call multiple times; later calls
// overwrite previous settings.
func Init(verbose bool, logFile string) error {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	output := io.Writer(os.Stderr)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		output = io.MultiWriter(os.Stderr, file)
	}
	log.SetOutput(output)

	if verbose {
		log.SetLevel(log.DebugLevel)
		return nil
	}

	levelStr := os.Getenv("LOG_LEVEL")
	if levelStr == "" {
		levelStr = "info"
	}
	if lvl, err := log.ParseLevel(levelStr); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	return nil
}
