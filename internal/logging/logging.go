// Package logging builds the charmbracelet/log logger shared by every command.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options configures a logger
type Options struct {
	Level string    // debug, info, warn or error; empty means warn
	File  string    // Optional path; truncated on open
	Out   io.Writer // Used when File is empty; nil discards
}

// ParseLevel converts a level name into a log.Level
func ParseLevel(level string) (log.Level, error) {
	switch level {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "", "warn":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("invalid log level: %s", level)
	}
}

// New creates a logger. The returned close function releases the log file,
// if one was opened, and is always safe to call.
func New(opts Options) (*log.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	closer := func() error { return nil }
	var w io.Writer = io.Discard
	if opts.Out != nil {
		w = opts.Out
	}

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = f.Close
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "fairrps",
	})
	return logger, closer, nil
}
