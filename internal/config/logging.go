package config

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLogLevel is used when LOG_LEVEL is not set.
const DefaultLogLevel = "info"

// NewLogger creates a timestamped logger writing to w at the named level
// (debug, info, warn, error, fatal). An empty level means DefaultLogLevel.
func NewLogger(w io.Writer, prefix, level string) (*log.Logger, error) {
	if level == "" {
		level = DefaultLogLevel
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          prefix,
		Level:           lvl,
	})
	return logger, nil
}
