package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// NewLogger creates a timestamped logger writing to w. The level comes from
// PONG_LOG_LEVEL (debug, info, warn, error); unknown values keep info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if level, err := log.ParseLevel(GetEnv("PONG_LOG_LEVEL", "info")); err == nil {
		logger.SetLevel(level)
	}
	return logger
}
