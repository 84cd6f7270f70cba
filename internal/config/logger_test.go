package config

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		name  string
		env   string
		level log.Level
	}{
		{"default", "", log.InfoLevel},
		{"debug", "debug", log.DebugLevel},
		{"warn", "warn", log.WarnLevel},
		{"unknown keeps info", "loud", log.InfoLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("PONG_LOG_LEVEL", tc.env)
			logger := NewLogger(&bytes.Buffer{}, "test")
			assert.Equal(t, tc.level, logger.GetLevel())
		})
	}
}

func TestNewLoggerWrites(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "pong")
	logger.Info("point scored", "scorer", "left")

	assert.Contains(t, buf.String(), "pong")
	assert.Contains(t, buf.String(), "point scored")
	assert.Contains(t, buf.String(), "scorer=left")
}
