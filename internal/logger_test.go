package internal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_LevelParsingIsCaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "development", "WARN")

	logger.Info("suppressed")
	logger.Warn("emitted")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "emitted")
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "development", "chatty")

	logger.Debug("suppressed")
	logger.Info("emitted")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "emitted")
}

func TestNewLogger_JSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	NewLogger(&buf, "production", "info").Info("ready")
	assert.True(t, strings.HasPrefix(buf.String(), "{"), "production logs are JSON, got: %s", buf.String())

	buf.Reset()
	NewLogger(&buf, "development", "info").Info("ready")
	assert.False(t, strings.HasPrefix(buf.String(), "{"), "development logs are text, got: %s", buf.String())
}
