package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerKeyValuePairs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := fromCore(core)

	logger.Infow("Parsed transcript", "format", "srt", "segments", 12)
	logger.Warnw("Repaired segments", "warnings", 2)

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, "Parsed transcript", entries[0].Message)
	assert.Equal(t, "srt", entries[0].ContextMap()["format"])
	assert.Equal(t, int64(12), entries[0].ContextMap()["segments"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}

func TestLoggerWritesRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "podmeta.log")

	logger := New(Options{File: path})
	logger.Debugw("Detected format", "format", "time-range")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"msg":"Detected format"`))
	assert.True(t, strings.Contains(string(data), `"format":"time-range"`))
}

func TestNewLoggerLevel(t *testing.T) {
	quiet := NewLogger(false)
	assert.False(t, quiet.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, quiet.Desugar().Core().Enabled(zapcore.InfoLevel))
	assert.NoError(t, quiet.Close())

	loud := NewLogger(true)
	assert.True(t, loud.Desugar().Core().Enabled(zapcore.DebugLevel))
	assert.NoError(t, loud.Close())
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	logger.Infow("ignored")
	assert.NoError(t, logger.Close())
}
