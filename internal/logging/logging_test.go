package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	got := sanitizeKVs([]any{"api_key", "sk-123", "block", 2, "OpenAI_APIKey", "x", "dangling"})
	assert.Equal(t, []any{"api_key", redacted, "block", 2, "OpenAI_APIKey", redacted, "dangling"}, got)
}

func TestLogger_RedactsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	l := FromZap(zap.New(core))

	l.With("provider", "openai").Info("request", "api_key", "sk-live", "auth_token", "t", "tokens", 12)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "openai", fields["provider"])
	assert.Equal(t, redacted, fields["api_key"])
	assert.Equal(t, redacted, fields["auth_token"])
	assert.EqualValues(t, 12, fields["tokens"])
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	l, err := New(Options{Level: "debug", Path: path})
	require.NoError(t, err)

	l.Debug("hello", "block", 1)
	l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	p, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/state/lessbuilder/lessbuilder.log", p)
}
