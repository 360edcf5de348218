package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LESSBUILDER_DB", "")
	t.Setenv("LESSBUILDER_SPEECH_PROVIDER", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "none", cfg.Speech.Provider)
	assert.Equal(t, "es-ES", cfg.Speech.Language)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db: /tmp/file.db
log:
  level: debug
speech:
  provider: gcp
  typed_fallback: true
server:
  addr: ":9000"
  allowed_origins: ["http://localhost:5173"]
player:
  shuffle_seed: 42
`), 0o644))

	t.Setenv("LESSBUILDER_DB", "/tmp/env.db")
	t.Setenv("LESSBUILDER_SPEECH_PROVIDER", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/env.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "gcp", cfg.Speech.Provider)
	assert.True(t, cfg.Speech.TypedFallback)
	assert.Equal(t, "es-ES", cfg.Speech.Language, "unset keys keep defaults")
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, uint64(42), cfg.Player.ShuffleSeed)
}

func TestLoadRejectsUnknownProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("speech:\n  provider: azure\n"), 0o644))
	t.Setenv("LESSBUILDER_SPEECH_PROVIDER", "")

	_, err := Load(path)
	assert.ErrorContains(t, err, "azure")
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestOpenAIKeyFromEnv(t *testing.T) {
	t.Setenv("LESSBUILDER_SPEECH_PROVIDER", "openai")
	t.Setenv("LESSBUILDER_OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Speech.APIKey)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("LESSBUILDER_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, "/xdg/lessbuilder/config.yaml", DefaultPath())

	t.Setenv("LESSBUILDER_CONFIG", "/etc/lb.yaml")
	assert.Equal(t, "/etc/lb.yaml", DefaultPath())
}
