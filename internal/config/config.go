// Package config loads lessbuilder settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds every lessbuilder setting.
type Config struct {
	DB     string       `yaml:"db"`
	Log    LogConfig    `yaml:"log"`
	Speech SpeechConfig `yaml:"speech"`
	Server ServerConfig `yaml:"server"`
	Player PlayerConfig `yaml:"player"`
}

// LogConfig controls the file logger.
type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// SpeechConfig selects the speech provider and the audio tools.
type SpeechConfig struct {
	Provider      string `yaml:"provider"` // openai, gcp or none
	Language      string `yaml:"language"`
	Voice         string `yaml:"voice"`
	RecordCommand string `yaml:"record_command"`
	PlayCommand   string `yaml:"play_command"`
	TypedFallback bool   `yaml:"typed_fallback"`
	APIKey        string `yaml:"-"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// PlayerConfig holds lesson player settings.
type PlayerConfig struct {
	// ShuffleSeed seeds quiz option shuffling. Zero picks a random seed.
	ShuffleSeed uint64 `yaml:"shuffle_seed"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Speech: SpeechConfig{
			Provider:      "none",
			Language:      "es-ES",
			Voice:         "alloy",
			RecordCommand: "rec -q -c 1 -r 16000 -t wav - trim 0 5",
			PlayCommand:   "play -q -t mp3 -",
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// DefaultPath returns $LESSBUILDER_CONFIG, or config.yaml under the XDG
// config directory.
func DefaultPath() string {
	if p := os.Getenv("LESSBUILDER_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "lessbuilder", "config.yaml")
}

// Load reads the config at path, or DefaultPath when path is empty, and
// applies environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides file values with LESSBUILDER_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("LESSBUILDER_DB"); v != "" {
		c.DB = v
	}
	if v := os.Getenv("LESSBUILDER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LESSBUILDER_LOG_PATH"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("LESSBUILDER_SPEECH_PROVIDER"); v != "" {
		c.Speech.Provider = v
	}
	if v := os.Getenv("LESSBUILDER_SPEECH_LANGUAGE"); v != "" {
		c.Speech.Language = v
	}
	if v := os.Getenv("LESSBUILDER_SPEECH_TYPED_FALLBACK"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Speech.TypedFallback = b
		}
	}
	if v := os.Getenv("LESSBUILDER_SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}

	if c.Speech.Provider == "openai" {
		c.Speech.APIKey = firstEnv("LESSBUILDER_OPENAI_API_KEY", "OPENAI_API_KEY")
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Speech.Provider {
	case "openai", "gcp", "none", "":
	default:
		return fmt.Errorf("unknown speech provider: %q", c.Speech.Provider)
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
