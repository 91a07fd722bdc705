// Package config reads process settings from the environment (and an
// optional .env file) and board presets from YAML.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/youruser/moodboard/internal/board"
)

// Config holds process-wide settings.
type Config struct {
	Port       string
	Seed       int64 // 0 means seed from the clock
	OutputDir  string
	PresetPath string
	LogLevel   slog.Level
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:       "8080",
		OutputDir:  "exports",
		PresetPath: "moodboard.yaml",
		LogLevel:   slog.LevelInfo,
	}
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, falling back to Default for unset
// variables.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := Default()
	if v := getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("MOODBOARD_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MOODBOARD_SEED %q: %w", v, err)
		}
		cfg.Seed = seed
	}
	if v := getenv("MOODBOARD_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := getenv("MOODBOARD_PRESET"); v != "" {
		cfg.PresetPath = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", v, err)
		}
	}
	return cfg, nil
}

// Rand returns the random source for collage placement and paper grain.
func (c *Config) Rand() *rand.Rand {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Logger returns a text logger on stderr at the configured level.
func (c *Config) Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: c.LogLevel}))
}

// LoadPreset reads board settings from a YAML file over the defaults.
// A missing file yields the defaults.
func LoadPreset(path string) (board.Settings, error) {
	settings := board.DefaultSettings()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("failed to read preset: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return board.DefaultSettings(), fmt.Errorf("failed to parse preset %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return board.DefaultSettings(), fmt.Errorf("preset %s: %w", path, err)
	}
	return settings, nil
}

// SavePreset writes settings as YAML, creating the parent directory.
func SavePreset(path string, settings board.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create preset directory: %w", err)
	}
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write preset: %w", err)
	}
	return nil
}
