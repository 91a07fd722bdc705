package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/youruser/moodboard/internal/board"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(env(nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.OutputDir != "exports" || cfg.PresetPath != "moodboard.yaml" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Seed != 0 || cfg.LogLevel != slog.LevelInfo {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(env(map[string]string{
		"PORT":                 "9000",
		"MOODBOARD_SEED":       "42",
		"MOODBOARD_OUTPUT_DIR": "/tmp/out",
		"MOODBOARD_PRESET":     "p.yaml",
		"LOG_LEVEL":            "debug",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9000" || cfg.Seed != 42 || cfg.OutputDir != "/tmp/out" || cfg.PresetPath != "p.yaml" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	if _, err := FromEnv(env(map[string]string{"MOODBOARD_SEED": "abc"})); err == nil {
		t.Errorf("expected an error for a non-numeric seed")
	}
	if _, err := FromEnv(env(map[string]string{"LOG_LEVEL": "loud"})); err == nil {
		t.Errorf("expected an error for an unknown log level")
	}
}

func TestSeededRandIsReproducible(t *testing.T) {
	cfg := Default()
	cfg.Seed = 7
	a, b := cfg.Rand(), cfg.Rand()
	for i := 0; i < 5; i++ {
		if a.Float64() != b.Float64() {
			t.Fatal("same seed produced different sequences")
		}
	}
}

func TestLoadPreset_NonExistentFile(t *testing.T) {
	s, err := LoadPreset("/nonexistent/path/moodboard.yaml")
	if err != nil {
		t.Fatalf("unexpected error loading non-existent preset: %v", err)
	}
	if s != board.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", s)
	}
}

func TestSavePreset_And_LoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets", "warm.yaml")
	want := board.DefaultSettings()
	want.Layout = board.LayoutSmart
	want.Background = board.BackgroundGradient
	want.GradientColor1 = board.MustColor("#ffeedd")
	want.GradientDirection = board.GradientRadial
	want.Filter = board.FilterWarm
	want.ExportResolution = 3
	want.Labels = true

	if err := SavePreset(path, want); err != nil {
		t.Fatalf("failed to save preset: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("preset not written: %v", err)
	}
	for _, line := range []string{"layout: smart", "filter: warm", "gradient_direction: radial"} {
		if !strings.Contains(string(data), line) {
			t.Errorf("preset is missing %q:\n%s", line, data)
		}
	}

	got, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("failed to load preset: %v", err)
	}
	if got != want {
		t.Errorf("loaded %+v, want %+v", got, want)
	}
}

func TestLoadPreset_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	if err := os.WriteFile(path, []byte("layout: collage\nbackground_color: \"#000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadPreset(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Layout != board.LayoutCollage || s.BackgroundColor != board.MustColor("#000000") {
		t.Errorf("preset values not applied: %+v", s)
	}
	if s.GridColumns != 3 || s.ExportResolution != 1 {
		t.Errorf("defaults lost: %+v", s)
	}
}

func TestLoadPreset_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("layout: spiral\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPreset(path); !errors.Is(err, board.ErrUnknownLayout) {
		t.Errorf("expected ErrUnknownLayout, got %v", err)
	}
}
