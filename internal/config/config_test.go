package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cellsync.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.LogLevel != "info" || cfg.Color != "auto" || !cfg.ShowSynthetic {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"
color = "off"
show_synthetic = false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, expected debug", cfg.LogLevel)
	}
	if cfg.Color != "off" {
		t.Errorf("Color = %q, expected off", cfg.Color)
	}
	if cfg.ShowSynthetic {
		t.Error("ShowSynthetic = true, expected false")
	}
}

func TestLoad_PartialLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `log_level = "warn"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, expected warn", cfg.LogLevel)
	}
	if cfg.Color != "auto" || !cfg.ShowSynthetic {
		t.Errorf("Unset fields lost their defaults: %+v", cfg)
	}
}

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Error("Missing file did not return defaults")
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, `log_level = `)

	if _, err := Load(path); err == nil {
		t.Error("Expected a decode error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		valid bool
	}{
		{"defaults", Default(), true},
		{"color on", Config{LogLevel: "info", Color: "on"}, true},
		{"bad color", Config{LogLevel: "info", Color: "maybe"}, false},
		{"bad level", Config{LogLevel: "trace", Color: "auto"}, false},
		{"empty level", Config{LogLevel: "", Color: "auto"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("Expected a validation error")
			}
		})
	}
}
