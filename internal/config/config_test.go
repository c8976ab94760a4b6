package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/cnconv/internal/analysis"
	"github.com/san-kum/cnconv/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.EndTime != 1.0 || cfg.Coefficient != -100.0 || cfg.Initial != 1.0 {
		t.Errorf("unexpected default parameters: %+v", cfg)
	}
	if cfg.Params() != dynamo.DefaultParams() {
		t.Errorf("default config disagrees with dynamo defaults: %+v", cfg.Params())
	}
	if cfg.Integrator != "crank-nicolson" {
		t.Errorf("expected crank-nicolson, got %s", cfg.Integrator)
	}

	ns, err := cfg.Resolutions()
	if err != nil {
		t.Fatal(err)
	}
	if len(ns) != 8 || ns[0] != 8 || ns[7] != 1024 {
		t.Errorf("unexpected resolutions %v", ns)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")
	data := "coefficient: -10\nmax_exp: 8\nintegrator: rk4\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Coefficient != -10 {
		t.Errorf("expected coefficient -10, got %g", cfg.Coefficient)
	}
	if cfg.MaxExp != 8 || cfg.MinExp != analysis.DefaultMinExp {
		t.Errorf("unexpected exponents %d..%d", cfg.MinExp, cfg.MaxExp)
	}
	if cfg.EndTime != DefaultEndTime {
		t.Errorf("expected default end time, got %g", cfg.EndTime)
	}
	if cfg.Integrator != "rk4" {
		t.Errorf("expected rk4, got %s", cfg.Integrator)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("end_time: [1, 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadIntoKeepsBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "study.yaml")
	if err := os.WriteFile(path, []byte("max_exp: 5\nformat: csv\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg := GetPreset("long")
	if err := LoadInto(path, cfg); err != nil {
		t.Fatal(err)
	}
	if cfg.EndTime != 10 || cfg.Coefficient != -2 || cfg.MinExp != 5 {
		t.Errorf("preset fields lost: %+v", cfg)
	}
	if cfg.MaxExp != 5 || cfg.Format != "csv" {
		t.Errorf("file fields not applied: %+v", cfg)
	}
	if Presets["long"].MaxExp != 12 {
		t.Error("LoadInto must not modify the preset table")
	}

	if err := LoadInto(filepath.Join(t.TempDir(), "missing.yaml"), cfg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("fine")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n%+v\n%+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"zero end time", func(c *Config) { c.EndTime = 0 }, dynamo.ErrInvalidEndTime},
		{"negative min exp", func(c *Config) { c.MinExp = -1 }, analysis.ErrResolutionRange},
		{"inverted range", func(c *Config) { c.MinExp, c.MaxExp = 9, 4 }, analysis.ErrResolutionRange},
		{"too fine", func(c *Config) { c.MaxExp = analysis.MaxExp + 1 }, analysis.ErrResolutionRange},
		{"unknown format", func(c *Config) { c.Format = "xml" }, nil},
	}

	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if tt.target != nil && !errors.Is(err, tt.target) {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.target, err)
		}
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("mild")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Coefficient != -1.0 {
		t.Errorf("expected coefficient -1, got %g", cfg.Coefficient)
	}
	if cfg.Format != DefaultFormat {
		t.Errorf("expected default format, got %q", cfg.Format)
	}

	cfg.Coefficient = 42
	if Presets["mild"].Coefficient != -1.0 {
		t.Error("GetPreset must not hand out the shared preset")
	}

	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	expected := []string{"fine", "growth", "long", "mild", "stiff"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("index %d: expected %s, got %s", i, expected[i], names[i])
		}
	}
	for _, name := range names {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s does not validate: %v", name, err)
		}
	}
}
