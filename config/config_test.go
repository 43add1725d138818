package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/quadlife/components"
	"github.com/pthm-cable/quadlife/systems"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.World.Width != 500 || cfg.World.Height != 500 {
		t.Errorf("expected 500x500 world, got %dx%d", cfg.World.Width, cfg.World.Height)
	}
	if cfg.Index.Levels != 4 {
		t.Errorf("expected 4 index levels, got %d", cfg.Index.Levels)
	}
	if cfg.Derived.Population != 310 {
		t.Errorf("expected default population 310, got %d", cfg.Derived.Population)
	}
	if cfg.Derived.ScreenW != 600 || cfg.Derived.ScreenH != 600 {
		t.Errorf("expected 600x600 window, got %dx%d", cfg.Derived.ScreenW, cfg.Derived.ScreenH)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("world:\n  width: 800\npopulation:\n  seeds:\n    - species: plant\n      count: 3\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.World.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.World.Width)
	}
	// Untouched fields keep their defaults
	if cfg.World.Height != 500 {
		t.Errorf("expected height 500, got %d", cfg.World.Height)
	}
	if len(cfg.Population.Seeds) != 1 || cfg.Derived.Population != 3 {
		t.Errorf("expected seeds replaced by a single plant seed, got %+v", cfg.Population.Seeds)
	}
}

func TestDefaultSpeciesColors(t *testing.T) {
	colors := Defaults().Colors
	tests := []struct {
		species components.Species
		want    string
	}{
		{components.SpeciesPlant, "#02ab83"},
		{components.SpeciesHerbivore, "#eac435"},
		{components.SpeciesCarnivore, "#fb4d3d"},
	}
	for _, tc := range tests {
		if got := colors.Species(tc.species); got != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.species, tc.want, got)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.World.Width = 0 }, true},
		{"zero height", func(c *Config) { c.World.Height = 0 }, true},
		{"zero diameter", func(c *Config) { c.Entity.Diameter = 0 }, true},
		{"no levels", func(c *Config) { c.Index.Levels = 0 }, true},
		{"deepest index", func(c *Config) { c.Index.Levels = systems.MaxLevels }, false},
		{"too many levels", func(c *Config) { c.Index.Levels = systems.MaxLevels + 1 }, true},
		{"unallocatable depth", func(c *Config) { c.Index.Levels = 16 }, true},
		{"turn chance above one", func(c *Config) { c.Movement.TurnChance = 1.5 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestValidateZeroFieldIsInvalidField(t *testing.T) {
	cfg := Defaults()
	cfg.World.Width = 0
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Defaults()
	cfg.World.Width = 640

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.World.Width != 640 {
		t.Errorf("expected width 640 after roundtrip, got %d", loaded.World.Width)
	}
}
