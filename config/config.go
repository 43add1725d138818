// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/quadlife/components"
	"github.com/pthm-cable/quadlife/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidField is returned when the configured field has a zero dimension.
var ErrInvalidField = errors.New("field dimensions must be positive")

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	World      WorldConfig      `yaml:"world"`
	Entity     EntityConfig     `yaml:"entity"`
	Movement   MovementConfig   `yaml:"movement"`
	Index      IndexConfig      `yaml:"index"`
	Population PopulationConfig `yaml:"population"`
	Colors     ColorsConfig     `yaml:"colors"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
// The window is sized to the world scaled by Scale, leaving a margin around the field.
type ScreenConfig struct {
	Scale     float64 `yaml:"scale"`
	TargetFPS int     `yaml:"target_fps"`
	ShowGrid  bool    `yaml:"show_grid"` // Draw quadtree bucket boundaries
	ShowHUD   bool    `yaml:"show_hud"`
}

// WorldConfig holds simulation field dimensions.
type WorldConfig struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// EntityConfig holds entity creation parameters.
type EntityConfig struct {
	Diameter uint32 `yaml:"diameter"`
}

// MovementConfig holds the random walk parameters.
type MovementConfig struct {
	TurnChance float64 `yaml:"turn_chance"` // Per-tick probability of drawing a new heading
	Step       uint32  `yaml:"step"`        // Distance moved per tick
}

// IndexConfig holds spatial index parameters.
type IndexConfig struct {
	Levels int `yaml:"levels"` // Subdivision depth, including the root level
}

// PopulationConfig holds the initial population.
type PopulationConfig struct {
	Seeds []SeedConfig `yaml:"seeds"`
}

// SeedConfig spawns Count entities of one species at startup.
type SeedConfig struct {
	Species string `yaml:"species"`
	Count   uint32 `yaml:"count"`
}

// ColorsConfig holds the palette as CSS hex strings.
type ColorsConfig struct {
	Background string `yaml:"background"`
	Border     string `yaml:"border"`
	Grid       string `yaml:"grid"`

	// Fill and stroke of each species
	Plant     string `yaml:"plant"`
	Herbivore string `yaml:"herbivore"`
	Carnivore string `yaml:"carnivore"`
}

// Species returns the color configured for s.
func (c ColorsConfig) Species(s components.Species) string {
	switch s {
	case components.SpeciesPlant:
		return c.Plant
	case components.SpeciesHerbivore:
		return c.Herbivore
	case components.SpeciesCarnivore:
		return c.Carnivore
	}
	return c.Border
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	CensusInterval int `yaml:"census_interval"` // Ticks per census window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW    int32 // Window width in pixels
	ScreenH    int32 // Window height in pixels
	Population int   // Sum of all seed counts
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := Parse(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Parse unmarshals data over cfg. Only fields present in data are overwritten,
// except lists which are replaced wholesale.
func Parse(cfg *Config, data []byte) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

// Validate reports configuration errors that make a run impossible.
func (c *Config) Validate() error {
	if c.World.Width == 0 || c.World.Height == 0 {
		return fmt.Errorf("world %dx%d: %w", c.World.Width, c.World.Height, ErrInvalidField)
	}
	if c.Entity.Diameter == 0 {
		return errors.New("entity diameter must be positive")
	}
	if c.Index.Levels < 1 || c.Index.Levels > systems.MaxLevels {
		return fmt.Errorf("index levels %d out of range [1, %d]", c.Index.Levels, systems.MaxLevels)
	}
	if c.Movement.TurnChance < 0 || c.Movement.TurnChance > 1 {
		return fmt.Errorf("turn chance %v out of range [0, 1]", c.Movement.TurnChance)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	scale := c.Screen.Scale
	if scale < 1 {
		scale = 1
	}
	c.Derived.ScreenW = int32(float64(c.World.Width) * scale)
	c.Derived.ScreenH = int32(float64(c.World.Height) * scale)

	c.Derived.Population = 0
	for _, s := range c.Population.Seeds {
		c.Derived.Population += int(s.Count)
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
