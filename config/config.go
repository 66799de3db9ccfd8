// Package config provides configuration loading and access for the aquarium.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig              `yaml:"screen"`
	Aquarium  AquariumConfig            `yaml:"aquarium"`
	Player    PlayerConfig              `yaml:"player"`
	Spawn     SpawnConfig               `yaml:"spawn"`
	Creatures map[string]CreatureConfig `yaml:"creatures"`
	Shark     SharkConfig               `yaml:"shark"`
	Pink      PinkConfig                `yaml:"pink"`
	PowerUp   PowerUpConfig             `yaml:"powerup"`
	Levels    []LevelConfig             `yaml:"levels"`
	Sim       SimConfig                 `yaml:"sim"`
	Telemetry TelemetryConfig           `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// AquariumConfig holds tank dimensions.
// Creatures are bounced inside (Width-BoundsMargin, Height-BoundsMargin).
type AquariumConfig struct {
	Width        int `yaml:"width"`  // 0 = use screen width
	Height       int `yaml:"height"` // 0 = use screen height
	BoundsMargin int `yaml:"bounds_margin"`
}

// PlayerConfig holds the starting state of the player creature.
type PlayerConfig struct {
	StartX         float64 `yaml:"start_x"`
	StartY         float64 `yaml:"start_y"`
	Speed          int     `yaml:"speed"`
	Radius         float64 `yaml:"radius"`
	Lives          int     `yaml:"lives"`
	Power          int     `yaml:"power"`
	DamageDebounce int     `yaml:"damage_debounce"` // frames of invulnerability after a hit
	PowerMilestone int     `yaml:"power_milestone"` // power +1 every N eats
	GrowthFactor   float64 `yaml:"growth_factor"`   // power-up scale multiplier
	Sprite         string  `yaml:"sprite"`
	SpriteW        int     `yaml:"sprite_w"`
	SpriteH        int     `yaml:"sprite_h"`
}

// SpawnConfig holds NPC spawn parameters.
type SpawnConfig struct {
	MinSpeed int `yaml:"min_speed"`
	MaxSpeed int `yaml:"max_speed"` // inclusive
}

// CreatureConfig holds per-kind NPC parameters, keyed by kind name.
type CreatureConfig struct {
	Radius          float64 `yaml:"radius"`
	Value           int     `yaml:"value"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	Sprite          string  `yaml:"sprite"`
	SpriteW         int     `yaml:"sprite_w"`
	SpriteH         int     `yaml:"sprite_h"`
}

// SharkConfig holds the shark dash state machine tuning.
type SharkConfig struct {
	CruiseMultiplier   float64 `yaml:"cruise_multiplier"`
	DashMultiplier     float64 `yaml:"dash_multiplier"`
	DashFrames         int     `yaml:"dash_frames"`
	DashChance         int     `yaml:"dash_chance"` // percent per eligible tick
	InitialCooldownMin int     `yaml:"initial_cooldown_min"`
	InitialCooldownJit int     `yaml:"initial_cooldown_jitter"`
	CooldownMin        int     `yaml:"cooldown_min"`
	CooldownJitter     int     `yaml:"cooldown_jitter"`
	Drift              float64 `yaml:"drift"`
	MaxDY              float64 `yaml:"max_dy"`
}

// PinkConfig holds the pink fish swim wave.
type PinkConfig struct {
	PhaseStep     float64 `yaml:"phase_step"`
	Amplitude     float64 `yaml:"amplitude"`
	VerticalScale float64 `yaml:"vertical_scale"`
}

// PowerUpConfig holds the one-shot growth power-up.
type PowerUpConfig struct {
	DelayFrames int     `yaml:"delay_frames"` // frames after the first bigger fish sighting
	OffsetX     float64 `yaml:"offset_x"`
	OffsetY     float64 `yaml:"offset_y"`
	Margin      float64 `yaml:"margin"`
	Radius      float64 `yaml:"radius"`
	Sprite      string  `yaml:"sprite"`
	SpriteSize  int     `yaml:"sprite_size"`
}

// LevelConfig defines one level of the circular level list.
type LevelConfig struct {
	Name        string             `yaml:"name"`
	TargetScore int                `yaml:"target_score"`
	Population  []PopulationConfig `yaml:"population"`
}

// PopulationConfig is a single creature quota inside a level.
type PopulationConfig struct {
	Kind  string `yaml:"kind"`
	Count int    `yaml:"count"`
}

// SimConfig holds simulation pacing.
type SimConfig struct {
	UpdateEvery int   `yaml:"update_every"` // run collisions and aquarium every N frames
	Seed        int64 `yaml:"seed"`         // 0 = time-based
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // seconds
	MilestoneHistory    int     `yaml:"milestone_history"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	AquariumW int     // effective aquarium width
	AquariumH int     // effective aquarium height
	DT        float64 // seconds per frame at TargetFPS
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
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
		// Unmarshal into same struct - only overwrites fields present in file.
		// Levels is a list, so a user file that sets it replaces it wholesale.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot run with.
func (c *Config) validate() error {
	if len(c.Levels) == 0 {
		return fmt.Errorf("config: at least one level is required")
	}
	if c.Spawn.MinSpeed < 1 || c.Spawn.MaxSpeed < c.Spawn.MinSpeed {
		return fmt.Errorf("config: invalid spawn speed range [%d, %d]", c.Spawn.MinSpeed, c.Spawn.MaxSpeed)
	}
	for i, lvl := range c.Levels {
		for _, p := range lvl.Population {
			if p.Count < 0 {
				return fmt.Errorf("config: level %d (%s): negative count for %q", i, lvl.Name, p.Kind)
			}
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	// Aquarium dimensions default to screen size if not specified
	c.Derived.AquariumW = c.Aquarium.Width
	if c.Derived.AquariumW == 0 {
		c.Derived.AquariumW = c.Screen.Width
	}
	c.Derived.AquariumH = c.Aquarium.Height
	if c.Derived.AquariumH == 0 {
		c.Derived.AquariumH = c.Screen.Height
	}

	fps := c.Screen.TargetFPS
	if fps <= 0 {
		fps = 60
	}
	c.Derived.DT = 1.0 / float64(fps)

	if c.Sim.UpdateEvery < 1 {
		c.Sim.UpdateEvery = 1
	}
}

// Clone returns a deep copy of c, derived values included.
func (c *Config) Clone() (*Config, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	out := &Config{}
	if err := yaml.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("parsing config copy: %w", err)
	}
	out.computeDerived()
	return out, nil
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
