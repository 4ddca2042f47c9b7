package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/springsim/internal/frame"
	"github.com/san-kum/springsim/internal/integrators"
	"github.com/san-kum/springsim/internal/keyframes"
	"github.com/san-kum/springsim/internal/spring"
	"github.com/san-kum/springsim/internal/trail"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFrom      = 0.0
	DefaultTo        = 100.0
	DefaultMaxFrames = 1200
	DefaultTrailLen  = 5
)

type Config struct {
	// Preset seeds Spring before the file's own spring fields are applied.
	Preset string        `yaml:"preset,omitempty"`
	Spring spring.Config `yaml:"spring"`

	Frame     FrameConfig          `yaml:"frame"`
	Trail     TrailConfig          `yaml:"trail"`
	Group     map[string]float64   `yaml:"group,omitempty"`
	Keyframes []keyframes.Keyframe `yaml:"keyframes,omitempty"`
	Run       RunConfig            `yaml:"run"`
}

type FrameConfig struct {
	// Interval is the nominal frame duration of the realtime clock.
	Interval time.Duration `yaml:"interval"`
}

type TrailConfig struct {
	Count       int  `yaml:"count"`
	FollowDelay int  `yaml:"follow_delay"`
	Debounce    bool `yaml:"debounce"`
}

type RunConfig struct {
	From      float64 `yaml:"from"`
	To        float64 `yaml:"to"`
	MaxFrames int     `yaml:"max_frames"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset: "default",
		Spring: spring.DefaultConfig(),
		Frame:  FrameConfig{Interval: frame.DefaultInterval},
		Trail: TrailConfig{
			Count:       DefaultTrailLen,
			FollowDelay: trail.DefaultFollowDelay,
		},
		Group: map[string]float64{"x": 0, "y": 0},
		Keyframes: []keyframes.Keyframe{
			{Value: 0},
			{Value: 100},
			{Value: 30},
			{Value: 60},
		},
		Run: RunConfig{From: DefaultFrom, To: DefaultTo, MaxFrames: DefaultMaxFrames},
	}
}

// Load reads a YAML config. Fields missing from the file keep their
// defaults; spring fields missing from the file come from the preset.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Preset string `yaml:"preset"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if head.Preset != "" {
		if err := cfg.ApplyPreset(head.Preset); err != nil {
			return nil, err
		}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyPreset replaces the spring parameters with the named preset. The
// integrator and rest thresholds are kept.
func (c *Config) ApplyPreset(name string) error {
	p, err := GetPreset(name)
	if err != nil {
		return err
	}
	c.Preset = name
	c.Spring.Stiffness = p.Stiffness
	c.Spring.Damping = p.Damping
	c.Spring.Mass = p.Mass
	return nil
}

// Validate rejects settings no component can run with and fills in zero
// values that have a sensible default.
func (c *Config) Validate() error {
	if _, err := integrators.ByName(c.Spring.Integrator); err != nil {
		return err
	}
	if c.Frame.Interval <= 0 {
		c.Frame.Interval = frame.DefaultInterval
	}
	if c.Trail.Count < 0 {
		return fmt.Errorf("trail count %d is negative", c.Trail.Count)
	}
	if c.Trail.FollowDelay < 0 {
		return fmt.Errorf("trail follow delay %d is negative", c.Trail.FollowDelay)
	}
	if c.Run.MaxFrames <= 0 {
		c.Run.MaxFrames = DefaultMaxFrames
	}
	return nil
}

// SpringConfig is the normalized spring config every component is built
// with.
func (c *Config) SpringConfig() spring.Config {
	return c.Spring.Normalize()
}

func (c *Config) TrailOptions() trail.Options {
	return trail.Options{
		FollowDelay: c.Trail.FollowDelay,
		Config:      c.SpringConfig(),
		Initial:     c.Run.From,
		Debounce:    c.Trail.Debounce,
	}
}

func (c *Config) KeyframeOptions() keyframes.Options {
	return keyframes.Options{Config: c.SpringConfig()}
}
