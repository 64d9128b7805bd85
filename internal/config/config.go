package config

import (
	"fmt"
	"os"
	"time"

	"github.com/san-kum/bouncesim/internal/dynamo"
	"github.com/san-kum/bouncesim/internal/starfield"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTicks      = 600
	DefaultStars      = 2000
	DefaultStarSpeed  = 20.0
	DefaultStarSpin   = 0.5
	DefaultFOV        = 90.0
	DefaultTheme      = "cyberpunk"
	DefaultBroadphase = "all"
)

type Config struct {
	World        WorldConfig     `yaml:"world"`
	Physics      PhysicsConfig   `yaml:"physics"`
	Spawn        SpawnConfig     `yaml:"spawn"`
	Bodies       int             `yaml:"bodies"`
	Seed         int64           `yaml:"seed"`
	Ticks        int             `yaml:"ticks"`
	FrameDelayMs int             `yaml:"frame_delay_ms"`
	Broadphase   string          `yaml:"broadphase"`
	CellSize     float64         `yaml:"cell_size"`
	Parallel     bool            `yaml:"parallel"`
	Theme        string          `yaml:"theme"`
	Starfield    StarfieldConfig `yaml:"starfield"`
}

type WorldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	Restitution float64 `yaml:"restitution"`
	Dt          float64 `yaml:"dt"`
}

type SpawnConfig struct {
	MinRadius int     `yaml:"min_radius"`
	MaxRadius int     `yaml:"max_radius"`
	MaxSpeed  float64 `yaml:"max_speed"`
}

type StarfieldConfig struct {
	Stars         int     `yaml:"stars"`
	Speed         float64 `yaml:"speed"`
	RotationSpeed float64 `yaml:"rotation_speed"`
	FOV           float64 `yaml:"fov"`
}

func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{Width: dynamo.DefaultWidth, Height: dynamo.DefaultHeight},
		Physics: PhysicsConfig{
			Gravity:     dynamo.DefaultGravity,
			Restitution: dynamo.DefaultRestitution,
			Dt:          dynamo.DefaultDt,
		},
		Spawn: SpawnConfig{
			MinRadius: dynamo.DefaultMinRadius,
			MaxRadius: dynamo.DefaultMaxRadius,
			MaxSpeed:  dynamo.DefaultMaxSpeed,
		},
		Bodies:       dynamo.DefaultBodies,
		Ticks:        DefaultTicks,
		FrameDelayMs: int(dynamo.DefaultFrameDelay / time.Millisecond),
		Broadphase:   DefaultBroadphase,
		Theme:        DefaultTheme,
		Starfield: StarfieldConfig{
			Stars:         DefaultStars,
			Speed:         DefaultStarSpeed,
			RotationSpeed: DefaultStarSpin,
			FOV:           DefaultFOV,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Clone returns a deep copy; presets are shared and must not be mutated.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// ToSim converts the file schema into a validated simulation config.
func (c *Config) ToSim() (dynamo.Config, error) {
	sc := dynamo.Config{
		World: dynamo.World{Width: c.World.Width, Height: c.World.Height},
		Params: dynamo.Params{
			Gravity:     c.Physics.Gravity,
			Restitution: c.Physics.Restitution,
			Dt:          c.Physics.Dt,
		},
		Spawn: dynamo.SpawnRange{
			MinRadius: c.Spawn.MinRadius,
			MaxRadius: c.Spawn.MaxRadius,
			MaxSpeed:  c.Spawn.MaxSpeed,
		},
		Bodies:     c.Bodies,
		Seed:       c.Seed,
		FrameDelay: time.Duration(c.FrameDelayMs) * time.Millisecond,
		Broadphase: c.Broadphase,
		CellSize:   c.CellSize,
		Parallel:   c.Parallel,
	}
	if err := sc.Validate(); err != nil {
		return dynamo.Config{}, err
	}
	return sc, nil
}

// ToStarfield builds the star-field config. The screen is the world
// rectangle; depth limits are fixed.
func (c *Config) ToStarfield() (starfield.Config, error) {
	sf := starfield.DefaultConfig()
	sf.Width = int(c.World.Width)
	sf.Height = int(c.World.Height)
	sf.Stars = c.Starfield.Stars
	sf.Speed = c.Starfield.Speed
	sf.RotationSpeed = c.Starfield.RotationSpeed
	sf.FOV = c.Starfield.FOV
	if err := sf.Validate(); err != nil {
		return starfield.Config{}, err
	}
	return sf, nil
}
