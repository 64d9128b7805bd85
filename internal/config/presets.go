package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"crowded": func() *Config {
		c := DefaultConfig()
		c.Bodies = 60
		c.Spawn = SpawnConfig{MinRadius: 6, MaxRadius: 12, MaxSpeed: 3}
		c.Broadphase = "grid"
		return c
	}(),
	"moon": func() *Config {
		c := DefaultConfig()
		c.Physics.Gravity = 0.08
		c.Physics.Restitution = 0.95
		return c
	}(),
	"pool": func() *Config {
		c := DefaultConfig()
		c.Bodies = 16
		c.Physics.Gravity = 0
		c.Spawn = SpawnConfig{MinRadius: 12, MaxRadius: 12, MaxSpeed: 4}
		return c
	}(),
	"zero_g": func() *Config {
		c := DefaultConfig()
		c.Physics.Gravity = 0
		c.Spawn.MaxSpeed = 2
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
