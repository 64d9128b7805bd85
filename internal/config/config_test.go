package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Bodies != 10 {
		t.Errorf("expected 10 bodies, got %d", cfg.Bodies)
	}
	if cfg.Physics.Restitution >= 1 {
		t.Error("restitution should be below 1")
	}

	sc, err := cfg.ToSim()
	if err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if sc.FrameDelay != 16*time.Millisecond {
		t.Errorf("frame delay = %v", sc.FrameDelay)
	}
	if sc != dynamo.DefaultConfig() {
		t.Errorf("default file config does not match dynamo defaults:\n%+v\n%+v", sc, dynamo.DefaultConfig())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")
	data := []byte("bodies: 4\nphysics:\n  gravity: 0.25\nworld:\n  width: 640\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Bodies != 4 || cfg.Physics.Gravity != 0.25 || cfg.World.Width != 640 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.World.Height != dynamo.DefaultHeight || cfg.Physics.Restitution != dynamo.DefaultRestitution {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := GetPreset("crowded")
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

func TestLoadInvalid(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("bodies: [1, 2"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestToSimRejectsBadPhysics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Physics.Restitution = 1.2
	if _, err := cfg.ToSim(); !errors.Is(err, dynamo.ErrInvalidParams) {
		t.Errorf("err = %v, want ErrInvalidParams", err)
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("listed %d presets, have %d", len(names), len(Presets))
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if _, err := cfg.ToSim(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("moon")
	a.Bodies = 999
	if GetPreset("moon").Bodies == 999 {
		t.Error("preset was mutated through returned copy")
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestToStarfield(t *testing.T) {
	cfg := DefaultConfig()
	sf, err := cfg.ToStarfield()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sf.Width != 800 || sf.Height != 600 || sf.Stars != DefaultStars {
		t.Errorf("unexpected starfield config %+v", sf)
	}

	cfg.Starfield.Stars = 0
	if _, err := cfg.ToStarfield(); err == nil {
		t.Error("expected error for an empty star field")
	}
}
