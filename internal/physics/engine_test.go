package physics

import (
	"math/rand"
	"testing"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

func TestEngineVariantsMatchSerialScan(t *testing.T) {
	dense := dynamo.DefaultConfig()
	dense.Bodies = 300
	dense.Spawn.MinRadius, dense.Spawn.MaxRadius = 3, 6

	crowded := dynamo.DefaultConfig()
	crowded.Bodies = 400
	crowded.Spawn.MaxSpeed = 3

	engines := []struct {
		name   string
		engine func() *Engine
	}{
		{"parallel", func() *Engine { return NewEngine(AllPairs{}, true) }},
		{"grid", func() *Engine { return NewEngine(NewUniformGrid(0), false) }},
		{"grid wide cells", func() *Engine { return NewEngine(NewUniformGrid(100), false) }},
		{"grid parallel", func() *Engine { return NewEngine(NewUniformGrid(0), true) }},
	}

	worlds := []struct {
		name string
		cfg  dynamo.Config
		seed int64
	}{
		{"small bodies", dense, 9},
		{"crowded", crowded, 4},
	}

	for _, w := range worlds {
		for _, e := range engines {
			t.Run(w.name+"/"+e.name, func(t *testing.T) {
				spawn := dynamo.Spawn(w.cfg, rand.New(rand.NewSource(w.seed)))
				want := append([]dynamo.Body(nil), spawn...)
				got := append([]dynamo.Body(nil), spawn...)

				serial := NewEngine(AllPairs{}, false)
				other := e.engine()
				corrected := 0

				for tick := 0; tick < 500; tick++ {
					serial.Step(want, w.cfg.World, w.cfg.Params)
					other.Step(got, w.cfg.World, w.cfg.Params)

					if serial.Resolved() != other.Resolved() {
						t.Fatalf("tick %d: resolved %d pairs, serial scan resolved %d",
							tick, other.Resolved(), serial.Resolved())
					}
					corrected += serial.Resolved()
					for i := range want {
						if got[i] != want[i] {
							t.Fatalf("tick %d body %d: got %+v, want %+v", tick, i, got[i], want[i])
						}
					}
				}

				if corrected == 0 {
					t.Error("no collisions happened; the comparison proves nothing")
				}
			})
		}
	}
}

func TestEngineFromConfig(t *testing.T) {
	cfg := dynamo.DefaultConfig()

	cfg.Broadphase = "grid"
	e, err := NewEngineFromConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := e.Broadphase.(*UniformGrid); !ok {
		t.Errorf("broadphase = %T, want *UniformGrid", e.Broadphase)
	}

	cfg.Broadphase = "octree"
	if _, err := NewEngineFromConfig(cfg); err == nil {
		t.Error("expected error for unknown broadphase")
	}
}
