package dynamo

import (
	"context"
	"fmt"
	"math/rand"
)

// Engine advances a body list by one tick in place.
type Engine interface {
	Step(bodies []Body, w World, p Params)
}

// Simulator is the per-run simulation context. It exclusively owns the body
// list; renderers only ever see copies from Bodies.
type Simulator struct {
	cfg       Config
	engine    Engine
	bodies    []Body
	initial   []Body
	t         float64
	ticks     int
	metrics   []Metric
	observers []Observer
}

// New spawns cfg.Bodies bodies from rng and returns the simulator.
//
// Position is uniform over the world rectangle, each velocity component is
// uniform over [-MaxSpeed, MaxSpeed), the radius is a uniform integer in
// [MinRadius, MaxRadius] and the colour is uniform over the RGB cube.
func New(cfg Config, engine Engine, rng *rand.Rand) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}
	return newSimulator(cfg, engine, Spawn(cfg, rng)), nil
}

// NewWithBodies builds a simulator around a fixed body list.
func NewWithBodies(cfg Config, engine Engine, bodies []Body) (*Simulator, error) {
	if err := cfg.World.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}
	for i, b := range bodies {
		if b.Radius <= 0 {
			return nil, fmt.Errorf("body %d: %w", i, ErrInvalidRadius)
		}
	}
	cfg.Bodies = len(bodies)
	return newSimulator(cfg, engine, bodies), nil
}

func newSimulator(cfg Config, engine Engine, bodies []Body) *Simulator {
	owned := cloneBodies(bodies)
	return &Simulator{
		cfg:       cfg,
		engine:    engine,
		bodies:    owned,
		initial:   cloneBodies(owned),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

// Spawn samples the initial body list for cfg.
func Spawn(cfg Config, rng *rand.Rand) []Body {
	bodies := make([]Body, cfg.Bodies)
	span := cfg.Spawn.MaxRadius - cfg.Spawn.MinRadius + 1
	for i := range bodies {
		bodies[i] = Body{
			Pos: Vec2{
				X: rng.Float64() * cfg.World.Width,
				Y: rng.Float64() * cfg.World.Height,
			},
			Vel: Vec2{
				X: (rng.Float64()*2 - 1) * cfg.Spawn.MaxSpeed,
				Y: (rng.Float64()*2 - 1) * cfg.Spawn.MaxSpeed,
			},
			Radius: cfg.Spawn.MinRadius + rng.Intn(span),
			Color: RGB{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
			},
		}
	}
	return bodies
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Config() Config { return s.cfg }
func (s *Simulator) Engine() Engine { return s.engine }
func (s *Simulator) World() World   { return s.cfg.World }
func (s *Simulator) Time() float64  { return s.t }
func (s *Simulator) Ticks() int     { return s.ticks }

// Bodies returns a copy of the current body list.
func (s *Simulator) Bodies() []Body { return cloneBodies(s.bodies) }

// Step advances the run by one tick.
func (s *Simulator) Step() {
	s.engine.Step(s.bodies, s.cfg.World, s.cfg.Params)
	s.t += s.cfg.Params.Dt
	s.ticks++
}

// Reset restores the bodies spawned at construction.
func (s *Simulator) Reset() {
	s.bodies = cloneBodies(s.initial)
	s.t = 0
	s.ticks = 0
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Run advances the simulation headless for steps ticks, recording every
// frame. Cancellation is checked once per tick.
func (s *Simulator) Run(ctx context.Context, steps int) (*Result, error) {
	if steps <= 0 {
		return nil, fmt.Errorf("steps must be positive, got %d", steps)
	}

	result := &Result{
		Frames:  make([][]Body, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Frames = append(result.Frames, s.Bodies())
	result.Times = append(result.Times, s.t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		s.Step()

		for _, m := range s.metrics {
			m.Observe(s.bodies, s.cfg.World, s.t)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.bodies, s.t)
		}

		result.StepsTaken++
		result.Frames = append(result.Frames, s.Bodies())
		result.Times = append(result.Times, s.t)
	}

	s.collect(result)
	return result, nil
}

func (s *Simulator) collect(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func cloneBodies(src []Body) []Body {
	c := make([]Body, len(src))
	copy(c, src)
	return c
}
