package dynamo

import (
	"fmt"
	"math"
	"time"
)

type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

// RGB is a body colour. It is assigned when the body is created and never
// changed afterwards.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

type Body struct {
	Pos    Vec2
	Vel    Vec2
	Radius int
	Color  RGB
}

// NewBody returns a body after checking its radius.
func NewBody(pos, vel Vec2, radius int, color RGB) (Body, error) {
	if radius <= 0 {
		return Body{}, fmt.Errorf("%w: got %d", ErrInvalidRadius, radius)
	}
	return Body{Pos: pos, Vel: vel, Radius: radius, Color: color}, nil
}

func (b Body) R() float64 { return float64(b.Radius) }

// World is the rectangle [0, Width] x [0, Height]. Y grows downwards, so the
// floor is at y = Height.
type World struct {
	Width, Height float64
}

func (w World) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w: %.1fx%.1f", ErrInvalidWorld, w.Width, w.Height)
	}
	return nil
}

// Contains reports whether the body's disk lies fully inside the world.
func (w World) Contains(b Body) bool {
	r := b.R()
	return b.Pos.X >= r && b.Pos.X <= w.Width-r && b.Pos.Y >= r && b.Pos.Y <= w.Height-r
}

// Params are the physics constants of a run. They are fixed once the run
// starts.
type Params struct {
	Gravity     float64
	Restitution float64
	Dt          float64
}

func (p Params) Validate() error {
	if p.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidParams, p.Dt)
	}
	if p.Restitution < 0 || p.Restitution >= 1 {
		return fmt.Errorf("%w: restitution must be in [0, 1), got %f", ErrInvalidParams, p.Restitution)
	}
	if math.IsNaN(p.Gravity) || math.IsInf(p.Gravity, 0) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidParams)
	}
	return nil
}

// SpawnRange bounds the random initial conditions.
type SpawnRange struct {
	MinRadius int
	MaxRadius int
	MaxSpeed  float64
}

func (s SpawnRange) Validate() error {
	if s.MinRadius <= 0 || s.MaxRadius < s.MinRadius {
		return fmt.Errorf("%w: radius range [%d, %d]", ErrInvalidRadius, s.MinRadius, s.MaxRadius)
	}
	if s.MaxSpeed < 0 {
		return fmt.Errorf("%w: max speed must be non-negative", ErrInvalidParams)
	}
	return nil
}

type Metric interface {
	Name() string
	Observe(bodies []Body, w World, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(bodies []Body, t float64)
}

// Renderer is the drawing surface the frame loop paints into.
type Renderer interface {
	Clear()
	DrawDisk(center Vec2, radius int, color RGB)
	Present() error
}

// QuitPoller reports whether the operator asked to stop.
type QuitPoller interface {
	ShouldQuit() bool
}

type Config struct {
	World      World
	Params     Params
	Spawn      SpawnRange
	Bodies     int
	Seed       int64
	FrameDelay time.Duration
	Broadphase string
	CellSize   float64
	Parallel   bool
}

const (
	DefaultWidth       = 800
	DefaultHeight      = 600
	DefaultBodies      = 10
	DefaultGravity     = 0.5
	DefaultRestitution = 0.8
	DefaultDt          = 1.0
	DefaultMinRadius   = 10
	DefaultMaxRadius   = 19
	DefaultMaxSpeed    = 1.0
	DefaultFrameDelay  = 16 * time.Millisecond
)

func DefaultConfig() Config {
	return Config{
		World: World{Width: DefaultWidth, Height: DefaultHeight},
		Params: Params{
			Gravity:     DefaultGravity,
			Restitution: DefaultRestitution,
			Dt:          DefaultDt,
		},
		Spawn: SpawnRange{
			MinRadius: DefaultMinRadius,
			MaxRadius: DefaultMaxRadius,
			MaxSpeed:  DefaultMaxSpeed,
		},
		Bodies:     DefaultBodies,
		FrameDelay: DefaultFrameDelay,
		Broadphase: "all",
	}
}

func (c Config) Validate() error {
	if err := c.World.Validate(); err != nil {
		return err
	}
	if err := c.Params.Validate(); err != nil {
		return err
	}
	if c.Bodies <= 0 {
		return fmt.Errorf("%w: got %d", ErrNoBodies, c.Bodies)
	}
	return c.Spawn.Validate()
}

type Result struct {
	Frames     [][]Body
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}
