// Package starfield is a perspective star-field flythrough: stars stream
// towards the viewer while the field spins about the view axis.
package starfield

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var ErrInvalidConfig = errors.New("starfield: invalid config")

type Star struct {
	X, Y, Z float64
}

type Config struct {
	Width, Height int
	Stars         int
	NearZ, FarZ   float64
	Speed         float64 // depth units per second
	RotationSpeed float64 // radians per second
	FOV           float64 // horizontal, degrees
}

func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        600,
		Stars:         2000,
		NearZ:         0.1,
		FarZ:          100,
		Speed:         20,
		RotationSpeed: 0.5,
		FOV:           90,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Stars <= 0:
		return fmt.Errorf("%w: need at least one star", ErrInvalidConfig)
	case c.NearZ <= 0 || c.FarZ <= c.NearZ:
		return fmt.Errorf("%w: depth range [%g, %g]", ErrInvalidConfig, c.NearZ, c.FarZ)
	case c.FOV <= 0 || c.FOV >= 180:
		return fmt.Errorf("%w: fov %g", ErrInvalidConfig, c.FOV)
	}
	return nil
}

// Point is a projected star in screen pixels.
type Point struct {
	X, Y       int
	Size       int
	Brightness float64
}

// Gray is the 0..255 intensity for the point's brightness.
func (p Point) Gray() uint8 { return uint8(p.Brightness * 255) }

type Field struct {
	cfg   Config
	rng   *rand.Rand
	stars []Star
	scale float64
}

func New(cfg Config, rng *rand.Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	f := &Field{
		cfg:   cfg,
		rng:   rng,
		stars: make([]Star, cfg.Stars),
		scale: float64(cfg.Width) / 2 / math.Tan(cfg.FOV*0.5*math.Pi/180),
	}
	for i := range f.stars {
		f.stars[i] = Star{
			X: f.spread(cfg.Width),
			Y: f.spread(cfg.Height),
			Z: cfg.NearZ + rng.Float64()*(cfg.FarZ-cfg.NearZ),
		}
	}
	return f, nil
}

// spread samples uniformly in [-extent, extent).
func (f *Field) spread(extent int) float64 {
	return (f.rng.Float64() - 0.5) * 2 * float64(extent)
}

func (f *Field) Config() Config { return f.cfg }

func (f *Field) Stars() []Star {
	out := make([]Star, len(f.stars))
	copy(out, f.stars)
	return out
}

// Update advances every star by dt seconds. Stars that pass the near plane
// respawn at the far plane with fresh x and y.
func (f *Field) Update(dt float64) {
	angle := f.cfg.RotationSpeed * dt
	cosA, sinA := math.Cos(angle), math.Sin(angle)

	for i := range f.stars {
		s := &f.stars[i]
		s.Z -= f.cfg.Speed * dt
		if s.Z <= f.cfg.NearZ {
			s.X = f.spread(f.cfg.Width)
			s.Y = f.spread(f.cfg.Height)
			s.Z = f.cfg.FarZ
		}
		s.X, s.Y = s.X*cosA-s.Y*sinA, s.X*sinA+s.Y*cosA
	}
}

// Project returns the on-screen stars. Off-screen stars are dropped.
func (f *Field) Project() []Point {
	w, h := float64(f.cfg.Width), float64(f.cfg.Height)
	out := make([]Point, 0, len(f.stars))

	for _, s := range f.stars {
		p, ok := project(s, f.scale, w, h)
		if ok {
			out = append(out, p)
		}
	}
	return out
}

func project(s Star, scale, w, h float64) (Point, bool) {
	px := s.X/s.Z*scale + w/2
	py := s.Y/s.Z*scale + h/2
	if px < 0 || px >= w || py < 0 || py >= h {
		return Point{}, false
	}

	brightness := math.Min(1, 1/(s.Z*0.05))
	size := int(3 / s.Z * 50)
	size = max(1, min(4, size))

	return Point{X: int(px), Y: int(py), Size: size, Brightness: brightness}, true
}
