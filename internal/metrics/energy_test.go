package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

var world = dynamo.World{Width: 800, Height: 600}

func TestEnergyObserve(t *testing.T) {
	m := NewEnergy(0.5)

	bodies := []dynamo.Body{
		{Pos: dynamo.Vec2{X: 100, Y: 390}, Vel: dynamo.Vec2{X: 3, Y: 4}, Radius: 10},
	}
	m.Observe(bodies, world, 0)

	// ke = 0.5*25, pe = 0.5*(600-10-390)
	expected := 12.5 + 100.0
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyDrift(t *testing.T) {
	m := NewEnergyDrift(0)
	b := []dynamo.Body{{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 2}, Radius: 10}}

	m.Observe(b, world, 0)
	b[0].Vel.X = 1
	m.Observe(b, world, 1)
	b[0].Vel.X = 2
	m.Observe(b, world, 2)

	// 2 -> 0.5 is the worst case
	if math.Abs(m.Value()-0.75) > 1e-9 {
		t.Errorf("drift = %f, want 0.75", m.Value())
	}
}

func TestContainment(t *testing.T) {
	m := NewContainment()
	if m.Value() != 1 {
		t.Error("empty containment should be 1")
	}

	inside := []dynamo.Body{{Pos: dynamo.Vec2{X: 100, Y: 100}, Radius: 10}}
	outside := []dynamo.Body{{Pos: dynamo.Vec2{X: 5, Y: 100}, Radius: 10}}

	m.Observe(inside, world, 0)
	m.Observe(inside, world, 1)
	m.Observe(outside, world, 2)
	m.Observe(inside, world, 3)

	if m.Value() != 0.75 {
		t.Errorf("containment = %f, want 0.75", m.Value())
	}
}

func TestPenetrationAndContacts(t *testing.T) {
	p := NewPenetration()
	c := NewContacts()

	apart := []dynamo.Body{
		{Pos: dynamo.Vec2{X: 100, Y: 100}, Radius: 10},
		{Pos: dynamo.Vec2{X: 200, Y: 100}, Radius: 10},
	}
	overlapping := []dynamo.Body{
		{Pos: dynamo.Vec2{X: 100, Y: 100}, Radius: 10},
		{Pos: dynamo.Vec2{X: 117, Y: 100}, Radius: 10},
	}

	for _, frame := range [][]dynamo.Body{apart, overlapping, apart} {
		p.Observe(frame, world, 0)
		c.Observe(frame, world, 0)
	}

	if math.Abs(p.Value()-3) > 1e-9 {
		t.Errorf("penetration = %f, want 3", p.Value())
	}
	if c.Value() != 1 {
		t.Errorf("contacts = %f, want 1", c.Value())
	}
}

func TestDefaultsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults(0.5) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric name %s", m.Name())
		}
		seen[m.Name()] = true
	}
}
