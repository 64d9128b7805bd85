package physics

import (
	"math"
	"testing"

	"github.com/san-kum/bouncesim/internal/dynamo"
)

func TestResolvePairHeadOn(t *testing.T) {
	a := dynamo.Body{Pos: dynamo.Vec2{X: 0}, Vel: dynamo.Vec2{X: 2}, Radius: 10}
	b := dynamo.Body{Pos: dynamo.Vec2{X: 19}, Vel: dynamo.Vec2{X: -2}, Radius: 10}

	if !ResolvePair(&a, &b) {
		t.Fatal("expected overlapping pair to be resolved")
	}

	if !closeVec(a.Vel, dynamo.Vec2{X: -2}) || !closeVec(b.Vel, dynamo.Vec2{X: 2}) {
		t.Errorf("velocities = %v, %v; want (-2,0), (2,0)", a.Vel, b.Vel)
	}
	if d := b.Pos.Sub(a.Pos).Len(); math.Abs(d-20) > 1e-9 {
		t.Errorf("distance after correction = %f, want 20", d)
	}
}

func TestResolvePairNoContact(t *testing.T) {
	tests := []struct {
		name string
		a, b dynamo.Body
	}{
		{
			"touching",
			dynamo.Body{Pos: dynamo.Vec2{X: 0}, Vel: dynamo.Vec2{X: 2}, Radius: 10},
			dynamo.Body{Pos: dynamo.Vec2{X: 20}, Vel: dynamo.Vec2{X: -2}, Radius: 10},
		},
		{
			"apart",
			dynamo.Body{Pos: dynamo.Vec2{X: 0}, Radius: 10},
			dynamo.Body{Pos: dynamo.Vec2{X: 50, Y: 50}, Radius: 15},
		},
		{
			"coincident",
			dynamo.Body{Pos: dynamo.Vec2{X: 50, Y: 50}, Vel: dynamo.Vec2{X: 1}, Radius: 10},
			dynamo.Body{Pos: dynamo.Vec2{X: 50, Y: 50}, Vel: dynamo.Vec2{Y: 1}, Radius: 12},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := tt.a, tt.b
			if ResolvePair(&a, &b) {
				t.Error("expected no correction")
			}
			if a != tt.a || b != tt.b {
				t.Errorf("bodies changed: %+v %+v", a, b)
			}
		})
	}
}

func TestResolvePairDiagonal(t *testing.T) {
	a := dynamo.Body{Pos: dynamo.Vec2{X: 100, Y: 100}, Vel: dynamo.Vec2{X: 1, Y: 1}, Radius: 10}
	b := dynamo.Body{Pos: dynamo.Vec2{X: 110, Y: 110}, Radius: 10}

	before := Momentum([]dynamo.Body{a, b})
	ResolvePair(&a, &b)
	after := Momentum([]dynamo.Body{a, b})

	if !closeVec(before, after) {
		t.Errorf("momentum changed: %v -> %v", before, after)
	}
	if d := b.Pos.Sub(a.Pos).Len(); math.Abs(d-20) > 1e-9 {
		t.Errorf("distance after correction = %f, want 20", d)
	}
	// a moved straight into b, so all of its velocity transfers
	if !closeVec(a.Vel, dynamo.Vec2{}) || !closeVec(b.Vel, dynamo.Vec2{X: 1, Y: 1}) {
		t.Errorf("velocities = %v, %v", a.Vel, b.Vel)
	}
}

func TestResolveCollisionsSinglePass(t *testing.T) {
	// three bodies in a row: resolving (0,1) pushes 1 deeper into 2, and
	// (1,2) is then resolved in the same pass; (0,2) never touches
	bodies := []dynamo.Body{
		{Pos: dynamo.Vec2{X: 100, Y: 100}, Radius: 10},
		{Pos: dynamo.Vec2{X: 118, Y: 100}, Radius: 10},
		{Pos: dynamo.Vec2{X: 136, Y: 100}, Radius: 10},
	}

	if n := ResolveCollisions(bodies, AllPairs{}); n != 2 {
		t.Fatalf("resolved %d pairs, want 2", n)
	}
	// (0,1) left a gap of exactly 20; (1,2) then pushed 1 back into 0
	if o := Overlap(bodies[0], bodies[1]); o <= 0 {
		t.Errorf("expected residual overlap between 0 and 1, got %f", o)
	}
	if o := Overlap(bodies[1], bodies[2]); o > 1e-9 {
		t.Errorf("pair (1,2) still overlaps by %f", o)
	}
}

func TestMaxPenetration(t *testing.T) {
	bodies := []dynamo.Body{
		{Pos: dynamo.Vec2{X: 0}, Radius: 10},
		{Pos: dynamo.Vec2{X: 15}, Radius: 10},
		{Pos: dynamo.Vec2{X: 100}, Radius: 10},
	}
	if got := MaxPenetration(bodies); math.Abs(got-5) > 1e-9 {
		t.Errorf("MaxPenetration = %f, want 5", got)
	}
}
