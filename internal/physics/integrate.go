package physics

import "github.com/san-kum/bouncesim/internal/dynamo"

// Integrate applies gravity, advances the position by one Euler step and
// reflects the body off the walls.
func Integrate(b *dynamo.Body, w dynamo.World, p dynamo.Params) {
	b.Vel.Y += p.Gravity * p.Dt
	b.Pos = b.Pos.Add(b.Vel.Scale(p.Dt))
	ClampToWalls(b, w, p.Restitution)
}

// ClampToWalls reflects b off every wall it penetrates. Each axis is handled
// on its own, so a corner hit flips both components in the same call. Only
// the floor loses energy. Applying it to a contained body is a no-op.
func ClampToWalls(b *dynamo.Body, w dynamo.World, restitution float64) {
	r := b.R()

	if b.Pos.X-r < 0 {
		b.Pos.X = r
		b.Vel.X = -b.Vel.X
	}
	if b.Pos.X+r > w.Width {
		b.Pos.X = w.Width - r
		b.Vel.X = -b.Vel.X
	}

	// floor
	if b.Pos.Y+r > w.Height {
		b.Pos.Y = w.Height - r
		b.Vel.Y = -b.Vel.Y * restitution
	}
	// ceiling
	if b.Pos.Y-r < 0 {
		b.Pos.Y = r
		b.Vel.Y = -b.Vel.Y
	}
}
