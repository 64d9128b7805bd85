package physics

import "github.com/san-kum/bouncesim/internal/dynamo"

// ResolvePair separates two interpenetrating bodies and exchanges their
// velocity along the contact normal. It reports whether a correction was
// applied.
//
// Touching bodies (distance equal to the radius sum) are left alone, and so
// are bodies with coincident centres since they have no normal.
func ResolvePair(a, b *dynamo.Body) bool {
	d := b.Pos.Sub(a.Pos)
	dist := d.Len()
	sum := a.R() + b.R()
	if dist <= 0 || dist >= sum {
		return false
	}

	n := d.Scale(1 / dist)
	overlap := sum - dist

	a.Pos = a.Pos.Sub(n.Scale(0.5 * overlap))
	b.Pos = b.Pos.Add(n.Scale(0.5 * overlap))

	// equal-mass unit impulse
	k := a.Vel.Sub(b.Vel)
	p := n.Dot(k)
	a.Vel = a.Vel.Sub(n.Scale(p))
	b.Vel = b.Vel.Add(n.Scale(p))

	return true
}

// ResolveCollisions makes one pass over the candidate pairs from bp and
// returns how many pairs were corrected.
func ResolveCollisions(bodies []dynamo.Body, bp Broadphase) int {
	if bp == nil {
		bp = AllPairs{}
	}
	resolved := 0
	bp.Pairs(bodies, func(i, j int) {
		if ResolvePair(&bodies[i], &bodies[j]) {
			resolved++
		}
	})
	return resolved
}

// Overlap returns the penetration depth of two bodies, or 0 if they do not
// overlap.
func Overlap(a, b dynamo.Body) float64 {
	o := a.R() + b.R() - b.Pos.Sub(a.Pos).Len()
	if o < 0 {
		return 0
	}
	return o
}

// MaxPenetration returns the deepest pairwise overlap in bodies.
func MaxPenetration(bodies []dynamo.Body) float64 {
	deepest := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if o := Overlap(bodies[i], bodies[j]); o > deepest {
				deepest = o
			}
		}
	}
	return deepest
}
