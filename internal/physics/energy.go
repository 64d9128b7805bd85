package physics

import "github.com/san-kum/bouncesim/internal/dynamo"

// Every body has unit mass; the pair response assumes it too.

func KineticEnergy(bodies []dynamo.Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		ke += 0.5 * b.Vel.Dot(b.Vel)
	}
	return ke
}

// PotentialEnergy is measured from the floor, which sits at y = Height.
func PotentialEnergy(bodies []dynamo.Body, w dynamo.World, gravity float64) float64 {
	pe := 0.0
	for _, b := range bodies {
		pe += gravity * (w.Height - b.R() - b.Pos.Y)
	}
	return pe
}

func Momentum(bodies []dynamo.Body) dynamo.Vec2 {
	var p dynamo.Vec2
	for _, b := range bodies {
		p = p.Add(b.Vel)
	}
	return p
}

// Contained reports whether every body lies inside w.
func Contained(bodies []dynamo.Body, w dynamo.World) bool {
	for _, b := range bodies {
		if !w.Contains(b) {
			return false
		}
	}
	return true
}
