// Package physics implements the per-tick body physics.
//
// A tick runs in two phases:
//
//   - [Integrate]: gravity, Euler integration and wall reflection, per body
//   - [ResolveCollisions]: one pass over candidate pairs from a [Broadphase],
//     pushing overlapping bodies apart and exchanging velocity along the
//     contact normal
//
// [Engine] bundles both phases and implements [dynamo.Engine].
//
// # Pair Response
//
// The velocity response assumes equal masses and a unit impulse along the
// normal. Pairs are visited once per tick with no iteration to convergence,
// so crowded ticks can leave residual overlap that later ticks remove.
//
//	e := physics.NewEngine(physics.AllPairs{}, false)
//	e.Step(bodies, world, params)
package physics
