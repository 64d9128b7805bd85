// Package dynamo provides core simulation primitives for the bouncing-body
// world.
//
// The package defines the fundamental types and the per-run simulation
// context:
//
//   - [Vec2]: 2D real-valued vector
//   - [Body]: circular particle with position, velocity, radius and colour
//   - [World]: the fixed rectangle bodies live in
//   - [Simulator]: owns the body list for one run and steps it through an [Engine]
//   - [Loop]: the per-frame pipeline (quit check, step, render, present, delay)
//
// # Example
//
//	cfg := dynamo.DefaultConfig()
//	engine := physics.NewEngine(physics.AllPairs{}, false)
//	s, _ := dynamo.New(cfg, engine, rand.New(rand.NewSource(42)))
//	for i := 0; i < 100; i++ {
//	    s.Step()
//	}
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel runs over many
// seeds, use the [Ensemble] type which gives every run its own Simulator.
package dynamo
