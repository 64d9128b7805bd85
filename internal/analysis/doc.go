// Package analysis provides spectral tools for recorded runs.
//
// A bouncing body's height is close to periodic once the restitution has
// bled off most of the energy. [DominantFrequency] picks that period out of
// the height series:
//
//	f := analysis.DominantFrequency(heights, dt)
//	period := 1 / f
package analysis
