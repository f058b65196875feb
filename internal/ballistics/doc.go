// Package ballistics provides the closed-form trajectory model of a point-mass
// projectile under constant acceleration.
//
// The package is organized around a single immutable value:
//
//   - [Projectile]: initial height, launch speed, launch angle and mass
//   - [Sample]: one (t, x, y) triple of a sampled trajectory
//   - [Path]: a materialized trajectory as three parallel sequences
//   - [Cache]: explicit memoization of derived quantities per acceleration
//
// Accelerations are supplied per call. Downward gravity is negative by
// convention, so Earth is -9.81.
//
// # Example
//
//	p := ballistics.New(0, 30, 45, 10)
//	h, _ := p.MaxHeight(-9.81)
//	path, _ := p.GeneratePath(-9.81, 0, 10, ballistics.PathConfig{ConditionalStop: true})
//
// # Thread Safety
//
// Projectile is a value and safe to share. Cache is NOT thread-safe.
package ballistics
