// Package dynamo provides the simulation primitives for the linear test
// equation dy/dt = a*y.
//
//   - [Stepper]: one fixed-size step of a time integrator
//   - [Simulate]: N-step trajectory on the half-open grid [0, T)
//   - [SampleTimes], [Exact]: the closed-form reference on the same grid
//   - [MaxAbsError]: the error norm used by the convergence study
//
// # Example
//
//	y, _ := dynamo.Simulate(1.0, 64, 1.0, -100.0, integrators.NewCrankNicolson())
//	x := dynamo.Exact(1.0, -100.0, dynamo.SampleTimes(1.0, 64))
//	e, _ := dynamo.MaxAbsError(y, x)
//
// Grids never include the end time T. Sample i sits at i*T/N and the last
// sample is T - T/N.
package dynamo
