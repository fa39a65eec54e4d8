// Package dynamo provides core propagation primitives for rotational
// dynamics.
//
// The package defines the fundamental interfaces and types for numerical
// propagation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Integrator]: numerical integrator interface
//   - [Propagator]: orchestrates propagation runs
//
// # Example
//
//	dyn := physics.NewRotationalDynamics(body)
//	integ := integrators.NewRK4()
//	prop := dynamo.New(dyn, integ)
//	result, _ := prop.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Propagator instances are NOT thread-safe. For parallel runs, use the
// [Ensemble] type which safely manages multiple propagations.
package dynamo
