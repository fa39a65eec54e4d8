// Package partials computes analytic Jacobian blocks of rotational-dynamics
// torque models for use inside an orbit-determination filter.
//
// Every torque model gets one partial object implementing [TorquePartial]:
//
//   - Update caches all intermediate quantities for one simulation time
//   - AddOrientationPartial / AddAngularVelocityPartial write 3x3 state
//     sensitivity blocks into a caller-owned matrix
//   - ScalarParameterPartial / VectorParameterPartial return a
//     [ParameterPartial] binding for an estimation parameter descriptor,
//     with Columns == 0 as the structural "no dependency" answer
//
// # Example
//
//	p := partials.NewInertialTorquePartial("phobos",
//	        body.AngularVelocity, body.InertiaTensor,
//	        body.NormalizationFactor, body.GravitationalParameter)
//	p.Update(t)
//	p.AddAngularVelocityPartial(jacobian, true, 3, 3)
//
// # Thread Safety
//
// A partial object has no internal synchronization: Update and the write
// methods on one object must be serialized by the caller. Distinct partial
// objects are independent and may be driven from different goroutines.
package partials
