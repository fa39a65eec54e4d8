// Package physics models the rigid bodies and torques whose rotational
// equations of motion the estimation framework differentiates. A
// [RigidBody] derives its inertia tensor from its degree-2 gravity field
// and exposes the evaluator closures the torque partials consume;
// [RotationalDynamics] is the propagated ODE system (quaternion kinematics
// plus Euler's equation).
package physics
