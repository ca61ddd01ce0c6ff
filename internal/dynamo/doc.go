// Package dynamo provides the core primitives shared by the gravity simulator.
//
// The package defines the point-mass record and the error taxonomy used
// across the repository:
//
//   - [Body]: named point mass with position and velocity
//   - [Vec]: 3-vector used for positions, velocities and accelerations
//   - [Fingerprint]: hash of a body set's kinematic state
//
// # Ownership
//
// Bodies are owned by whoever created them, usually a [system.SolarSystem].
// The simulator only borrows them for the duration of a tick and writes
// velocity and position back in place.
//
// # Validation
//
// A body with non-positive mass would divide by zero inside the force law,
// so [NewBody] and [Body.SetMass] reject it with [ErrInvalidMass]:
//
//	b, err := dynamo.NewBody("earth", 5.97, 1, dynamo.Vec{100, 0, 0}, dynamo.Vec{})
//	if errors.Is(err, dynamo.ErrInvalidMass) {
//	    // refuse the scenario
//	}
package dynamo
