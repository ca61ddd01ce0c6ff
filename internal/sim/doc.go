// Package sim is the fixed-timestep N-body gravity simulator.
//
// A driver, typically a render loop, calls [Simulator.Tick] once per frame
// with the elapsed wall time. The simulator turns that into zero or more
// fixed steps, so the trajectory depends only on the step size and the
// number of steps, never on frame cadence:
//
//	s := sim.New(sim.DefaultConfig())
//	s.Initialize(solarSystem, 1.0/120)
//	s.Start()
//	for frame := range frames {
//	    s.Tick(frame.Delta)
//	    draw(solarSystem.Bodies())
//	}
//
// # Step
//
// One step computes softened pairwise Newtonian accelerations into a scratch
// buffer, then integrates with semi-implicit Euler (velocity first, position
// from the new velocity).
//
// # Lifecycle
//
//	Uninitialized -> Initialized -> Running <-> Paused -> Stopped
//
// Lifecycle calls never fail loudly: Start before a successful Initialize is
// a no-op, and callers poll IsInitialized and IsRunning.
//
// # Thread Safety
//
// Simulator is single-threaded. The body source must not gain or lose bodies
// while a Tick is in progress. For independent parallel runs use [Ensemble],
// which gives every member its own copy of the bodies.
package sim
