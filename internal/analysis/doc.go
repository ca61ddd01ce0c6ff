// Package analysis provides trajectory diagnostics for body sets.
//
//   - [DominantPeriod]: strongest orbital period of a sampled coordinate
//   - [LyapunovExponent]: divergence rate of two nearby body sets
//   - [Sweep]: distances a body visits as G or the softening radius varies
//   - [ToASCII]: x/y orbit portrait on a character grid
//
// # Chaos Detection
//
// A clearly positive exponent means nearby initial conditions separate
// exponentially:
//
//	lambda := analysis.LyapunovExponent(sys.Bodies(), cfg.SimConfig(), cfg.Dt, 500, 1e-6)
//	if lambda > 0.01 {
//	    // orbit is chaotic
//	}
package analysis
