// Package metrics computes conservation diagnostics for a body set.
//
// The drift metrics implement the simulator's observer hook, so they can be
// attached with AddObserver and read after a run:
//
//	drift := metrics.NewEnergyDrift(g, minDistance)
//	drift.Baseline(sys.Bodies())
//	s.AddObserver(drift)
//	s.Run(ctx, 10, 1.0/60)
//	fmt.Println(drift.Value())
package metrics
