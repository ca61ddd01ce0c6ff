package analysis

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

// LyapunovExponent estimates the largest Lyapunov exponent of a body set by
// following a copy whose first body is displaced by perturbation along x.
// The separation in position/velocity space is renormalised back to
// perturbation after every step. A clearly positive value indicates chaos.
// The input bodies are not modified.
func LyapunovExponent(bodies []*dynamo.Body, cfg sim.Config, dt, duration, perturbation float64) float64 {
	if len(bodies) == 0 || perturbation <= 0 || dt <= 0 {
		return 0
	}

	ref := dynamo.CloneAll(bodies)
	pert := dynamo.CloneAll(bodies)
	if pert[0] == nil {
		return 0
	}
	pert[0].SetPosition(pert[0].Position().Add(dynamo.Vec{perturbation, 0, 0}))

	a := sim.New(cfg)
	a.Initialize(sim.Bodies(ref), dt)
	b := sim.New(cfg)
	b.Initialize(sim.Bodies(pert), dt)
	if !a.IsInitialized() || !b.IsInitialized() {
		return 0
	}

	steps := int(math.Round(duration / a.TimeStep()))
	sumLog := 0.0
	count := 0

	for i := 0; i < steps; i++ {
		_ = a.Step()
		_ = b.Step()

		sep := separation(ref, pert)
		if sep == 0 {
			continue
		}
		sumLog += math.Log(sep / perturbation)
		count++
		renormalize(ref, pert, perturbation/sep)
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * a.TimeStep())
}

func separation(ref, pert []*dynamo.Body) float64 {
	sum := 0.0
	for i := range ref {
		if ref[i] == nil || pert[i] == nil {
			continue
		}
		dp := pert[i].Position().Sub(ref[i].Position())
		dv := pert[i].Velocity().Sub(ref[i].Velocity())
		sum += dp.Dot(dp) + dv.Dot(dv)
	}
	return math.Sqrt(sum)
}

func renormalize(ref, pert []*dynamo.Body, scale float64) {
	for i := range ref {
		if ref[i] == nil || pert[i] == nil {
			continue
		}
		dp := pert[i].Position().Sub(ref[i].Position())
		dv := pert[i].Velocity().Sub(ref[i].Velocity())
		pert[i].SetPosition(ref[i].Position().Add(dp.Mul(scale)))
		pert[i].SetVelocity(ref[i].Velocity().Add(dv.Mul(scale)))
	}
}
