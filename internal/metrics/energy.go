package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// KineticEnergy sums ½mv² over valid bodies.
func KineticEnergy(bodies []*dynamo.Body) float64 {
	ke := 0.0
	for _, b := range bodies {
		if !b.Valid() {
			continue
		}
		v := b.Velocity()
		ke += 0.5 * b.Mass() * v.Dot(v)
	}
	return ke
}

// PotentialEnergy sums -G·mi·mj/r over pairs, with r clamped to minDistance.
// Inside minDistance this is a flat -G·mi·mj/minDistance, which is not the
// potential of the softened force the simulator applies there, so drift is
// only a conservation measure while every pair stays outside the radius.
func PotentialEnergy(bodies []*dynamo.Body, g, minDistance float64) float64 {
	pe := 0.0
	for i := 0; i < len(bodies); i++ {
		a := bodies[i]
		if !a.Valid() {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			if !b.Valid() {
				continue
			}
			r := b.Position().Sub(a.Position()).Len()
			r = math.Max(r, minDistance)
			pe -= g * a.Mass() * b.Mass() / r
		}
	}
	return pe
}

func TotalEnergy(bodies []*dynamo.Body, g, minDistance float64) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, g, minDistance)
}

func Momentum(bodies []*dynamo.Body) dynamo.Vec {
	var p dynamo.Vec
	for _, b := range bodies {
		if !b.Valid() {
			continue
		}
		p = p.Add(b.Velocity().Mul(b.Mass()))
	}
	return p
}

// CenterOfMass returns the zero vector for an empty set.
func CenterOfMass(bodies []*dynamo.Body) dynamo.Vec {
	var weighted dynamo.Vec
	total := 0.0
	for _, b := range bodies {
		if !b.Valid() {
			continue
		}
		weighted = weighted.Add(b.Position().Mul(b.Mass()))
		total += b.Mass()
	}
	if total == 0 {
		return dynamo.Vec{}
	}
	return weighted.Mul(1 / total)
}

// EnergyDrift tracks the largest relative change of total energy from the
// first observed step.
type EnergyDrift struct {
	name          string
	g             float64
	minDistance   float64
	initialEnergy float64
	currentEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(g, minDistance float64) *EnergyDrift {
	return &EnergyDrift{
		name:        "energy_drift",
		g:           g,
		minDistance: minDistance,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

// Baseline records the reference energy before the first step.
func (e *EnergyDrift) Baseline(bodies []*dynamo.Body) {
	e.Reset()
	e.initialEnergy = TotalEnergy(bodies, e.g, e.minDistance)
	e.currentEnergy = e.initialEnergy
	e.samples = 1
}

func (e *EnergyDrift) OnStep(step int, t float64, bodies []*dynamo.Body) {
	e.Observe(bodies)
}

func (e *EnergyDrift) Observe(bodies []*dynamo.Body) {
	energy := TotalEnergy(bodies, e.g, e.minDistance)

	if e.samples == 0 {
		e.initialEnergy = energy
	}

	e.currentEnergy = energy
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64   { return e.maxDrift }
func (e *EnergyDrift) Current() float64 { return e.currentEnergy }
func (e *EnergyDrift) Initial() float64 { return e.initialEnergy }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
