package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// MomentumDrift tracks the largest magnitude of change in total linear
// momentum. Pairwise forces cancel exactly, so this stays at rounding level.
type MomentumDrift struct {
	name     string
	initial  dynamo.Vec
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Baseline(bodies []*dynamo.Body) {
	m.Reset()
	m.initial = Momentum(bodies)
	m.samples = 1
}

func (m *MomentumDrift) OnStep(step int, t float64, bodies []*dynamo.Body) {
	m.Observe(bodies)
}

func (m *MomentumDrift) Observe(bodies []*dynamo.Body) {
	p := Momentum(bodies)
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++
	m.maxDrift = math.Max(m.maxDrift, p.Sub(m.initial).Len())
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = dynamo.Vec{}
	m.maxDrift = 0
	m.samples = 0
}
