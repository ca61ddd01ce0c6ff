package sim

import (
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
)

// MinTimeStep is the smallest fixed step the simulator accepts. Anything
// smaller would make Tick spin for an unbounded number of iterations.
const MinTimeStep = 1e-8

// BodySource is anything that can lend the simulator an ordered body list.
// *system.SolarSystem satisfies it.
type BodySource interface {
	Bodies() []*dynamo.Body
}

// Bodies is a BodySource over a plain slice, used by SetBodies.
type Bodies []*dynamo.Body

func (b Bodies) Bodies() []*dynamo.Body { return b }

// Observer is notified after every fixed step.
type Observer interface {
	OnStep(step int, t float64, bodies []*dynamo.Body)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(step int, t float64, bodies []*dynamo.Body)

func (f ObserverFunc) OnStep(step int, t float64, bodies []*dynamo.Body) { f(step, t, bodies) }

// Lifecycle is the simulator's run state.
type Lifecycle int

const (
	Uninitialized Lifecycle = iota
	Initialized
	Running
	Paused
	Stopped
)

func (l Lifecycle) String() string {
	switch l {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Config holds the tunables. Zero or negative values fall back to the
// defaults when passed to New.
type Config struct {
	// GravitationalConstant scales force magnitude.
	GravitationalConstant float64
	// MinDistance lower-bounds the pairwise separation used in the force law.
	MinDistance float64
	// FixedTimeStep is the simulated seconds per integration step.
	FixedTimeStep float64
	// MaxStepsPerTick caps the steps one Tick may take. Zero means no cap;
	// when the cap is hit the backlog beyond one step is dropped and
	// reported through DroppedTime.
	MaxStepsPerTick int
}

func DefaultConfig() Config {
	return Config{
		GravitationalConstant: 1.0,
		MinDistance:           100.0,
		FixedTimeStep:         1.0,
		MaxStepsPerTick:       0,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if !positive(c.GravitationalConstant) {
		c.GravitationalConstant = d.GravitationalConstant
	}
	if !positive(c.MinDistance) {
		c.MinDistance = d.MinDistance
	}
	if !positive(c.FixedTimeStep) {
		c.FixedTimeStep = d.FixedTimeStep
	}
	if c.MaxStepsPerTick < 0 {
		c.MaxStepsPerTick = 0
	}
	return c
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
