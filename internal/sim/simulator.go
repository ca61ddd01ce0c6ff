package sim

import (
	"context"
	"io"
	"math"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/sirupsen/logrus"
)

// Simulator advances a borrowed body set with pairwise Newtonian gravity and
// semi-implicit Euler at a fixed timestep, independent of the caller's frame
// rate. It is not safe for concurrent use.
type Simulator struct {
	source    BodySource
	bodies    []*dynamo.Body
	accel     []dynamo.Vec
	observers []Observer
	log       logrus.FieldLogger

	g               float64
	minDistance     float64
	fixedTimeStep   float64
	maxStepsPerTick int

	accumulator float64
	dropped     float64
	simTime     float64
	steps       int
	lifecycle   Lifecycle
}

func New(cfg Config) *Simulator {
	cfg = cfg.withDefaults()
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	return &Simulator{
		g:               cfg.GravitationalConstant,
		minDistance:     cfg.MinDistance,
		fixedTimeStep:   math.Max(MinTimeStep, cfg.FixedTimeStep),
		maxStepsPerTick: cfg.MaxStepsPerTick,
		log:             quiet,
		observers:       make([]Observer, 0),
	}
}

func (s *Simulator) AddObserver(o Observer)         { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l logrus.FieldLogger) { s.log = l }
func (s *Simulator) IsInitialized() bool            { return s.lifecycle != Uninitialized }
func (s *Simulator) IsRunning() bool                { return s.lifecycle == Running }
func (s *Simulator) State() Lifecycle               { return s.lifecycle }
func (s *Simulator) TimeStep() float64              { return s.fixedTimeStep }
func (s *Simulator) GravitationalConstant() float64 { return s.g }
func (s *Simulator) MinDistance() float64           { return s.minDistance }
func (s *Simulator) Accumulator() float64           { return s.accumulator }
func (s *Simulator) DroppedTime() float64           { return s.dropped }
func (s *Simulator) SimTime() float64               { return s.simTime }
func (s *Simulator) Steps() int                     { return s.steps }
func (s *Simulator) SetMaxStepsPerTick(n int)       { s.maxStepsPerTick = max(0, n) }
func (s *Simulator) Bodies() []*dynamo.Body         { return s.bodies }
func (s *Simulator) Source() BodySource             { return s.source }
func (s *Simulator) Accelerations() []dynamo.Vec    { return append([]dynamo.Vec(nil), s.accel...) }

// SetGravitationalConstant ignores non-positive values.
func (s *Simulator) SetGravitationalConstant(g float64) {
	if positive(g) {
		s.g = g
	}
}

// SetMinDistance ignores non-positive values; the softening radius must stay
// above zero or coincident bodies would divide by zero.
func (s *Simulator) SetMinDistance(d float64) {
	if positive(d) {
		s.minDistance = d
	}
}

// SetTimeStep clamps dt to MinTimeStep.
func (s *Simulator) SetTimeStep(dt float64) {
	if math.IsNaN(dt) || math.IsInf(dt, 0) {
		s.log.WithField("dt", dt).Debug("ignoring non-finite timestep")
		return
	}
	s.fixedTimeStep = math.Max(MinTimeStep, dt)
}

// Initialize binds the simulator to src and resets its clocks. The simulator
// becomes initialized only if src lends at least one body; otherwise it is
// left uninitialized and callers must check IsInitialized.
func (s *Simulator) Initialize(src BodySource, fixedTimeStep float64) {
	s.source = src
	s.SetTimeStep(fixedTimeStep)
	s.accumulator = 0
	s.dropped = 0
	s.simTime = 0
	s.steps = 0
	s.borrow()

	if src == nil || len(s.bodies) == 0 {
		s.lifecycle = Uninitialized
		s.log.Debug("initialize refused: no bodies")
		return
	}
	s.lifecycle = Initialized
	s.log.WithFields(logrus.Fields{
		"bodies": len(s.bodies),
		"dt":     s.fixedTimeStep,
	}).Debug("simulator initialized")
}

// SetBodies replaces the body source with a plain list. A non-empty list
// makes the simulator usable without a registry; an empty one leaves it
// uninitialized.
func (s *Simulator) SetBodies(bodies []*dynamo.Body) {
	s.source = Bodies(bodies)
	s.borrow()
	if len(s.bodies) == 0 {
		s.lifecycle = Uninitialized
		return
	}
	if s.lifecycle == Uninitialized {
		s.lifecycle = Initialized
	}
}

func (s *Simulator) Start() {
	if !s.IsInitialized() {
		s.log.Debug("start ignored: not initialized")
		return
	}
	s.lifecycle = Running
	s.accumulator = 0
}

// Pause keeps the accumulated time so Resume continues where it left off.
func (s *Simulator) Pause() {
	if s.lifecycle == Running {
		s.lifecycle = Paused
	}
}

// Resume continues a paused run without clearing the accumulator.
func (s *Simulator) Resume() {
	if s.lifecycle == Paused {
		s.lifecycle = Running
	}
}

func (s *Simulator) Stop() {
	if s.IsInitialized() {
		s.lifecycle = Stopped
	}
	s.accumulator = 0
}

// Tick feeds deltaTime seconds of wall time into the accumulator and takes
// as many whole fixed steps as fit. It returns the number of steps taken.
// Negative or non-finite deltas are ignored.
func (s *Simulator) Tick(deltaTime float64) int {
	if s.lifecycle != Running {
		return 0
	}
	if !(deltaTime >= 0) || math.IsInf(deltaTime, 0) {
		s.log.WithField("delta", deltaTime).Debug("ignoring invalid frame delta")
		return 0
	}

	s.borrow()
	if s.lifecycle != Running {
		return 0
	}
	s.accumulator += deltaTime

	steps := 0
	for s.accumulator >= s.fixedTimeStep {
		if s.maxStepsPerTick > 0 && steps >= s.maxStepsPerTick {
			kept := math.Mod(s.accumulator, s.fixedTimeStep)
			lost := s.accumulator - kept
			s.dropped += lost
			s.accumulator = kept
			s.log.WithFields(logrus.Fields{
				"steps":   steps,
				"dropped": lost,
			}).Warn("step cap reached, dropping backlog")
			break
		}
		s.step()
		s.accumulator -= s.fixedTimeStep
		steps++
	}
	return steps
}

// Step advances exactly one fixed step whatever the run state, as long as
// the simulator is initialized.
func (s *Simulator) Step() error {
	if !s.IsInitialized() {
		return dynamo.ErrNotInitialized
	}
	s.borrow()
	if !s.IsInitialized() {
		return dynamo.ErrNotInitialized
	}
	s.step()
	return nil
}

// Run drives the simulator like a renderer would: one Tick of frameDt per
// frame until duration seconds of wall time have been fed in. It starts the
// simulator if it is not already running.
func (s *Simulator) Run(ctx context.Context, duration, frameDt float64) (int, error) {
	if !s.IsInitialized() {
		return 0, dynamo.ErrNotInitialized
	}
	if !positive(frameDt) {
		frameDt = s.fixedTimeStep
	}
	if s.lifecycle != Running {
		s.Start()
	}

	frames := int(math.Round(duration / frameDt))
	total := 0
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}
		total += s.Tick(frameDt)
	}
	return total, nil
}

// borrow re-reads the body source and keeps the acceleration buffer the same
// length as the body list. A source that has been emptied drops the
// simulator back to Uninitialized, as SetBodies(nil) does.
func (s *Simulator) borrow() {
	if s.source == nil {
		s.bodies = nil
	} else {
		s.bodies = s.source.Bodies()
	}
	if len(s.accel) != len(s.bodies) {
		s.accel = make([]dynamo.Vec, len(s.bodies))
	}
	if len(s.bodies) == 0 && s.lifecycle != Uninitialized {
		s.log.WithField("state", s.lifecycle).Warn("body source emptied, simulator uninitialized")
		s.lifecycle = Uninitialized
		s.accumulator = 0
	}
}

func (s *Simulator) step() {
	if len(s.bodies) == 0 {
		return
	}
	s.computeForces()
	s.integrate()
	s.steps++
	s.simTime += s.fixedTimeStep

	for _, obs := range s.observers {
		obs.OnStep(s.steps, s.simTime, s.bodies)
	}
}

// computeForces overwrites the acceleration buffer with the net pairwise
// gravitational acceleration on every body. Each unordered pair is visited
// once and applied to both bodies with opposite sign.
func (s *Simulator) computeForces() {
	for i := range s.accel {
		s.accel[i] = dynamo.Vec{}
	}

	n := len(s.bodies)
	minSq := s.minDistance * s.minDistance

	for i := 0; i < n; i++ {
		a := s.bodies[i]
		if !a.Valid() {
			continue
		}
		massA, posA := a.Mass(), a.Position()

		for j := i + 1; j < n; j++ {
			b := s.bodies[j]
			if !b.Valid() {
				continue
			}
			massB := b.Mass()

			delta := b.Position().Sub(posA)
			distSq := delta.Dot(delta)
			if distSq < minSq {
				distSq = minSq
			}

			dist := math.Sqrt(distSq)
			dir := dynamo.Vec{delta[0] / dist, delta[1] / dist, delta[2] / dist}

			forceMag := s.g * massA * massB / distSq

			s.accel[i] = s.accel[i].Add(dir.Mul(forceMag / massA))
			s.accel[j] = s.accel[j].Sub(dir.Mul(forceMag / massB))
		}
	}
}

// integrate applies semi-implicit Euler: velocity first, then position from
// the new velocity.
func (s *Simulator) integrate() {
	dt := s.fixedTimeStep
	for i, b := range s.bodies {
		if !b.Valid() {
			continue
		}
		vel := b.Velocity().Add(s.accel[i].Mul(dt))
		pos := b.Position().Add(vel.Mul(dt))
		b.SetVelocity(vel)
		b.SetPosition(pos)
	}
}
