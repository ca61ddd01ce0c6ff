package sim_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/system"
)

const eps = 1e-12

func newBody(name string, mass float64, pos dynamo.Vec) *dynamo.Body {
	b, err := dynamo.NewBody(name, mass, 1, pos, dynamo.Vec{})
	Expect(err).NotTo(HaveOccurred())
	return b
}

func threeBodySystem() *system.SolarSystem {
	sys := system.New("triangle")
	Expect(sys.AddBody(newBody("A", 10, dynamo.Vec{0, 0, 0}))).To(Succeed())
	Expect(sys.AddBody(newBody("B", 10, dynamo.Vec{100, 0, 0}))).To(Succeed())
	Expect(sys.AddBody(newBody("C", 10, dynamo.Vec{0, 100, 0}))).To(Succeed())
	return sys
}

func triangleConfig() sim.Config {
	return sim.Config{GravitationalConstant: 1, MinDistance: 10, FixedTimeStep: 1}
}

func expectVec(actual, expected dynamo.Vec) {
	for i := 0; i < 3; i++ {
		ExpectWithOffset(1, actual[i]).To(BeNumerically("~", expected[i], eps), "component %d", i)
	}
}

var _ = Describe("Simulator", func() {
	var (
		s   *sim.Simulator
		sys *system.SolarSystem
	)

	BeforeEach(func() {
		s = sim.New(triangleConfig())
		sys = threeBodySystem()
	})

	Describe("defaults", func() {
		It("matches the reference tuning", func() {
			d := sim.New(sim.Config{})
			Expect(d.GravitationalConstant()).To(Equal(1.0))
			Expect(d.MinDistance()).To(Equal(100.0))
			Expect(d.TimeStep()).To(Equal(1.0))
			Expect(d.State()).To(Equal(sim.Uninitialized))
		})
	})

	Describe("lifecycle", func() {
		It("refuses to start before Initialize", func() {
			s.Start()
			Expect(s.IsRunning()).To(BeFalse())
			Expect(s.IsInitialized()).To(BeFalse())
		})

		It("stays uninitialized for a nil source", func() {
			s.Initialize(nil, 1)
			Expect(s.IsInitialized()).To(BeFalse())
		})

		It("stays uninitialized for a typed nil registry", func() {
			var empty *system.SolarSystem
			s.Initialize(empty, 1)
			Expect(s.IsInitialized()).To(BeFalse())
		})

		It("stays uninitialized for an empty registry", func() {
			s.Initialize(system.New("void"), 1)
			Expect(s.IsInitialized()).To(BeFalse())
			s.Start()
			Expect(s.IsRunning()).To(BeFalse())
		})

		It("walks initialized, running, paused, stopped", func() {
			s.Initialize(sys, 1)
			Expect(s.State()).To(Equal(sim.Initialized))
			Expect(s.Accelerations()).To(HaveLen(3))

			s.Start()
			Expect(s.State()).To(Equal(sim.Running))

			s.Tick(0.5)
			s.Pause()
			Expect(s.State()).To(Equal(sim.Paused))
			Expect(s.IsRunning()).To(BeFalse())
			Expect(s.Accumulator()).To(Equal(0.5))

			s.Resume()
			Expect(s.State()).To(Equal(sim.Running))
			Expect(s.Accumulator()).To(Equal(0.5))

			s.Stop()
			Expect(s.State()).To(Equal(sim.Stopped))
			Expect(s.Accumulator()).To(BeZero())
			Expect(s.IsInitialized()).To(BeTrue())
		})

		It("starts fresh accumulation after a restart", func() {
			s.Initialize(sys, 1)
			s.Start()
			s.Tick(0.75)
			s.Start()
			Expect(s.Accumulator()).To(BeZero())
		})

		It("reports lifecycle names", func() {
			Expect(sim.Running.String()).To(Equal("running"))
			Expect(sim.Lifecycle(42).String()).To(Equal("unknown"))
		})
	})

	Describe("SetTimeStep", func() {
		DescribeTable("clamps to the minimum step",
			func(dt, want float64) {
				s.SetTimeStep(dt)
				Expect(s.TimeStep()).To(Equal(want))
			},
			Entry("positive", 0.25, 0.25),
			Entry("zero", 0.0, sim.MinTimeStep),
			Entry("negative", -3.0, sim.MinTimeStep),
		)

		It("ignores NaN", func() {
			s.SetTimeStep(math.NaN())
			Expect(s.TimeStep()).To(Equal(1.0))
		})

		It("applies the clamp in Initialize too", func() {
			s.Initialize(sys, 0)
			Expect(s.TimeStep()).To(Equal(sim.MinTimeStep))
		})
	})

	Describe("Tick", func() {
		BeforeEach(func() {
			s.Initialize(sys, 1)
		})

		It("does nothing before Start", func() {
			before := dynamo.Fingerprint(sys.Bodies())
			Expect(s.Tick(10)).To(BeZero())
			Expect(dynamo.Fingerprint(sys.Bodies())).To(Equal(before))
		})

		It("does nothing after Stop", func() {
			s.Start()
			s.Stop()
			before := dynamo.Fingerprint(sys.Bodies())
			Expect(s.Tick(10)).To(BeZero())
			Expect(dynamo.Fingerprint(sys.Bodies())).To(Equal(before))
		})

		It("does nothing while paused", func() {
			s.Start()
			s.Pause()
			Expect(s.Tick(10)).To(BeZero())
			Expect(s.Steps()).To(BeZero())
		})

		It("accumulates partial frames", func() {
			s.Start()
			Expect(s.Tick(0.5)).To(Equal(0))
			Expect(s.Accumulator()).To(Equal(0.5))
			Expect(s.Tick(0.75)).To(Equal(1))
			Expect(s.Accumulator()).To(Equal(0.25))
			Expect(s.Tick(3)).To(Equal(3))
			Expect(s.Accumulator()).To(Equal(0.25))
			Expect(s.Steps()).To(Equal(4))
			Expect(s.SimTime()).To(Equal(4.0))
		})

		It("ignores negative and non-finite deltas", func() {
			s.Start()
			s.Tick(0.5)
			Expect(s.Tick(-1)).To(BeZero())
			Expect(s.Tick(math.NaN())).To(BeZero())
			Expect(s.Tick(math.Inf(1))).To(BeZero())
			Expect(s.Accumulator()).To(Equal(0.5))
		})

		It("caps steps per call and drops the backlog when configured", func() {
			s.SetMaxStepsPerTick(2)
			s.Start()
			Expect(s.Tick(5.5)).To(Equal(2))
			Expect(s.DroppedTime()).To(Equal(3.0))
			Expect(s.Accumulator()).To(Equal(0.5))
			Expect(s.Accumulator()).To(BeNumerically("<", s.TimeStep()))
		})

		It("takes every step when uncapped", func() {
			s.Start()
			Expect(s.Tick(250)).To(Equal(250))
			Expect(s.DroppedTime()).To(BeZero())
		})
	})

	Describe("the three body scenario", func() {
		It("produces the analytic first step", func() {
			s.Initialize(sys, 1)
			s.Start()
			Expect(s.Tick(1.0)).To(Equal(1))

			// A-B and A-C pairs: G*m*m/100^2 / m = 0.001 each.
			// B-C pair: G*m*m/(2*100^2) / m = 0.0005 along the diagonal.
			h := 0.0005 / math.Sqrt2
			wantAccel := []dynamo.Vec{
				{0.001, 0.001, 0},
				{-0.001 - h, h, 0},
				{h, -0.001 - h, 0},
			}
			start := []dynamo.Vec{{0, 0, 0}, {100, 0, 0}, {0, 100, 0}}

			accel := s.Accelerations()
			for i, b := range sys.Bodies() {
				expectVec(accel[i], wantAccel[i])
				expectVec(b.Velocity(), wantAccel[i])
				expectVec(b.Position(), start[i].Add(wantAccel[i]))
			}
		})

		It("points each acceleration toward the other two bodies", func() {
			s.Initialize(sys, 1)
			Expect(s.Step()).To(Succeed())
			a, _ := sys.Body("A")
			Expect(a.Velocity()[0]).To(BeNumerically(">", 0))
			Expect(a.Velocity()[1]).To(BeNumerically(">", 0))
		})
	})

	Describe("physical properties", func() {
		It("applies Newton's third law exactly for equal masses", func() {
			bodies := []*dynamo.Body{
				newBody("a", 5, dynamo.Vec{0, 0, 0}),
				newBody("b", 5, dynamo.Vec{30, 40, 0}),
			}
			s.SetBodies(bodies)
			Expect(s.Step()).To(Succeed())

			accel := s.Accelerations()
			Expect(accel[0]).To(Equal(accel[1].Mul(-1)))
			Expect(accel[0].Len()).To(BeNumerically(">", 0))
		})

		It("conserves total momentum for unequal masses", func() {
			bodies := []*dynamo.Body{
				newBody("heavy", 50, dynamo.Vec{0, 0, 0}),
				newBody("light", 2, dynamo.Vec{60, -25, 10}),
			}
			s.SetBodies(bodies)
			Expect(s.Step()).To(Succeed())

			accel := s.Accelerations()
			net := accel[0].Mul(50).Add(accel[1].Mul(2))
			Expect(net.Len()).To(BeNumerically("<", 1e-15))
		})

		It("bounds the force inside the softening radius", func() {
			at := func(r float64) float64 {
				s.SetBodies([]*dynamo.Body{
					newBody("a", 10, dynamo.Vec{0, 0, 0}),
					newBody("b", 10, dynamo.Vec{r, 0, 0}),
				})
				Expect(s.Step()).To(Succeed())
				return s.Accelerations()[0].Len()
			}

			// G*m/minD^2 at the radius; inside it the direction is divided
			// by the clamped distance, so the magnitude shrinks by r/minD
			reference := at(10)
			Expect(reference).To(BeNumerically("~", 0.1, eps))
			Expect(at(3)).To(BeNumerically("~", 0.03, eps))
			Expect(at(5)).To(BeNumerically("~", 0.05, eps))

			for _, r := range []float64{1e-6, 0.5, 2, 7, 9.99} {
				a := at(r)
				Expect(math.IsInf(a, 0) || math.IsNaN(a)).To(BeFalse())
				Expect(a).To(BeNumerically("<=", reference))
				Expect(a).To(BeNumerically("~", reference*r/10, eps))
			}
		})

		It("leaves coincident bodies unaccelerated", func() {
			s.SetBodies([]*dynamo.Body{
				newBody("a", 10, dynamo.Vec{4, 4, 4}),
				newBody("b", 10, dynamo.Vec{4, 4, 4}),
			})
			Expect(s.Step()).To(Succeed())
			Expect(s.Accelerations()[0]).To(Equal(dynamo.Vec{}))
		})

		It("uses the updated velocity for the position update", func() {
			bodies := []*dynamo.Body{
				newBody("a", 10, dynamo.Vec{0, 0, 0}),
				newBody("b", 10, dynamo.Vec{100, 0, 0}),
			}
			s.SetBodies(bodies)
			s.SetTimeStep(2)
			Expect(s.Step()).To(Succeed())

			// a = 0.001, v = a*dt = 0.002, x = v*dt = 0.004; explicit Euler would leave x at 0.
			Expect(bodies[0].Velocity()[0]).To(BeNumerically("~", 0.002, eps))
			Expect(bodies[0].Position()[0]).To(BeNumerically("~", 0.004, eps))
		})
	})

	Describe("reproducibility", func() {
		run := func(frames []float64, dt float64) uint64 {
			local := threeBodySystem()
			r := sim.New(triangleConfig())
			r.Initialize(local, dt)
			r.Start()
			for _, f := range frames {
				r.Tick(f)
			}
			return dynamo.Fingerprint(local.Bodies())
		}

		It("is bit-identical across repeated runs", func() {
			frames := []float64{0.25, 0.5, 0.125, 1, 0.125}
			Expect(run(frames, 0.125)).To(Equal(run(frames, 0.125)))
		})

		It("is independent of frame cadence", func() {
			fine := run([]float64{0.25, 0.25, 0.25, 0.25}, 0.125)
			coarse := run([]float64{1.0}, 0.125)
			Expect(fine).To(Equal(coarse))
		})

		It("matches ten small frames against one large frame", func() {
			fine := run([]float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5}, 0.5)
			coarse := run([]float64{5.0}, 0.5)
			Expect(fine).To(Equal(coarse))
		})
	})

	Describe("body sources", func() {
		It("accepts a plain list through SetBodies", func() {
			bodies := []*dynamo.Body{
				newBody("a", 10, dynamo.Vec{0, 0, 0}),
				newBody("b", 10, dynamo.Vec{50, 0, 0}),
			}
			s.SetBodies(bodies)
			Expect(s.IsInitialized()).To(BeTrue())

			s.Start()
			Expect(s.Tick(1)).To(Equal(1))
			Expect(bodies[0].Position()[0]).To(BeNumerically(">", 0))
		})

		It("becomes uninitialized when given an empty list", func() {
			s.Initialize(sys, 1)
			s.Start()
			s.SetBodies(nil)
			Expect(s.IsInitialized()).To(BeFalse())
			Expect(s.Tick(5)).To(BeZero())
		})

		It("skips nil entries", func() {
			bodies := []*dynamo.Body{
				newBody("a", 10, dynamo.Vec{0, 0, 0}),
				nil,
				newBody("b", 10, dynamo.Vec{100, 0, 0}),
			}
			s.SetBodies(bodies)
			Expect(s.Step()).To(Succeed())
			Expect(s.Accelerations()).To(HaveLen(3))
			Expect(s.Accelerations()[1]).To(Equal(dynamo.Vec{}))
			Expect(bodies[0].Velocity()[0]).To(BeNumerically("~", 0.001, eps))
		})

		It("resizes the acceleration buffer when the registry changes between ticks", func() {
			s.Initialize(sys, 1)
			s.Start()
			s.Tick(1)
			Expect(s.Accelerations()).To(HaveLen(3))

			Expect(sys.AddBody(newBody("D", 10, dynamo.Vec{100, 100, 0}))).To(Succeed())
			s.Tick(1)
			Expect(s.Accelerations()).To(HaveLen(4))

			Expect(sys.RemoveBody("A")).To(Succeed())
			s.Tick(1)
			Expect(s.Accelerations()).To(HaveLen(3))
		})

		It("becomes uninitialized when the registry is emptied mid-run", func() {
			s.Initialize(sys, 1)
			s.Start()
			Expect(s.Tick(1)).To(Equal(1))

			for _, name := range []string{"A", "B", "C"} {
				Expect(sys.RemoveBody(name)).To(Succeed())
			}
			Expect(s.Tick(5)).To(BeZero())
			Expect(s.State()).To(Equal(sim.Uninitialized))
			Expect(s.IsInitialized()).To(BeFalse())
			Expect(s.Step()).To(MatchError(dynamo.ErrNotInitialized))

			Expect(sys.AddBody(newBody("D", 10, dynamo.Vec{0, 0, 0}))).To(Succeed())
			Expect(sys.AddBody(newBody("E", 10, dynamo.Vec{100, 0, 0}))).To(Succeed())
			s.Initialize(sys, 1)
			s.Start()
			Expect(s.Tick(1)).To(Equal(1))
		})

		It("refuses Step before initialization", func() {
			Expect(s.Step()).To(MatchError(dynamo.ErrNotInitialized))
		})
	})

	Describe("observers", func() {
		It("is notified after every step", func() {
			var seen []int
			var times []float64
			s.AddObserver(sim.ObserverFunc(func(step int, t float64, bodies []*dynamo.Body) {
				seen = append(seen, step)
				times = append(times, t)
				Expect(bodies).To(HaveLen(3))
			}))
			s.Initialize(sys, 0.5)
			s.Start()
			s.Tick(1.5)
			Expect(seen).To(Equal([]int{1, 2, 3}))
			Expect(times).To(Equal([]float64{0.5, 1.0, 1.5}))
		})
	})

	Describe("Run", func() {
		It("drives frames until the duration is consumed", func() {
			s.Initialize(sys, 0.25)
			steps, err := s.Run(context.Background(), 2, 0.5)
			Expect(err).NotTo(HaveOccurred())
			Expect(steps).To(Equal(8))
			Expect(s.IsRunning()).To(BeTrue())
		})

		It("fails when not initialized", func() {
			_, err := s.Run(context.Background(), 1, 0.5)
			Expect(err).To(MatchError(dynamo.ErrNotInitialized))
		})

		It("stops on context cancellation", func() {
			s.Initialize(sys, 1)
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			steps, err := s.Run(ctx, 10, 1)
			Expect(err).To(MatchError(context.Canceled))
			Expect(steps).To(BeZero())
		})
	})
})
