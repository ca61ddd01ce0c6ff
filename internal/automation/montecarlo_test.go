package automation_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/gravsim/internal/automation"
	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/sim"
)

var _ = Describe("RunMonteCarlo", func() {
	var (
		bodies []*dynamo.Body
		cfg    automation.MonteCarloConfig
	)

	BeforeEach(func() {
		a, err := dynamo.NewBody("primary", 500, 15, dynamo.Vec{-200, 0, 0}, dynamo.Vec{0, -0.790569, 0})
		Expect(err).NotTo(HaveOccurred())
		b, err := dynamo.NewBody("secondary", 500, 15, dynamo.Vec{200, 0, 0}, dynamo.Vec{0, 0.790569, 0})
		Expect(err).NotTo(HaveOccurred())
		bodies = []*dynamo.Body{a, b}

		cfg = automation.MonteCarloConfig{
			Sim:      sim.DefaultConfig(),
			Dt:       1,
			Duration: 500,
			Trials:   10,
			Seed:     42,
		}
	})

	It("keeps an unperturbed circular binary bound", func() {
		results, err := automation.RunMonteCarlo(context.Background(), bodies, cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(results).To(HaveLen(10))

		stable, unstable := automation.MonteCarloStats(results)
		Expect(stable).To(Equal(10))
		Expect(unstable).To(BeZero())
		Expect(results[0].MaxDistance).To(BeNumerically("~", 200, 5))
	})

	It("flags trials kicked past escape speed", func() {
		cfg.Perturbation = 50
		results, err := automation.RunMonteCarlo(context.Background(), bodies, cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		_, unstable := automation.MonteCarloStats(results)
		Expect(unstable).To(BeNumerically(">=", 9))
	})

	It("does not touch the input bodies", func() {
		cfg.Perturbation = 1
		_, err := automation.RunMonteCarlo(context.Background(), bodies, cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(bodies[0].Position()).To(Equal(dynamo.Vec{-200, 0, 0}))
		Expect(bodies[1].Velocity()).To(Equal(dynamo.Vec{0, 0.790569, 0}))
	})

	It("is reproducible for a fixed seed", func() {
		cfg.Perturbation = 0.05
		first, err := automation.RunMonteCarlo(context.Background(), bodies, cfg, nil)
		Expect(err).NotTo(HaveOccurred())
		second, err := automation.RunMonteCarlo(context.Background(), bodies, cfg, nil)
		Expect(err).NotTo(HaveOccurred())

		for i := range first {
			Expect(second[i].Fingerprint).To(Equal(first[i].Fingerprint))
		}
		Expect(first[0].Fingerprint).NotTo(Equal(first[1].Fingerprint))
	})

	It("rejects bad input", func() {
		_, err := automation.RunMonteCarlo(context.Background(), nil, cfg, nil)
		Expect(err).To(MatchError(dynamo.ErrNotInitialized))

		cfg.Trials = 0
		_, err = automation.RunMonteCarlo(context.Background(), bodies, cfg, nil)
		Expect(err).To(HaveOccurred())
	})

	It("stops when the context is cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := automation.RunMonteCarlo(ctx, bodies, cfg, nil)
		Expect(err).To(MatchError(context.Canceled))
	})
})
