package automation

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/sirupsen/logrus"
)

// escapeFactor scales the widest initial body distance into the default
// escape radius.
const escapeFactor = 10

// MonteCarloConfig defines Monte Carlo simulation parameters
type MonteCarloConfig struct {
	Sim      sim.Config
	Dt       float64
	Duration float64
	// Perturbation is the largest velocity kick added per axis.
	Perturbation float64
	Trials       int
	Seed         int64
	// EscapeRadius is the distance from the centre of mass past which a
	// trial counts as unstable. Zero derives it from the initial layout.
	EscapeRadius float64
}

// MonteCarloResult holds the outcome of one perturbed trial
type MonteCarloResult struct {
	Trial       int
	Stable      bool
	MaxDistance float64
	EnergyDrift float64
	Fingerprint uint64
}

// escapeWatch records the largest body distance from the centre of mass.
type escapeWatch struct {
	max float64
}

func (e *escapeWatch) OnStep(step int, t float64, bodies []*dynamo.Body) {
	com := metrics.CenterOfMass(bodies)
	for _, b := range bodies {
		if d := b.Position().Sub(com).Len(); d > e.max {
			e.max = d
		}
	}
}

// RunMonteCarlo runs cfg.Trials copies of bodies, each with random velocity
// kicks, and reports whether every body stayed within the escape radius.
func RunMonteCarlo(ctx context.Context, bodies []*dynamo.Body, cfg MonteCarloConfig, log logrus.FieldLogger) ([]MonteCarloResult, error) {
	if len(bodies) == 0 {
		return nil, dynamo.ErrNotInitialized
	}
	if cfg.Trials <= 0 {
		return nil, errors.New("monte carlo: trials must be positive")
	}

	radius := cfg.EscapeRadius
	if radius <= 0 {
		start := &escapeWatch{}
		start.OnStep(0, 0, bodies)
		radius = escapeFactor * start.max
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]MonteCarloResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		trialBodies := dynamo.CloneAll(bodies)
		for _, b := range trialBodies {
			kick := dynamo.Vec{
				(rng.Float64() - 0.5) * 2 * cfg.Perturbation,
				(rng.Float64() - 0.5) * 2 * cfg.Perturbation,
				0,
			}
			b.SetVelocity(b.Velocity().Add(kick))
		}

		s := sim.New(cfg.Sim)
		s.Initialize(sim.Bodies(trialBodies), cfg.Dt)

		watch := &escapeWatch{}
		drift := metrics.NewEnergyDrift(s.GravitationalConstant(), s.MinDistance())
		drift.Baseline(trialBodies)
		s.AddObserver(watch)
		s.AddObserver(drift)

		if _, err := s.Run(ctx, cfg.Duration, s.TimeStep()); err != nil {
			return results, err
		}

		results = append(results, MonteCarloResult{
			Trial:       trial,
			Stable:      watch.max <= radius,
			MaxDistance: watch.max,
			EnergyDrift: drift.Value(),
			Fingerprint: dynamo.Fingerprint(trialBodies),
		})

		if log != nil && (trial+1)%10 == 0 {
			log.WithFields(logrus.Fields{"done": trial + 1, "trials": cfg.Trials}).Info("monte carlo progress")
		}
	}

	return results, nil
}

// MonteCarloStats counts stable and unstable trials
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
