package sim

import (
	"context"
	"sync"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
)

// EnsembleResult summarises one member run.
type EnsembleResult struct {
	TimeStep    float64
	Steps       int
	SimTime     float64
	Fingerprint uint64
	EnergyDrift float64
	Bodies      []*dynamo.Body
}

// Ensemble runs independent copies of one body set, one per timestep, each
// on its own goroutine. Every member owns its bodies; nothing is shared.
type Ensemble struct {
	cfg    Config
	bodies []*dynamo.Body
}

func NewEnsemble(src BodySource, cfg Config) *Ensemble {
	var bodies []*dynamo.Body
	if src != nil {
		bodies = dynamo.CloneAll(src.Bodies())
	}
	return &Ensemble{cfg: cfg.withDefaults(), bodies: bodies}
}

// Run advances every member for duration simulated seconds.
func (e *Ensemble) Run(ctx context.Context, timeSteps []float64, duration float64) ([]*EnsembleResult, error) {
	results := make([]*EnsembleResult, len(timeSteps))
	errs := make([]error, len(timeSteps))

	var wg sync.WaitGroup
	for i, dt := range timeSteps {
		wg.Add(1)
		go func(idx int, dt float64) {
			defer wg.Done()
			results[idx], errs[idx] = e.runMember(ctx, dt, duration)
		}(i, dt)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

func (e *Ensemble) runMember(ctx context.Context, dt, duration float64) (*EnsembleResult, error) {
	bodies := dynamo.CloneAll(e.bodies)

	s := New(e.cfg)
	s.Initialize(Bodies(bodies), dt)
	if !s.IsInitialized() {
		return nil, dynamo.ErrNotInitialized
	}

	drift := metrics.NewEnergyDrift(s.GravitationalConstant(), s.MinDistance())
	drift.Baseline(bodies)
	s.AddObserver(drift)

	// One frame per step keeps members comparable regardless of dt.
	if _, err := s.Run(ctx, duration, s.TimeStep()); err != nil {
		return nil, err
	}

	return &EnsembleResult{
		TimeStep:    s.TimeStep(),
		Steps:       s.Steps(),
		SimTime:     s.SimTime(),
		Fingerprint: dynamo.Fingerprint(bodies),
		EnergyDrift: drift.Value(),
		Bodies:      bodies,
	}, nil
}
