package storage

import (
	"github.com/san-kum/gravsim/internal/dynamo"
)

type Sample struct {
	Time      float64
	Positions []dynamo.Vec
}

// Trajectory is a sampled run: one position per body per sample, in
// registry order.
type Trajectory struct {
	Names   []string
	Samples []Sample
}

func (t *Trajectory) Len() int { return len(t.Samples) }

func (t *Trajectory) Times() []float64 {
	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Time
	}
	return out
}

// Series returns one coordinate (0=x, 1=y, 2=z) of the named body over time,
// or nil if the body is unknown.
func (t *Trajectory) Series(name string, axis int) []float64 {
	idx := -1
	for i, n := range t.Names {
		if n == name {
			idx = i
			break
		}
	}
	if idx < 0 || axis < 0 || axis > 2 {
		return nil
	}

	out := make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		out[i] = s.Positions[idx][axis]
	}
	return out
}

// Recorder samples body positions every k-th step. Samples whose body count
// no longer matches the first sample are skipped so the table stays
// rectangular.
type Recorder struct {
	every   int
	traj    Trajectory
	skipped int
}

func NewRecorder(every int) *Recorder {
	return &Recorder{every: max(1, every)}
}

func (r *Recorder) Trajectory() *Trajectory { return &r.traj }
func (r *Recorder) Skipped() int            { return r.skipped }

// Record stores a sample unconditionally, typically the initial state.
func (r *Recorder) Record(t float64, bodies []*dynamo.Body) {
	if r.traj.Names == nil {
		r.traj.Names = make([]string, 0, len(bodies))
		for _, b := range bodies {
			if b != nil {
				r.traj.Names = append(r.traj.Names, b.Name())
			}
		}
	}

	positions := positionsOf(bodies)
	if len(positions) != len(r.traj.Names) {
		r.skipped++
		return
	}

	r.traj.Samples = append(r.traj.Samples, Sample{Time: t, Positions: positions})
}

func (r *Recorder) OnStep(step int, t float64, bodies []*dynamo.Body) {
	if step%r.every != 0 {
		return
	}
	r.Record(t, bodies)
}

func (r *Recorder) Reset() {
	r.traj = Trajectory{}
	r.skipped = 0
}

func positionsOf(bodies []*dynamo.Body) []dynamo.Vec {
	out := make([]dynamo.Vec, 0, len(bodies))
	for _, b := range bodies {
		if b != nil {
			out = append(out, b.Position())
		}
	}
	return out
}
