package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/gravsim/internal/dynamo"
	"github.com/san-kum/gravsim/internal/metrics"
	"github.com/san-kum/gravsim/internal/sim"
)

// SweepPoint holds the distinct distances from the centre of mass that one
// body visits for a given parameter value.
type SweepPoint struct {
	Param  float64
	Values []float64
}

type SweepParams struct {
	Param     string // "g" or "min_distance"
	Min, Max  float64
	Steps     int
	Body      int
	Dt        float64
	Transient float64
	Record    float64
	// Resolution quantizes distances so revisited orbits collapse to one value.
	Resolution float64
}

// Sweep runs a fresh copy of bodies for each parameter value, discards the
// transient, then records the distances body p.Body reaches. Regular orbits
// show one or two values per column; chaotic ones smear out.
func Sweep(bodies []*dynamo.Body, cfg sim.Config, p SweepParams) ([]SweepPoint, error) {
	if p.Param != "g" && p.Param != "min_distance" {
		return nil, fmt.Errorf("unknown sweep parameter %q", p.Param)
	}
	if p.Body < 0 || p.Body >= len(bodies) {
		return nil, fmt.Errorf("body %d of %d: %w", p.Body, len(bodies), dynamo.ErrIndexOutOfRange)
	}
	if bodies[p.Body] == nil {
		return nil, fmt.Errorf("body %d: %w", p.Body, dynamo.ErrNotFound)
	}
	// the simulator ignores non-positive g and min_distance, so such points
	// would run with the config value under the swept label
	if !(p.Min > 0) || !(p.Max > 0) {
		return nil, fmt.Errorf("sweep range [%g, %g]: %s must be positive", p.Min, p.Max, p.Param)
	}
	steps := max(2, p.Steps)
	res := p.Resolution
	if res <= 0 {
		res = 1e-3
	}
	stride := (p.Max - p.Min) / float64(steps-1)

	results := make([]SweepPoint, 0, steps)
	for i := 0; i < steps; i++ {
		param := p.Min + float64(i)*stride

		s := sim.New(cfg)
		if p.Param == "g" {
			s.SetGravitationalConstant(param)
		} else {
			s.SetMinDistance(param)
		}
		local := dynamo.CloneAll(bodies)
		s.Initialize(sim.Bodies(local), p.Dt)
		if !s.IsInitialized() {
			return nil, dynamo.ErrNotInitialized
		}

		transient := int(math.Round(p.Transient / s.TimeStep()))
		record := int(math.Round(p.Record / s.TimeStep()))
		for j := 0; j < transient; j++ {
			_ = s.Step()
		}

		values := make([]float64, 0, 64)
		seen := make(map[int64]bool)
		for j := 0; j < record; j++ {
			_ = s.Step()
			r := local[p.Body].Position().Sub(metrics.CenterOfMass(local)).Len()
			key := int64(math.Round(r / res))
			if !seen[key] {
				seen[key] = true
				values = append(values, r)
			}
		}

		results = append(results, SweepPoint{Param: param, Values: values})
	}

	return results, nil
}

func SweepToASCII(data []SweepPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal, maxVal = min(minVal, v), max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
