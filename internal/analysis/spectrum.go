package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// PowerSpectrum returns the magnitude of the first n/2 frequency bins of
// samples after removing the mean.
func PowerSpectrum(samples []float64) []float64 {
	n := len(samples)
	if n < 2 {
		return nil
	}

	mean := 0.0
	for _, v := range samples {
		mean += v
	}
	mean /= float64(n)

	centred := make([]float64, n)
	for i, v := range samples {
		centred[i] = v - mean
	}

	bins := fft.FFTReal(centred)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(bins[i])
	}
	return ps
}

// DominantPeriod estimates the period of the strongest oscillation in
// samples taken every sampleDt seconds. It returns 0 when there is too
// little data or no oscillation.
func DominantPeriod(samples []float64, sampleDt float64) float64 {
	ps := PowerSpectrum(samples)
	if len(ps) < 2 || sampleDt <= 0 {
		return 0
	}

	best := 1
	for k := 2; k < len(ps); k++ {
		if ps[k] > ps[best] {
			best = k
		}
	}
	if ps[best] == 0 {
		return 0
	}
	return float64(len(samples)) * sampleDt / float64(best)
}
