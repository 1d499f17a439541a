// Package conditioning prepares a raw sample window for all-pole modeling:
// a truncated Gaussian taper against spectral leakage and a first-order
// pre-emphasis against the downward spectral tilt of voiced speech.
package conditioning

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

var windowEdge = math.Exp(-12.0)

// GaussianWeight returns the window weight at a 1-based sample position for a
// window of n samples. The weight is 1 at position (n+1)/2 and falls to 0 at
// positions 0 and n+1.
func GaussianWeight(position float64, n int) float64 {
	m := float64(n + 1)
	d := position - 0.5*m
	return (math.Exp(-48.0*d*d/(m*m)) - windowEdge) / (1.0 - windowEdge)
}

// GaussianWindow returns the n window weights for samples 0..n-1. Sample i
// sits at position i+1, so the window is symmetric about the middle of the
// slice and no sample gets a zero weight.
func GaussianWindow(n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = GaussianWeight(float64(i+1), n)
	}
	return w
}

// ApplyGaussianWindow returns a windowed copy of samples
func ApplyGaussianWindow(samples []float64) []float64 {
	if len(samples) == 0 {
		return []float64{}
	}
	out := make([]float64, len(samples))
	return floats.MulTo(out, samples, GaussianWindow(len(samples)))
}

// PreEmphasisFactor is the pole of the one-pole difference filter for the
// given corner frequency
func PreEmphasisFactor(frequency, sampleRate float64) float64 {
	return math.Exp(-2.0 * math.Pi * frequency / sampleRate)
}

// PreEmphasize returns a copy of samples with y[i] -= k*y[i-1] applied from the
// last sample down to the second.
func PreEmphasize(samples []float64, sampleRate, frequency float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	k := PreEmphasisFactor(frequency, sampleRate)
	for i := len(out) - 1; i >= 1; i-- {
		out[i] -= k * out[i-1]
	}
	return out
}

// DeEmphasize inverts PreEmphasize for the same corner frequency and sample rate
func DeEmphasize(samples []float64, sampleRate, frequency float64) []float64 {
	out := make([]float64, len(samples))
	copy(out, samples)

	k := PreEmphasisFactor(frequency, sampleRate)
	for i := 1; i < len(out); i++ {
		out[i] += k * out[i-1]
	}
	return out
}

// IsSilent reports whether every sample is exactly zero. An empty window is silent.
func IsSilent(samples []float64) bool {
	for _, s := range samples {
		if s != 0 {
			return false
		}
	}
	return true
}

// Condition windows and then pre-emphasizes samples, returning a new slice
func Condition(samples []float64, sampleRate, preEmphasisFrequency float64) []float64 {
	return PreEmphasize(ApplyGaussianWindow(samples), sampleRate, preEmphasisFrequency)
}
