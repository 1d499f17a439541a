// Package synth renders steady two-formant vowels from a sawtooth glottal
// source, for exercising the formant extractor with known targets.
package synth

import (
	"fmt"
	"math"
	"time"
)

// Mode selects the resonator topology
type Mode string

const (
	// ModeCascade feeds the source through both formant resonators in series
	ModeCascade Mode = "cascade"
	// ModeParallel sums two band-pass branches, like the browser vowel synth
	ModeParallel Mode = "parallel"
)

// Defaults
const (
	DefaultPitch      = 120.0 // Hz
	DefaultSampleRate = 11025.0
	DefaultDuration   = 200 * time.Millisecond
	DefaultBandwidth1 = 80.0  // Hz
	DefaultBandwidth2 = 100.0 // Hz
	DefaultPeak       = 0.9

	parallelQ     = 5.0
	parallelGain1 = 0.5
	parallelGain2 = 0.4
)

// Params describes one synthesized vowel
type Params struct {
	F1         float64       `json:"f1" yaml:"f1" mapstructure:"f1"`
	F2         float64       `json:"f2" yaml:"f2" mapstructure:"f2"`
	B1         float64       `json:"b1" yaml:"b1" mapstructure:"b1"`
	B2         float64       `json:"b2" yaml:"b2" mapstructure:"b2"`
	Pitch      float64       `json:"pitch" yaml:"pitch" mapstructure:"pitch"`
	SampleRate float64       `json:"sample_rate" yaml:"sample_rate" mapstructure:"sample_rate"`
	Duration   time.Duration `json:"duration" yaml:"duration" mapstructure:"duration"`
	Mode       Mode          `json:"mode" yaml:"mode" mapstructure:"mode"`
	Peak       float64       `json:"peak" yaml:"peak" mapstructure:"peak"` // output is scaled to this absolute peak
}

// DefaultParams returns a schwa-like vowel
func DefaultParams() Params {
	return Params{
		F1:         600,
		F2:         1200,
		B1:         DefaultBandwidth1,
		B2:         DefaultBandwidth2,
		Pitch:      DefaultPitch,
		SampleRate: DefaultSampleRate,
		Duration:   DefaultDuration,
		Mode:       ModeCascade,
		Peak:       DefaultPeak,
	}
}

// Validate checks that the parameters describe a renderable vowel
func (p Params) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive")
	}
	nyquist := p.SampleRate / 2
	for name, f := range map[string]float64{"f1": p.F1, "f2": p.F2, "pitch": p.Pitch} {
		if f <= 0 || f >= nyquist {
			return fmt.Errorf("%s must be between 0 and %v Hz, got %v", name, nyquist, f)
		}
	}
	if p.B1 <= 0 || p.B2 <= 0 {
		return fmt.Errorf("bandwidths must be positive")
	}
	if p.Duration <= 0 {
		return fmt.Errorf("duration must be positive")
	}
	if p.Peak <= 0 || p.Peak > 1 {
		return fmt.Errorf("peak must be in (0, 1], got %v", p.Peak)
	}
	switch p.Mode {
	case ModeCascade, ModeParallel:
	default:
		return fmt.Errorf("unknown synthesis mode: %q", p.Mode)
	}
	return nil
}

// Samples returns the number of samples Synthesize will produce
func (p Params) Samples() int {
	return int(p.Duration.Seconds() * p.SampleRate)
}

// Synthesize renders the vowel described by p
func Synthesize(p Params) ([]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid synth parameters: %w", err)
	}

	out := make([]float64, p.Samples())
	NewSawtooth(p.Pitch, p.SampleRate).Fill(out)

	switch p.Mode {
	case ModeCascade:
		NewResonator(p.F1, p.B1, p.SampleRate).Process(out)
		NewResonator(p.F2, p.B2, p.SampleRate).Process(out)
	case ModeParallel:
		f1 := NewBandpass(p.F1, parallelQ, p.SampleRate)
		f2 := NewBandpass(p.F2, parallelQ, p.SampleRate)
		for i, x := range out {
			out[i] = parallelGain1*f1.Tick(x) + parallelGain2*f2.Tick(x)
		}
	}

	Normalize(out, p.Peak)
	return out, nil
}

// Normalize scales samples in place so the largest magnitude equals peak.
// Silent input is left untouched.
func Normalize(samples []float64, peak float64) {
	var largest float64
	for _, s := range samples {
		largest = math.Max(largest, math.Abs(s))
	}
	if largest == 0 {
		return
	}
	scale := peak / largest
	for i := range samples {
		samples[i] *= scale
	}
}
