package synth

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/formant"
)

func nearest(freqs []float64, target float64) float64 {
	best := math.Inf(1)
	for _, f := range freqs {
		if math.Abs(f-target) < math.Abs(best-target) {
			best = f
		}
	}
	return best
}

func peakOf(samples []float64) float64 {
	var p float64
	for _, s := range samples {
		p = math.Max(p, math.Abs(s))
	}
	return p
}

func TestSawtooth(t *testing.T) {
	osc := NewSawtooth(1000, 8000)
	want := []float64{-1, -0.75, -0.5, -0.25, 0, 0.25, 0.5, 0.75, -1}
	for i, w := range want {
		assert.InDelta(t, w, osc.Next(), 1e-12, "sample %d", i)
	}
}

func TestResonatorUnityDCGain(t *testing.T) {
	r := NewResonator(500, 80, 8000)
	var y float64
	for i := 0; i < 4000; i++ {
		y = r.Tick(1)
	}
	assert.InDelta(t, 1.0, y, 1e-9)

	r.Reset()
	assert.Equal(t, 0.0, r.Tick(0))
}

func TestBandpassPeakGain(t *testing.T) {
	const sr, f = 8000.0, 1000.0
	bp := NewBandpass(f, 5, sr)

	var peak float64
	for i := 0; i < 8000; i++ {
		y := bp.Tick(math.Sin(2 * math.Pi * f * float64(i) / sr))
		if i > 4000 {
			peak = math.Max(peak, math.Abs(y))
		}
	}
	assert.InDelta(t, 1.0, peak, 0.01)

	bp.Reset()
	assert.Equal(t, 0.0, bp.Tick(0))
}

func TestSynthesizeShapeAndPeak(t *testing.T) {
	for _, mode := range []Mode{ModeCascade, ModeParallel} {
		p := DefaultParams()
		p.Mode = mode

		out, err := Synthesize(p)
		require.NoError(t, err, "mode %s", mode)
		assert.Len(t, out, p.Samples())
		assert.InDelta(t, p.Peak, peakOf(out), 1e-12)
		for _, s := range out {
			assert.False(t, math.IsNaN(s) || math.IsInf(s, 0))
		}
	}
}

func TestSynthesizeRecoveredByExtractor(t *testing.T) {
	tests := []struct {
		sampleRate float64
		f1, f2     float64
	}{
		{11025, 700, 1200},
		{11025, 500, 900},
		{11025, 1072, 1449},
		{11025, 255, 2890},
		{8000, 700, 1200},
		{8000, 300, 2300},
	}

	for _, tt := range tests {
		p := DefaultParams()
		p.SampleRate = tt.sampleRate
		p.F1, p.F2 = tt.f1, tt.f2

		out, err := Synthesize(p)
		require.NoError(t, err)

		window := out[len(out)-int(0.05*tt.sampleRate):]
		got := formant.ExtractFormants(window, tt.sampleRate)
		assert.InEpsilon(t, tt.f1, nearest(got, tt.f1), 0.05, "F1 at %v Hz: %v", tt.sampleRate, got)
		assert.InEpsilon(t, tt.f2, nearest(got, tt.f2), 0.05, "F2 at %v Hz: %v", tt.sampleRate, got)
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Params)
	}{
		{"zero sample rate", func(p *Params) { p.SampleRate = 0 }},
		{"f1 above nyquist", func(p *Params) { p.F1 = 6000 }},
		{"negative f2", func(p *Params) { p.F2 = -1 }},
		{"zero pitch", func(p *Params) { p.Pitch = 0 }},
		{"zero bandwidth", func(p *Params) { p.B2 = 0 }},
		{"zero duration", func(p *Params) { p.Duration = 0 }},
		{"clipping peak", func(p *Params) { p.Peak = 1.5 }},
		{"unknown mode", func(p *Params) { p.Mode = "formant-wave" }},
	}

	require.NoError(t, DefaultParams().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams()
			tt.modify(&p)
			assert.Error(t, p.Validate())

			_, err := Synthesize(p)
			assert.Error(t, err)
		})
	}
}

func TestSamples(t *testing.T) {
	p := DefaultParams()
	p.SampleRate = 8000
	p.Duration = 250 * time.Millisecond
	assert.Equal(t, 2000, p.Samples())
}

func TestNormalizeSilence(t *testing.T) {
	x := make([]float64, 8)
	Normalize(x, 0.9)
	assert.Equal(t, make([]float64, 8), x)
}

func TestVowels(t *testing.T) {
	v, ok := LookupVowel("a")
	require.True(t, ok)
	assert.Equal(t, 1072.0, v.F1)

	_, ok = LookupVowel("q")
	assert.False(t, ok)

	for _, v := range Vowels {
		assert.Equal(t, v.Symbol, NearestVowel(v.F1, v.F2).Symbol)
	}
	assert.Equal(t, "i", NearestVowel(270, 2950).Symbol)
	assert.Equal(t, "u", NearestVowel(280, 560).Symbol)
}
