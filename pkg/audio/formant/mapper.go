package formant

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/config"
)

// Formant represents a single resonance measurement
type Formant struct {
	Frequency float64 `json:"frequency" yaml:"frequency"` // Hz
	Bandwidth float64 `json:"bandwidth" yaml:"bandwidth"` // Hz
}

// FixRootToUnitCircle reflects a root outside the unit circle to 1/conj(z),
// which keeps its angle and gives it the reciprocal magnitude.
func FixRootToUnitCircle(z complex128) complex128 {
	if cmplx.Abs(z) <= 1 {
		return z
	}
	return 1 / cmplx.Conj(z)
}

// RootToFormant converts a pole into a frequency/bandwidth pair
func RootToFormant(z complex128, sampleRate float64) Formant {
	nyquist := sampleRate / 2
	return Formant{
		Frequency: math.Abs(math.Atan2(imag(z), real(z))) * nyquist / math.Pi,
		Bandwidth: -math.Log(cmplx.Abs(z)) * nyquist / math.Pi * 2,
	}
}

// RootsToFormants maps the upper half-plane roots to formants, applies the
// filter and sorts by ascending frequency. Roots at the origin and non-finite
// roots are skipped since they carry no resonance.
func RootsToFormants(roots []complex128, sampleRate float64, filter config.FilterConfig) []Formant {
	formants := make([]Formant, 0, len(roots))

	for _, z := range roots {
		if imag(z) < 0 || cmplx.IsNaN(z) || cmplx.IsInf(z) || z == 0 {
			continue
		}

		f := RootToFormant(FixRootToUnitCircle(z), sampleRate)
		if !filter.Accepts(f.Frequency, f.Bandwidth) {
			continue
		}
		formants = append(formants, f)
	}

	sort.SliceStable(formants, func(i, j int) bool {
		return formants[i].Frequency < formants[j].Frequency
	})
	return formants
}

// Frequencies returns the frequency of each formant
func Frequencies(formants []Formant) []float64 {
	out := make([]float64, len(formants))
	for i, f := range formants {
		out[i] = f.Frequency
	}
	return out
}

// Bandwidths returns the bandwidth of each formant
func Bandwidths(formants []Formant) []float64 {
	out := make([]float64, len(formants))
	for i, f := range formants {
		out[i] = f.Bandwidth
	}
	return out
}
