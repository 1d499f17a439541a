package lpc

import (
	"fmt"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// DefaultEnvelopeSize is the FFT length used for spectral envelopes
const DefaultEnvelopeSize = 1024

// Envelope evaluates the all-pole spectral envelope 1/|A(e^jw)| on nfft/2+1
// evenly spaced frequencies from DC to Nyquist.
func Envelope(coefficients []float64, nfft int) ([]float64, error) {
	if nfft <= 0 {
		nfft = DefaultEnvelopeSize
	}
	if len(coefficients) > nfft {
		return nil, fmt.Errorf("fft size %d shorter than %d coefficients", nfft, len(coefficients))
	}

	padded := make([]float64, nfft)
	copy(padded, coefficients)
	spectrum := fft.FFTReal(padded)

	envelope := make([]float64, nfft/2+1)
	for k := range envelope {
		mag := cmplx.Abs(spectrum[k])
		if mag > 0 {
			envelope[k] = 1.0 / mag
		}
	}
	return envelope, nil
}

// EnvelopePeaks returns the frequencies (Hz) of the local maxima of an
// envelope produced by Envelope
func EnvelopePeaks(envelope []float64, sampleRate float64) []float64 {
	peaks := []float64{}
	if len(envelope) < 3 {
		return peaks
	}

	resolution := sampleRate / float64(2*(len(envelope)-1))
	for i := 1; i < len(envelope)-1; i++ {
		if envelope[i] > envelope[i-1] && envelope[i] > envelope[i+1] {
			peaks = append(peaks, float64(i)*resolution)
		}
	}
	return peaks
}
