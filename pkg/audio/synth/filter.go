package synth

import "math"

// Resonator is a two-pole resonance with unity gain at DC:
// y[n] = a*x[n] + b*y[n-1] + c*y[n-2]
type Resonator struct {
	a, b, c float64
	p1, p2  float64
}

// NewResonator creates a resonator centred on frequency with the given bandwidth
func NewResonator(frequency, bandwidth, sampleRate float64) *Resonator {
	r := &Resonator{}
	r.SetResonance(frequency, bandwidth, sampleRate)
	return r
}

// SetResonance converts a frequency and bandwidth into difference equation coefficients
func (r *Resonator) SetResonance(frequency, bandwidth, sampleRate float64) {
	radius := math.Exp(-math.Pi * bandwidth / sampleRate)
	r.c = -(radius * radius)
	r.b = 2 * radius * math.Cos(2*math.Pi*frequency/sampleRate)
	r.a = 1 - r.b - r.c
}

// Tick filters one sample
func (r *Resonator) Tick(x float64) float64 {
	y := r.a*x + r.b*r.p1 + r.c*r.p2
	r.p2 = r.p1
	r.p1 = y
	return y
}

// Process filters buffer in place
func (r *Resonator) Process(buffer []float64) {
	for i, x := range buffer {
		buffer[i] = r.Tick(x)
	}
}

// Reset clears the filter state
func (r *Resonator) Reset() {
	r.p1, r.p2 = 0, 0
}

// Biquad implements a second-order IIR filter in Direct Form I
type Biquad struct {
	// Coefficients, normalized so a0 == 1
	a1, a2     float64
	b0, b1, b2 float64

	x1, x2 float64
	y1, y2 float64
}

// NewBandpass creates a band-pass biquad with 0 dB peak gain at frequency
func NewBandpass(frequency, q, sampleRate float64) *Biquad {
	b := &Biquad{}
	b.SetBandpass(frequency, q, sampleRate)
	return b
}

// SetCoefficients sets the filter coefficients directly
func (b *Biquad) SetCoefficients(b0, b1, b2, a0, a1, a2 float64) {
	invA0 := 1.0 / a0
	b.b0 = b0 * invA0
	b.b1 = b1 * invA0
	b.b2 = b2 * invA0
	b.a1 = a1 * invA0
	b.a2 = a2 * invA0
}

// SetBandpass configures as a band-pass filter
func (b *Biquad) SetBandpass(frequency, q, sampleRate float64) {
	omega := 2.0 * math.Pi * frequency / sampleRate
	alpha := math.Sin(omega) / (2.0 * q)

	b.SetCoefficients(alpha, 0, -alpha, 1.0+alpha, -2.0*math.Cos(omega), 1.0-alpha)
}

// Tick filters one sample
func (b *Biquad) Tick(x0 float64) float64 {
	y0 := b.b0*x0 + b.b1*b.x1 + b.b2*b.x2 - b.a1*b.y1 - b.a2*b.y2
	b.x2, b.x1 = b.x1, x0
	b.y2, b.y1 = b.y1, y0
	return y0
}

// Process filters buffer in place
func (b *Biquad) Process(buffer []float64) {
	for i, x := range buffer {
		buffer[i] = b.Tick(x)
	}
}

// Reset clears the filter state
func (b *Biquad) Reset() {
	b.x1, b.x2, b.y1, b.y2 = 0, 0, 0, 0
}
