package synth

// Sawtooth generates a naive rising sawtooth in [-1, 1)
type Sawtooth struct {
	phase     float64
	increment float64
}

// NewSawtooth creates a sawtooth oscillator at frequency Hz
func NewSawtooth(frequency, sampleRate float64) *Sawtooth {
	return &Sawtooth{increment: frequency / sampleRate}
}

// Next returns the next sample
func (s *Sawtooth) Next() float64 {
	out := 2*s.phase - 1
	s.phase += s.increment
	if s.phase >= 1 {
		s.phase -= 1
	}
	return out
}

// Fill writes successive samples into buffer
func (s *Sawtooth) Fill(buffer []float64) {
	for i := range buffer {
		buffer[i] = s.Next()
	}
}
