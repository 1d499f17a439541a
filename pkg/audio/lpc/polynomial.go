package lpc

// ToPolynomial converts prediction coefficients [1, a1, ..., ap] into the
// ascending-power coefficients of z^p + a1 z^(p-1) + ... + ap, whose roots are
// the poles of the all-pole model.
func ToPolynomial(coefficients []float64) []float64 {
	out := make([]float64, len(coefficients))
	for i, c := range coefficients {
		out[len(coefficients)-1-i] = c
	}
	return out
}

// Residual filters samples through A(z) and returns the prediction error
func Residual(samples, coefficients []float64) []float64 {
	out := make([]float64, len(samples))
	for n := range samples {
		e := 0.0
		for k := 0; k < len(coefficients) && k <= n; k++ {
			e += coefficients[k] * samples[n-k]
		}
		out[n] = e
	}
	return out
}
