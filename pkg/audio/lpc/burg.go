// Package lpc fits all-pole linear prediction models to a sample window.
package lpc

import (
	"fmt"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/common"
)

// Result contains the outcome of Burg analysis
type Result struct {
	Coefficients         []float64 `json:"coefficients"`           // 1, a1, ..., ap
	Reflection           []float64 `json:"reflection"`             // per-stage reflection coefficients
	PredictionErrorPower float64   `json:"prediction_error_power"` // xms after the last completed stage
	Order                int       `json:"order"`
	Stages               int       `json:"stages"`     // stages completed
	Degenerate           bool      `json:"degenerate"` // input too short for an estimate
}

// Burg estimates order prediction coefficients from samples with Burg's
// method. The returned coefficients follow the polynomial sign convention:
// element 0 is 1 and A(z) = 1 + a1 z^-1 + ... + ap z^-p.
//
// A window of two samples or fewer produces the fixed result [1, -1, 0, ...]
// flagged as Degenerate. Silent and ill-conditioned input return a result
// holding whatever stages completed together with an AnalysisError.
func Burg(samples []float64, order int) (*Result, error) {
	if order < 1 {
		return nil, common.NewAnalysisError(common.StageEstimation, common.ErrCodeInvalidInput,
			fmt.Sprintf("model order must be positive, got %d", order), nil)
	}

	n := len(samples)
	m := order

	a := make([]float64, m)
	aa := make([]float64, m)
	result := &Result{
		Reflection: make([]float64, m),
		Order:      m,
	}

	if n <= 2 {
		result.Coefficients = toPolynomialSign(a)
		result.Coefficients[1] = -1
		result.Degenerate = true
		return result, nil
	}

	var p float64
	for _, x := range samples {
		p += x * x
	}

	xms := p / float64(n)
	if xms <= 0 {
		result.Coefficients = toPolynomialSign(a)
		return result, common.NewAnalysisError(common.StageEstimation, common.ErrCodeSilentSignal,
			"signal has no energy", nil)
	}

	// b1 holds forward errors, b2 backward errors, aligned one sample apart
	b1 := make([]float64, n)
	b2 := make([]float64, n)
	copy(b1, samples[:n-1])
	copy(b2, samples[1:])

	for i := 1; i <= m; i++ {
		var num, denum float64
		for j := 0; j < n-i; j++ {
			num += b1[j] * b2[j]
			denum += b1[j]*b1[j] + b2[j]*b2[j]
		}

		if denum <= 0 {
			result.Coefficients = toPolynomialSign(a)
			result.PredictionErrorPower = xms
			return result, common.NewAnalysisError(common.StageEstimation, common.ErrCodeIllConditioned,
				fmt.Sprintf("zero error power at stage %d", i), nil)
		}

		a[i-1] = 2 * num / denum
		result.Reflection[i-1] = a[i-1]

		xms *= 1 - a[i-1]*a[i-1]

		for j := 1; j <= i-1; j++ {
			a[j-1] = aa[j-1] - a[i-1]*aa[i-j-1]
		}

		if i < m {
			copy(aa[:i], a[:i])

			for j := 0; j < n-i-1; j++ {
				b1[j] -= aa[i-1] * b2[j]
				b2[j] = b2[j+1] - aa[i-1]*b1[j+1]
			}
		}

		result.Stages = i
	}

	result.Coefficients = toPolynomialSign(a)
	result.PredictionErrorPower = xms
	return result, nil
}

// toPolynomialSign negates the predictor and prepends the leading 1
func toPolynomialSign(a []float64) []float64 {
	out := make([]float64, len(a)+1)
	out[0] = 1
	for i, v := range a {
		out[i+1] = -v
	}
	return out
}
