// Package roots finds all real and complex roots of a real polynomial with
// Bairstow's method, factoring out one real quadratic at a time.
package roots

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/common"
)

// Iteration defaults
const (
	DefaultTolerance     = 1e-6
	DefaultMaxIterations = 100
)

// Options bounds the Bairstow iteration for each quadratic factor
type Options struct {
	Tolerance     float64 // stop once |b[n-1]| + |b[n-2]| falls below this
	MaxIterations int     // Newton updates of (r, s) allowed per factor
}

// DefaultOptions returns the standard iteration budget
func DefaultOptions() Options {
	return Options{
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// Factor describes one extracted quadratic x^2 - r*x - s
type Factor struct {
	R          float64 `json:"r"`
	S          float64 `json:"s"`
	Degree     int     `json:"degree"` // working degree before deflation
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
}

// Result contains the roots found and the factorization trace
type Result struct {
	Roots   []complex128 `json:"-"`
	Factors []Factor     `json:"factors"`
}

// Converged reports whether every quadratic factor met the tolerance
func (r *Result) Converged() bool {
	for _, f := range r.Factors {
		if !f.Converged {
			return false
		}
	}
	return true
}

// FindRoots returns the roots of the polynomial whose coefficients are given
// in ascending powers of x (coefficients[0] is the constant term).
//
// Exhausting the iteration budget is not an error: the current factor is
// accepted and marked unconverged. A singular Newton step stops the search and
// returns the roots found so far with an AnalysisError.
func FindRoots(coefficients []float64, opts Options) (*Result, error) {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	result := &Result{Roots: []complex128{}}

	if !finite(coefficients...) {
		return result, common.NewAnalysisError(common.StageRootFinding, common.ErrCodeInvalidInput,
			"polynomial has non-finite coefficients", nil)
	}

	// Drop vanishing high-order terms, then pull out roots at the origin
	hi := len(coefficients)
	for hi > 0 && coefficients[hi-1] == 0 {
		hi--
	}
	if hi == 0 {
		return result, common.NewAnalysisError(common.StageRootFinding, common.ErrCodeInvalidInput,
			"zero polynomial", nil)
	}
	lo := 0
	for lo < hi-1 && coefficients[lo] == 0 {
		result.Roots = append(result.Roots, 0)
		lo++
	}

	// a is in descending powers: a[0] is the leading coefficient
	a := make([]float64, hi-lo)
	for i := range a {
		a[i] = coefficients[hi-1-i]
	}

	var r, s float64
	for len(a) > 3 {
		n := len(a)
		b := make([]float64, n)
		c := make([]float64, n)
		factor := Factor{Degree: n - 1}

		for {
			b[0] = a[0]
			b[1] = a[1] + r*b[0]
			for i := 2; i < n; i++ {
				b[i] = a[i] + r*b[i-1] + s*b[i-2]
			}

			if math.Abs(b[n-1])+math.Abs(b[n-2]) < opts.Tolerance {
				factor.Converged = true
				break
			}
			if factor.Iterations >= opts.MaxIterations {
				break
			}

			c[0] = b[0]
			c[1] = b[1] + r*c[0]
			for i := 2; i < n-1; i++ {
				c[i] = b[i] + r*c[i-1] + s*c[i-2]
			}

			det := c[n-3]*c[n-3] - c[n-2]*c[n-4]
			h := (-b[n-2]*c[n-3] + b[n-1]*c[n-4]) / det
			k := (-b[n-1]*c[n-3] + b[n-2]*c[n-2]) / det
			if math.Abs(det) < singularThreshold || !finite(h, k) {
				factor.R, factor.S = r, s
				result.Factors = append(result.Factors, factor)
				return result, common.NewAnalysisError(common.StageRootFinding, common.ErrCodeSingularStep,
					fmt.Sprintf("singular newton step at degree %d after %d iterations", n-1, factor.Iterations), nil)
			}

			r += h
			s += k
			factor.Iterations++
		}

		factor.R, factor.S = r, s
		result.Factors = append(result.Factors, factor)

		pair, err := SolveQuadratic(1, -r, -s)
		if err != nil {
			return result, err
		}
		result.Roots = append(result.Roots, pair[0], pair[1])

		a = b[:n-2]
	}

	switch len(a) {
	case 3:
		pair, err := SolveQuadratic(a[0], a[1], a[2])
		if err != nil {
			return result, err
		}
		result.Roots = append(result.Roots, pair[0], pair[1])
	case 2:
		result.Roots = append(result.Roots, complex(-a[1]/a[0], 0))
	}

	return result, nil
}
