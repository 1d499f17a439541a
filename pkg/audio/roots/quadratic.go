package roots

import (
	"math"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/common"
)

// singularThreshold bounds leading coefficients and determinants treated as zero
const singularThreshold = 1e-300

// SolveQuadratic returns the two roots of a*x^2 + b*x + c. A negative
// discriminant yields the conjugate pair -b/2a +- i*sqrt(-delta)/2a, in that order.
func SolveQuadratic(a, b, c float64) ([2]complex128, error) {
	if math.Abs(a) < singularThreshold || !finite(a, b, c) {
		return [2]complex128{}, common.NewAnalysisError(common.StageRootFinding, common.ErrCodeSingularStep,
			"quadratic has no usable leading coefficient", nil)
	}

	delta := b*b - 4*a*c
	s0 := -b / (2 * a)

	if delta < 0 {
		imag := math.Sqrt(-delta) / (2 * a)
		return [2]complex128{
			complex(s0, imag),
			complex(s0, -imag),
		}, nil
	}

	d := math.Sqrt(delta) / (2 * a)
	return [2]complex128{
		complex(s0+d, 0),
		complex(s0-d, 0),
	}, nil
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
