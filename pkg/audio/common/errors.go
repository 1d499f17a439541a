package common

import "errors"

func (e *AnalysisError) Error() string {
	msg := string(e.Stage) + ": " + e.Message
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Stage names the pipeline stage an error came from
type Stage string

const (
	StageConditioning Stage = "conditioning"
	StageEstimation   Stage = "estimation"
	StageRootFinding  Stage = "root_finding"
	StageMapping      Stage = "mapping"
)

// AnalysisError represents numerical or input conditions raised by the pipeline.
// None of them are fatal to the caller; the stage that raised one still returns
// whatever partial result it has.
type AnalysisError struct {
	Stage   Stage  `json:"stage"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeSilentSignal    = "SILENT_SIGNAL"
	ErrCodeIllConditioned  = "ILL_CONDITIONED"
	ErrCodeDegenerateInput = "DEGENERATE_INPUT"
	ErrCodeNonConvergence  = "NON_CONVERGENCE"
	ErrCodeSingularStep    = "SINGULAR_STEP"
	ErrCodeInvalidInput    = "INVALID_INPUT"
)

// NewAnalysisError creates a new analysis error
func NewAnalysisError(stage Stage, code, message string, cause error) *AnalysisError {
	return &AnalysisError{
		Stage:   stage,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsCode reports whether any AnalysisError in err's chain carries code
func IsCode(err error, code string) bool {
	var ae *AnalysisError
	for err != nil {
		if !errors.As(err, &ae) {
			return false
		}
		if ae.Code == code {
			return true
		}
		err = ae.Cause
	}
	return false
}

// CodeOf returns the code of the first AnalysisError in err's chain
func CodeOf(err error) string {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}
