// Package formant turns a window of audio samples into vocal tract resonances.
//
// The pipeline runs conditioning, Burg estimation, Bairstow root finding and
// root-to-formant mapping. Every stage allocates its own buffers, so an
// Extractor can be shared between goroutines.
package formant

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/common"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/conditioning"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/config"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/lpc"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/roots"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

// Analysis is the full record of one pipeline run
type Analysis struct {
	SampleRate  float64                 `json:"sample_rate"`
	WindowSize  int                     `json:"window_size"`
	Silent      bool                    `json:"silent"`
	Conditioned []float64               `json:"-"`
	LPC         *lpc.Result             `json:"lpc,omitempty"`
	Polynomial  []float64               `json:"polynomial,omitempty"`
	Roots       []complex128            `json:"-"`
	Factors     []roots.Factor          `json:"factors,omitempty"`
	Formants    []Formant               `json:"formants"`
	Issues      []*common.AnalysisError `json:"issues,omitempty"`
	Duration    time.Duration           `json:"duration"`
}

// Frequencies returns the formant frequencies in ascending order
func (a *Analysis) Frequencies() []float64 {
	return Frequencies(a.Formants)
}

// HasIssue reports whether a stage recorded the given error code
func (a *Analysis) HasIssue(code string) bool {
	for _, issue := range a.Issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

// EnvelopePeaks returns the local maxima of the fitted spectral envelope
func (a *Analysis) EnvelopePeaks(nfft int) ([]float64, error) {
	if a.LPC == nil {
		return []float64{}, nil
	}
	envelope, err := lpc.Envelope(a.LPC.Coefficients, nfft)
	if err != nil {
		return nil, err
	}
	return lpc.EnvelopePeaks(envelope, a.SampleRate), nil
}

// Extractor runs the formant pipeline with a fixed configuration
type Extractor struct {
	config *config.AnalysisConfig
	logger logging.Logger
}

// NewExtractor creates an extractor; a nil config selects the defaults
func NewExtractor(cfg *config.AnalysisConfig) *Extractor {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	return &Extractor{
		config: cfg,
		logger: logging.WithFields(logging.Fields{
			"component": "formant_extractor",
		}),
	}
}

// Config returns the extractor configuration
func (e *Extractor) Config() *config.AnalysisConfig {
	return e.config
}

// Analyze runs the whole pipeline on samples. Numerical trouble in a stage is
// recorded in Analysis.Issues and the pipeline continues with the partial
// result; only invalid input or configuration returns an error.
func (e *Extractor) Analyze(samples []float64, sampleRate float64) (*Analysis, error) {
	start := time.Now()

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, common.NewAnalysisError(common.StageConditioning, common.ErrCodeInvalidInput,
			fmt.Sprintf("sample rate must be positive, got %v", sampleRate), nil)
	}
	if err := e.config.Validate(); err != nil {
		return nil, common.NewAnalysisError(common.StageEstimation, common.ErrCodeInvalidInput,
			"invalid analysis configuration", err)
	}

	logger := e.logger.WithFields(logging.Fields{
		"function":    "Analyze",
		"samples":     len(samples),
		"sample_rate": sampleRate,
	})

	analysis := &Analysis{
		SampleRate: sampleRate,
		WindowSize: len(samples),
		Formants:   []Formant{},
	}
	defer func() {
		analysis.Duration = time.Since(start)
	}()

	if conditioning.IsSilent(samples) {
		analysis.Silent = true
		logger.Debug("Silent window, skipping analysis")
		return analysis, nil
	}

	analysis.Conditioned = conditioning.Condition(samples, sampleRate, e.config.PreEmphasisFrequency)

	lpcResult, err := lpc.Burg(analysis.Conditioned, e.config.ModelOrder)
	analysis.LPC = lpcResult
	if err != nil {
		e.record(analysis, logger, err)
		if lpcResult == nil || common.IsCode(err, common.ErrCodeSilentSignal) {
			analysis.Silent = true
			return analysis, nil
		}
	}
	if lpcResult.Degenerate {
		e.record(analysis, logger, common.NewAnalysisError(common.StageEstimation, common.ErrCodeDegenerateInput,
			fmt.Sprintf("window of %d samples is too short to model", len(samples)), nil))
		return analysis, nil
	}

	analysis.Polynomial = lpc.ToPolynomial(lpcResult.Coefficients)

	rootResult, err := roots.FindRoots(analysis.Polynomial, roots.Options{
		Tolerance:     e.config.RootTolerance,
		MaxIterations: e.config.RootMaxIterations,
	})
	if err != nil {
		e.record(analysis, logger, err)
	}
	if rootResult != nil {
		analysis.Roots = rootResult.Roots
		analysis.Factors = rootResult.Factors
		if !rootResult.Converged() {
			e.record(analysis, logger, common.NewAnalysisError(common.StageRootFinding, common.ErrCodeNonConvergence,
				"iteration budget exhausted for at least one quadratic factor", nil))
		}
	}

	analysis.Formants = RootsToFormants(analysis.Roots, sampleRate, e.config.Filter)

	logger.Debug("Formant analysis completed", logging.Fields{
		"formants": len(analysis.Formants),
		"roots":    len(analysis.Roots),
		"issues":   len(analysis.Issues),
	})

	return analysis, nil
}

// Extract returns the ascending formant frequencies of samples. It never
// fails: invalid input yields an empty slice.
func (e *Extractor) Extract(samples []float64, sampleRate float64) []float64 {
	analysis, err := e.Analyze(samples, sampleRate)
	if err != nil {
		e.logger.Warn("Formant extraction rejected input", logging.Fields{
			"error": err.Error(),
		})
		return []float64{}
	}
	return analysis.Frequencies()
}

func (e *Extractor) record(analysis *Analysis, logger logging.Logger, err error) {
	ae := asAnalysisError(err)
	analysis.Issues = append(analysis.Issues, ae)
	logger.Debug("Pipeline stage reported a numerical condition", logging.Fields{
		"stage": ae.Stage,
		"code":  ae.Code,
		"error": ae.Message,
	})
}

func asAnalysisError(err error) *common.AnalysisError {
	var ae *common.AnalysisError
	if errors.As(err, &ae) {
		return ae
	}
	return common.NewAnalysisError(common.StageMapping, common.CodeOf(err), err.Error(), err)
}

// ExtractFormants runs the pipeline with the default configuration: model
// order 10, 50 Hz pre-emphasis and no candidate filtering.
func ExtractFormants(samples []float64, sampleRate float64) []float64 {
	return NewExtractor(nil).Extract(samples, sampleRate)
}
