package app

import (
	"context"
	"fmt"
	"time"

	"github.com/RyanBlaney/formant-tracker/internal/tracking"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/capture"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/formant"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/roots"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/samples"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/synth"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

// AnalyzeOptions selects the window and extras of a single analysis
type AnalyzeOptions struct {
	Source   string        // reported as-is
	Window   time.Duration // analyze the last Window of the signal; 0 analyzes all of it
	Spectrum bool          // include LPC envelope peaks
}

// AnalysisReport is the result of analyzing one window
type AnalysisReport struct {
	Source           string            `json:"source,omitempty"`
	SampleRate       float64           `json:"sample_rate"`
	WindowSamples    int               `json:"window_samples"`
	Silent           bool              `json:"silent"`
	Formants         []formant.Formant `json:"formants"`
	EnvelopePeaks    []float64         `json:"envelope_peaks,omitempty"`
	Vowel            *synth.Vowel      `json:"nearest_vowel,omitempty"`
	VocalTractLength float64           `json:"vocal_tract_length_cm,omitempty"`
	Factors          []roots.Factor    `json:"factors,omitempty"`
	Issues           []string          `json:"issues,omitempty"`
	ProcessingMs     float64           `json:"processing_ms"`
}

// TrackReport is the result of tracking a whole signal
type TrackReport struct {
	Source     string            `json:"source,omitempty"`
	SampleRate float64           `json:"sample_rate"`
	Window     int               `json:"window_samples"`
	Hop        int               `json:"hop_samples"`
	FrameCount int               `json:"frame_count"`
	Summary    *tracking.Summary `json:"summary"`
	Frames     []*tracking.Frame `json:"frames,omitempty"`
	DurationMs float64           `json:"duration_ms"`
}

// SynthReport describes a synthesized vowel
type SynthReport struct {
	Params   synth.Params    `json:"params"`
	Vowel    synth.Vowel     `json:"nearest_vowel"`
	Samples  int             `json:"samples"`
	Output   string          `json:"output,omitempty"`
	Analysis *AnalysisReport `json:"analysis,omitempty"`
}

// Analyze runs the formant pipeline on one window of signal
func (app *App) Analyze(signal *samples.Signal, opts AnalyzeOptions) (*AnalysisReport, error) {
	if err := signal.Validate(); err != nil {
		return nil, err
	}

	window := signal.Samples
	if opts.Window > 0 {
		latest, err := app.latestWindow(signal, opts.Window)
		if err != nil {
			return nil, err
		}
		window = latest
	}

	analysis, err := app.extractor.Analyze(window, signal.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("formant analysis failed: %w", err)
	}

	report := &AnalysisReport{
		Source:        opts.Source,
		SampleRate:    signal.SampleRate,
		WindowSamples: len(window),
		Silent:        analysis.Silent,
		Formants:      analysis.Formants,
		ProcessingMs:  float64(analysis.Duration.Microseconds()) / 1000,
	}
	for _, issue := range analysis.Issues {
		report.Issues = append(report.Issues, issue.Code)
	}
	if app.config.Verbose {
		report.Factors = analysis.Factors
	}

	voiced := positive(analysis.Frequencies())
	if len(voiced) > 0 {
		report.VocalTractLength = formant.EstimateVocalTractLength(voiced)
	}
	if len(voiced) >= 2 {
		vowel := synth.NearestVowel(voiced[0], voiced[1])
		report.Vowel = &vowel
	}

	if opts.Spectrum {
		peaks, err := analysis.EnvelopePeaks(app.config.Audio.EnvelopeSize)
		if err != nil {
			return nil, fmt.Errorf("failed to compute spectral envelope: %w", err)
		}
		report.EnvelopePeaks = peaks
	}

	app.logger.Debug("Window analyzed", logging.Fields{
		"source":   opts.Source,
		"samples":  len(window),
		"formants": len(report.Formants),
		"issues":   report.Issues,
	})

	return report, nil
}

// latestWindow streams the signal through a capture buffer and returns the
// most recent window, the way the live analysis loop reads audio
func (app *App) latestWindow(signal *samples.Signal, window time.Duration) ([]float64, error) {
	size := max(capture.SamplesFor(app.config.Audio.BufferDuration, signal.SampleRate),
		capture.SamplesFor(window, signal.SampleRate), 1)

	buf, err := capture.NewBuffer(size, signal.SampleRate)
	if err != nil {
		return nil, err
	}
	if _, err := buf.Write(signal.Samples); err != nil {
		return nil, err
	}
	return buf.Window(window), nil
}

// Track follows formants over the whole signal
func (app *App) Track(ctx context.Context, signal *samples.Signal, source string) (*TrackReport, error) {
	tracker, err := tracking.NewTracker(app.config.Tracking, app.extractor,
		app.logger.WithFields(logging.Fields{"component": "tracker"}))
	if err != nil {
		return nil, err
	}

	track, err := tracker.Track(ctx, signal)
	if err != nil {
		return nil, err
	}

	report := &TrackReport{
		Source:     source,
		SampleRate: track.SampleRate,
		Window:     track.Window,
		Hop:        track.Hop,
		FrameCount: len(track.Frames),
		Summary:    track.Summary,
		DurationMs: float64(track.Duration.Microseconds()) / 1000,
	}
	if app.config.Verbose {
		report.Frames = track.Frames
	}
	return report, nil
}

// Synthesize renders a vowel, optionally saves it, and optionally analyzes
// its last audio window
func (app *App) Synthesize(params synth.Params, path string, analyze bool) (*SynthReport, error) {
	out, err := synth.Synthesize(params)
	if err != nil {
		return nil, err
	}
	signal := &samples.Signal{SampleRate: params.SampleRate, Samples: out}

	report := &SynthReport{
		Params:  params,
		Vowel:   synth.NearestVowel(params.F1, params.F2),
		Samples: len(out),
		Output:  path,
	}

	if path != "" {
		if err := samples.Save(path, signal); err != nil {
			return nil, err
		}
		app.logger.Debug("Synthesized samples saved", logging.Fields{
			"path":    path,
			"samples": len(out),
		})
	}

	if analyze {
		analysis, err := app.Analyze(signal, AnalyzeOptions{
			Source: "synth",
			Window: app.config.Audio.Window,
		})
		if err != nil {
			return nil, err
		}
		report.Analysis = analysis
	}

	return report, nil
}

// positive drops the 0 Hz entries real roots leave behind
func positive(freqs []float64) []float64 {
	out := make([]float64, 0, len(freqs))
	for _, f := range freqs {
		if f > 0 {
			out = append(out, f)
		}
	}
	return out
}
