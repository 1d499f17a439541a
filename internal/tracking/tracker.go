// Package tracking follows formants over a long signal by analyzing
// overlapping frames concurrently.
package tracking

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/capture"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/formant"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/samples"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

// Config controls framing and parallelism
type Config struct {
	// Window is the frame length; frames start every 1/FramesPerSec seconds
	Window         time.Duration `json:"window" yaml:"window" mapstructure:"window"`
	FramesPerSec   float64       `json:"frames_per_second" yaml:"frames_per_second" mapstructure:"frames_per_second"`
	MaxConcurrency int           `json:"max_concurrency" yaml:"max_concurrency" mapstructure:"max_concurrency"`
	MaxFormants    int           `json:"max_formants" yaml:"max_formants" mapstructure:"max_formants"` // formants summarized per frame
}

// DefaultConfig returns one 50 ms frame per display refresh
func DefaultConfig() Config {
	return Config{
		Window:         capture.DefaultWindow,
		FramesPerSec:   60,
		MaxConcurrency: runtime.NumCPU(),
		MaxFormants:    3,
	}
}

// Validate checks the framing parameters
func (c Config) Validate() error {
	if c.Window <= 0 {
		return fmt.Errorf("tracking window must be positive")
	}
	if c.FramesPerSec <= 0 {
		return fmt.Errorf("frames per second must be positive")
	}
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("max concurrency must be at least 1")
	}
	if c.MaxFormants < 1 {
		return fmt.Errorf("max formants must be at least 1")
	}
	return nil
}

// Frame is the analysis of one window of the signal
type Frame struct {
	Index    int               `json:"index"`
	Time     float64           `json:"time"` // start of the window (s)
	Silent   bool              `json:"silent"`
	Formants []formant.Formant `json:"formants"`
	Issues   []string          `json:"issues,omitempty"`
	Elapsed  time.Duration     `json:"elapsed"`
}

// Frequencies returns the formant frequencies of the frame
func (f *Frame) Frequencies() []float64 {
	return formant.Frequencies(f.Formants)
}

// Track is the result of tracking a whole signal
type Track struct {
	SampleRate float64       `json:"sample_rate"`
	Window     int           `json:"window"` // samples per frame
	Hop        int           `json:"hop"`    // samples between frame starts
	Frames     []*Frame      `json:"frames"`
	Summary    *Summary      `json:"summary"`
	Duration   time.Duration `json:"duration"`
}

// Tracker analyzes framed signals with a shared extractor
type Tracker struct {
	config    Config
	extractor *formant.Extractor
	metrics   *MetricsCalculator
	logger    logging.Logger
}

// NewTracker creates a tracker. A nil extractor uses the default pipeline.
func NewTracker(cfg Config, extractor *formant.Extractor, logger logging.Logger) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tracking config: %w", err)
	}
	if extractor == nil {
		extractor = formant.NewExtractor(nil)
	}
	if logger == nil {
		logger = logging.WithFields(logging.Fields{"component": "formant_tracker"})
	}

	return &Tracker{
		config:    cfg,
		extractor: extractor,
		metrics:   NewMetricsCalculator(logger),
		logger:    logger,
	}, nil
}

// FrameLayout returns the frame length, hop and frame count for n samples.
// A signal shorter than one window is analyzed as a single frame.
func (t *Tracker) FrameLayout(n int, sampleRate float64) (window, hop, frames int) {
	window = max(1, capture.SamplesFor(t.config.Window, sampleRate))
	hop = max(1, int(sampleRate/t.config.FramesPerSec))

	switch {
	case n == 0:
		return window, hop, 0
	case n <= window:
		return n, hop, 1
	default:
		return window, hop, (n-window)/hop + 1
	}
}

// Track analyzes every frame of the signal. Frames are processed in parallel
// up to MaxConcurrency; cancelling ctx stops scheduling new frames and
// returns the context error.
func (t *Tracker) Track(ctx context.Context, signal *samples.Signal) (*Track, error) {
	if err := signal.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	window, hop, count := t.FrameLayout(len(signal.Samples), signal.SampleRate)
	track := &Track{
		SampleRate: signal.SampleRate,
		Window:     window,
		Hop:        hop,
		Frames:     make([]*Frame, count),
	}

	t.logger.Debug("Starting formant tracking", logging.Fields{
		"frames":      count,
		"window":      window,
		"hop":         hop,
		"concurrency": t.config.MaxConcurrency,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(t.config.MaxConcurrency)

	for i := 0; i < count; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			offset := i * hop
			track.Frames[i] = t.analyzeFrame(i, offset, signal.Samples[offset:offset+window], signal.SampleRate)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("tracking cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("tracking cancelled: %w", err)
	}

	track.Summary = t.metrics.Summarize(track.Frames, t.config.MaxFormants)
	track.Duration = time.Since(start)

	t.logger.Debug("Formant tracking completed", logging.Fields{
		"frames":     count,
		"voiced":     track.Summary.VoicedFrames,
		"duration_s": track.Duration.Seconds(),
	})

	return track, nil
}

func (t *Tracker) analyzeFrame(index, offset int, window []float64, sampleRate float64) *Frame {
	start := time.Now()
	frame := &Frame{
		Index:    index,
		Time:     float64(offset) / sampleRate,
		Formants: []formant.Formant{},
	}

	analysis, err := t.extractor.Analyze(window, sampleRate)
	if err != nil {
		frame.Issues = append(frame.Issues, err.Error())
	} else {
		frame.Silent = analysis.Silent
		frame.Formants = analysis.Formants
		for _, issue := range analysis.Issues {
			frame.Issues = append(frame.Issues, issue.Code)
		}
	}

	frame.Elapsed = time.Since(start)
	return frame
}
