package app

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/formant-tracker/configs"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/samples"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/synth"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

func newTestApp(t *testing.T, modify func(*Context)) (*App, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	ctx := &Context{
		Out:    &out,
		Logger: &logging.NoOpLogger{},
		Config: configs.GetDefaultConfig(),
	}
	if modify != nil {
		modify(ctx)
	}

	app, err := NewApp(ctx)
	require.NoError(t, err)
	return app, &out
}

func vowelSignal(t *testing.T, f1, f2 float64, d time.Duration) *samples.Signal {
	t.Helper()

	p := synth.DefaultParams()
	p.F1, p.F2, p.Duration = f1, f2, d
	out, err := synth.Synthesize(p)
	require.NoError(t, err)
	return &samples.Signal{SampleRate: p.SampleRate, Samples: out}
}

func nearest(freqs []float64, target float64) float64 {
	best := math.Inf(1)
	for _, f := range freqs {
		if math.Abs(f-target) < math.Abs(best-target) {
			best = f
		}
	}
	return best
}

func TestNewAppAppliesOverrides(t *testing.T) {
	app, _ := newTestApp(t, func(c *Context) {
		c.OutputFormat = "json"
		c.Verbose = true
	})
	assert.Equal(t, "json", app.Config().OutputFormat)
	assert.True(t, app.Config().Verbose)

	_, err := NewApp(&Context{
		OutputFormat: "xml",
		Logger:       &logging.NoOpLogger{},
		Config:       configs.GetDefaultConfig(),
	})
	assert.Error(t, err)
}

func TestAnalyzeLatestWindow(t *testing.T) {
	app, _ := newTestApp(t, nil)
	signal := vowelSignal(t, 700, 1200, 200*time.Millisecond)

	report, err := app.Analyze(signal, AnalyzeOptions{
		Source:   "vowel",
		Window:   50 * time.Millisecond,
		Spectrum: true,
	})
	require.NoError(t, err)

	assert.Equal(t, "vowel", report.Source)
	assert.Equal(t, 551, report.WindowSamples)
	assert.False(t, report.Silent)

	freqs := make([]float64, len(report.Formants))
	for i, f := range report.Formants {
		freqs[i] = f.Frequency
	}
	assert.InEpsilon(t, 700, nearest(freqs, 700), 0.05, "%v", freqs)
	assert.InEpsilon(t, 1200, nearest(freqs, 1200), 0.05, "%v", freqs)
	assert.NotEmpty(t, report.EnvelopePeaks)
	require.NotNil(t, report.Vowel)
	assert.Equal(t, "ʌ", report.Vowel.Symbol)
	assert.Empty(t, report.Factors)
}

func TestAnalyzeWholeSignalAndSilence(t *testing.T) {
	app, _ := newTestApp(t, func(c *Context) { c.Verbose = true })

	signal := vowelSignal(t, 500, 900, 50*time.Millisecond)
	report, err := app.Analyze(signal, AnalyzeOptions{})
	require.NoError(t, err)
	assert.Equal(t, len(signal.Samples), report.WindowSamples)
	assert.NotEmpty(t, report.Factors)
	assert.Empty(t, report.EnvelopePeaks)

	silent, err := app.Analyze(&samples.Signal{SampleRate: 8000, Samples: make([]float64, 400)}, AnalyzeOptions{})
	require.NoError(t, err)
	assert.True(t, silent.Silent)
	assert.Empty(t, silent.Formants)
	assert.Nil(t, silent.Vowel)
	assert.Zero(t, silent.VocalTractLength)

	_, err = app.Analyze(&samples.Signal{SampleRate: 0, Samples: []float64{1}}, AnalyzeOptions{})
	assert.Error(t, err)
}

func TestTrack(t *testing.T) {
	app, _ := newTestApp(t, func(c *Context) {
		c.Config.Tracking.FramesPerSec = 20
	})
	signal := vowelSignal(t, 700, 1200, 500*time.Millisecond)

	report, err := app.Track(context.Background(), signal, "vowel")
	require.NoError(t, err)
	assert.Equal(t, 10, report.FrameCount)
	assert.Equal(t, 551, report.Hop)
	require.NotNil(t, report.Summary)
	assert.Equal(t, 10, report.Summary.VoicedFrames)
	assert.Nil(t, report.Frames)
	assert.InEpsilon(t, 700, report.Summary.Formants[0].Frequency.Median, 0.05)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = app.Track(ctx, signal, "vowel")
	assert.Error(t, err)
}

func TestSynthesizeSavesAndAnalyzes(t *testing.T) {
	app, _ := newTestApp(t, nil)
	path := filepath.Join(t.TempDir(), "vowel.yaml")

	p := synth.DefaultParams()
	p.F1, p.F2 = 700, 1200
	report, err := app.Synthesize(p, path, true)
	require.NoError(t, err)

	assert.Equal(t, p.Samples(), report.Samples)
	assert.Equal(t, "ʌ", report.Vowel.Symbol)
	require.NotNil(t, report.Analysis)
	assert.Equal(t, 551, report.Analysis.WindowSamples)

	loaded, err := samples.Load(path, 0)
	require.NoError(t, err)
	assert.Equal(t, p.SampleRate, loaded.SampleRate)
	assert.Len(t, loaded.Samples, report.Samples)

	p.Pitch = 0
	_, err = app.Synthesize(p, "", false)
	assert.Error(t, err)
}

func TestOutputWritesFormattedData(t *testing.T) {
	app, out := newTestApp(t, func(c *Context) { c.OutputFormat = "json" })
	require.NoError(t, app.Output(map[string]any{"formants": []float64{700, 1200}}))

	var decoded map[string][]float64
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, []float64{700, 1200}, decoded["formants"])

	path := filepath.Join(t.TempDir(), "nested", "report.yaml")
	fileApp, stdout := newTestApp(t, func(c *Context) {
		c.OutputFormat = "yaml"
		c.OutputFile = path
	})
	require.NoError(t, fileApp.Output(map[string]any{"silent": true}))
	assert.Zero(t, stdout.Len())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "silent: true\n", string(data))
}
