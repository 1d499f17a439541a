package tracking

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/formant"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

func TestCalculateStats(t *testing.T) {
	mc := NewMetricsCalculator(&logging.NoOpLogger{})

	stats := mc.calculateStats([]float64{4, 1, 3, 2, 5})
	assert.Equal(t, 5, stats.Count)
	assert.InDelta(t, 3.0, stats.Mean, 1e-12)
	assert.InDelta(t, 3.0, stats.Median, 1e-12)
	assert.InDelta(t, 4.8, stats.P95, 1e-12)
	assert.Equal(t, 1.0, stats.Min)
	assert.Equal(t, 5.0, stats.Max)
	assert.InDelta(t, math.Sqrt(2), stats.StdDev, 1e-12)

	empty := mc.calculateStats(nil)
	assert.Zero(t, empty.Count)
	assert.Zero(t, empty.Mean)

	single := mc.calculateStats([]float64{7})
	assert.Equal(t, 7.0, single.Median)
	assert.Equal(t, 7.0, single.P95)
	assert.Zero(t, single.StdDev)
}

func TestPercentileInterpolates(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}
	assert.InDelta(t, 25.0, percentile(sorted, 50), 1e-12)
	assert.InDelta(t, 10.0, percentile(sorted, 0), 1e-12)
	assert.InDelta(t, 40.0, percentile(sorted, 100), 1e-12)
	assert.Zero(t, percentile(nil, 50))

	odd := []float64{1, 2, 3, 4, 5}
	assert.InDelta(t, 3.0, percentile(odd, 50), 1e-12)
	assert.InDelta(t, 2.5, stat.Quantile(0.5, stat.LinInterp, odd, nil), 1e-12)
	assert.InDelta(t, 4.8, percentile(odd, 95), 1e-12)
	assert.InDelta(t, 4.75, stat.Quantile(0.95, stat.LinInterp, odd, nil), 1e-12)
}

func TestSanitizeStats(t *testing.T) {
	stats := sanitizeStats(&Stats{Mean: math.NaN(), Max: math.Inf(1), Min: 2})
	assert.Zero(t, stats.Mean)
	assert.Zero(t, stats.Max)
	assert.Equal(t, 2.0, stats.Min)
}

func TestSummarizeSlots(t *testing.T) {
	mc := NewMetricsCalculator(&logging.NoOpLogger{})
	frames := []*Frame{
		{Index: 0, Silent: true, Formants: []formant.Formant{}},
		{Index: 1, Formants: []formant.Formant{{Frequency: 0, Bandwidth: 0}, {Frequency: 500, Bandwidth: 60}, {Frequency: 1500, Bandwidth: 90}}},
		{Index: 2, Formants: []formant.Formant{{Frequency: 520, Bandwidth: 70}, {Frequency: 1480, Bandwidth: 110}}, Issues: []string{"NON_CONVERGENCE"}},
		{Index: 3, Formants: []formant.Formant{{Frequency: 510, Bandwidth: 65}}, Elapsed: 2 * time.Millisecond},
	}

	summary := mc.Summarize(frames, 2)
	assert.Equal(t, 4, summary.TotalFrames)
	assert.Equal(t, 3, summary.VoicedFrames)
	assert.Equal(t, 1, summary.SilentFrames)
	assert.Equal(t, 1, summary.FramesWithIssues)

	require.Len(t, summary.Formants, 2)
	f1, f2 := summary.Formants[0], summary.Formants[1]
	assert.Equal(t, 3, f1.Frequency.Count)
	assert.InDelta(t, 510, f1.Frequency.Mean, 1e-9)
	assert.InDelta(t, 510, f1.Frequency.Median, 1e-9)
	assert.Equal(t, 2, f2.Frequency.Count)
	assert.InDelta(t, 1490, f2.Frequency.Mean, 1e-9)
	assert.InDelta(t, 100, f2.Bandwidth.Mean, 1e-9)

	assert.Equal(t, 3, summary.VocalTractLength.Count)
	assert.Equal(t, 4, summary.ProcessingTime.Count)
	assert.InDelta(t, 2.0, summary.ProcessingTime.Max, 1e-9)
}
