package tracking

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/formant"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

// MetricsCalculator summarizes tracked frames
type MetricsCalculator struct {
	logger logging.Logger
}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator(logger logging.Logger) *MetricsCalculator {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}

	return &MetricsCalculator{
		logger: logger,
	}
}

// Stats represents statistical measures of a series
type Stats struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	Median float64 `json:"median" yaml:"median"`
	P95    float64 `json:"p95" yaml:"p95"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
	StdDev float64 `json:"std_dev" yaml:"std_dev"`
	Count  int     `json:"count" yaml:"count"`
}

// FormantStats holds frequency and bandwidth statistics for one formant slot
type FormantStats struct {
	Name      string `json:"name" yaml:"name"` // F1, F2, ...
	Frequency *Stats `json:"frequency" yaml:"frequency"`
	Bandwidth *Stats `json:"bandwidth" yaml:"bandwidth"`
}

// Summary aggregates a whole track
type Summary struct {
	TotalFrames      int             `json:"total_frames" yaml:"total_frames"`
	VoicedFrames     int             `json:"voiced_frames" yaml:"voiced_frames"`
	SilentFrames     int             `json:"silent_frames" yaml:"silent_frames"`
	FramesWithIssues int             `json:"frames_with_issues" yaml:"frames_with_issues"`
	Formants         []*FormantStats `json:"formants" yaml:"formants"`
	VocalTractLength *Stats          `json:"vocal_tract_length" yaml:"vocal_tract_length"` // cm
	ProcessingTime   *Stats          `json:"processing_time" yaml:"processing_time"`       // ms per frame
}

// Summarize computes per-formant statistics over the voiced frames. Formant
// slots are taken in ascending frequency order, skipping 0 Hz entries left by
// real roots.
func (mc *MetricsCalculator) Summarize(frames []*Frame, maxFormants int) *Summary {
	summary := &Summary{TotalFrames: len(frames)}

	freqs := make([][]float64, maxFormants)
	bws := make([][]float64, maxFormants)
	var tractLengths, elapsed []float64

	for _, frame := range frames {
		if frame == nil {
			continue
		}
		elapsed = append(elapsed, float64(frame.Elapsed.Microseconds())/1000)
		if len(frame.Issues) > 0 {
			summary.FramesWithIssues++
		}
		if frame.Silent || len(frame.Formants) == 0 {
			summary.SilentFrames++
			continue
		}
		summary.VoicedFrames++

		slot := 0
		var voiced []float64
		for _, f := range frame.Formants {
			if f.Frequency <= 0 {
				continue
			}
			voiced = append(voiced, f.Frequency)
			if slot < maxFormants {
				freqs[slot] = append(freqs[slot], f.Frequency)
				bws[slot] = append(bws[slot], f.Bandwidth)
				slot++
			}
		}
		tractLengths = append(tractLengths, formant.EstimateVocalTractLength(voiced))
	}

	for i := 0; i < maxFormants; i++ {
		summary.Formants = append(summary.Formants, &FormantStats{
			Name:      fmt.Sprintf("F%d", i+1),
			Frequency: mc.calculateStats(freqs[i]),
			Bandwidth: mc.calculateStats(bws[i]),
		})
	}
	summary.VocalTractLength = mc.calculateStats(tractLengths)
	summary.ProcessingTime = mc.calculateStats(elapsed)

	mc.logger.Debug("Track summary calculated", logging.Fields{
		"frames": summary.TotalFrames,
		"voiced": summary.VoicedFrames,
	})

	return summary
}

// calculateStats calculates statistical measures for a dataset
func (mc *MetricsCalculator) calculateStats(data []float64) *Stats {
	if len(data) == 0 {
		return &Stats{Count: 0}
	}

	sortedData := make([]float64, len(data))
	copy(sortedData, data)
	sort.Float64s(sortedData)

	mean, std := stat.PopMeanStdDev(data, nil)
	stats := &Stats{
		Count:  len(data),
		Mean:   mean,
		StdDev: std,
		Min:    floats.Min(data),
		Max:    floats.Max(data),
		Median: percentile(sortedData, 50),
		P95:    percentile(sortedData, 95),
	}

	return sanitizeStats(stats)
}

// sanitizeStats replaces infinite and NaN values so the stats always serialize
func sanitizeStats(stats *Stats) *Stats {
	for _, v := range []*float64{&stats.Mean, &stats.Median, &stats.P95, &stats.Min, &stats.Max, &stats.StdDev} {
		if math.IsInf(*v, 0) || math.IsNaN(*v) {
			*v = 0
		}
	}
	return stats
}

// percentile calculates the specified percentile of sorted data,
// interpolating between neighbouring ranks at (p/100)*(n-1). Kept on purpose
// instead of stat.Quantile: LinInterp interpolates the empirical CDF at p*n,
// which puts the median of 1..5 at 2.5.
func percentile(sortedData []float64, p float64) float64 {
	if len(sortedData) == 0 {
		return 0
	}
	if len(sortedData) == 1 {
		return sortedData[0]
	}

	index := (p / 100.0) * float64(len(sortedData)-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))
	if upper >= len(sortedData) {
		return sortedData[len(sortedData)-1]
	}

	weight := index - float64(lower)
	return sortedData[lower]*(1-weight) + sortedData[upper]*weight
}
