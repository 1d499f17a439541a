package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/formant-tracker/configs"
	"github.com/RyanBlaney/formant-tracker/internal/app"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/samples"
)

var (
	analyzeSampleRate     float64
	analyzeWindow         time.Duration
	analyzeSpectrum       bool
	analyzeHighResolution bool
	analyzeFilter         bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Estimate the formants of one window of audio",
	Long: `Load a samples file and estimate its formant frequencies and bandwidths.

By default the whole file is analyzed as one window. With --window only the
most recent part of the signal is analyzed, the way a live display reads its
capture buffer.

Examples:
  formant-tracker analyze vowel.yaml
  formant-tracker analyze --window 50ms --spectrum -o json recording.f32 --sample-rate 16000`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Float64Var(&analyzeSampleRate, "sample-rate", 0,
		"sample rate for files that do not carry one (default audio.sample_rate)")
	analyzeCmd.Flags().DurationVarP(&analyzeWindow, "window", "w", 0,
		"analyze only the last window of the signal (0 analyzes all of it)")
	analyzeCmd.Flags().BoolVar(&analyzeSpectrum, "spectrum", false,
		"include the peaks of the LPC spectral envelope")
	analyzeCmd.Flags().BoolVar(&analyzeHighResolution, "high-resolution", false,
		"use a higher model order with the speech-range filter, for high sample rates")
	analyzeCmd.Flags().BoolVar(&analyzeFilter, "filter", false,
		"drop candidates outside the speech frequency range or with wide bandwidths")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	applyAnalysisFlags(config)

	application, err := newApp(cmd, config)
	if err != nil {
		return err
	}

	signal, err := loadSignal(args[0], analyzeSampleRate, config)
	if err != nil {
		return err
	}

	report, err := application.Analyze(signal, app.AnalyzeOptions{
		Source:   args[0],
		Window:   analyzeWindow,
		Spectrum: analyzeSpectrum,
	})
	if err != nil {
		return err
	}

	return application.Output(report)
}

func applyAnalysisFlags(config *configs.Config) {
	if analyzeHighResolution {
		config.Analysis = configs.HighResolutionAnalysisConfig()
	}
	if analyzeFilter {
		config.Analysis.Filter.Enabled = true
	}
}

// loadSignal reads a samples file, falling back to the flag or configured rate
func loadSignal(path string, sampleRate float64, config *configs.Config) (*samples.Signal, error) {
	if sampleRate <= 0 {
		sampleRate = config.Audio.SampleRate
	}

	signal, err := samples.Load(path, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("failed to load samples: %w", err)
	}
	return signal, nil
}
