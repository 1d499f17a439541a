package cmd

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

var (
	trackSampleRate  float64
	trackWindow      time.Duration
	trackFPS         float64
	trackConcurrency int
	trackFormants    int
	trackFilter      bool
)

var trackCmd = &cobra.Command{
	Use:   "track [file]",
	Short: "Follow formants frame by frame over a whole file",
	Long: `Split a samples file into overlapping frames and estimate the formants of
each one concurrently. Frames are --window long and start every 1/--fps
seconds. The summary reports statistics per formant slot; --verbose adds the
per-frame results.

Examples:
  formant-tracker track speech.txt --sample-rate 16000
  formant-tracker track vowel.yaml --fps 100 -o json -v`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	trackCmd.Flags().Float64Var(&trackSampleRate, "sample-rate", 0,
		"sample rate for files that do not carry one (default audio.sample_rate)")
	trackCmd.Flags().DurationVarP(&trackWindow, "window", "w", 0,
		"frame length (default tracking.window)")
	trackCmd.Flags().Float64Var(&trackFPS, "fps", 0,
		"frames per second (default tracking.frames_per_second)")
	trackCmd.Flags().IntVar(&trackConcurrency, "concurrency", 0,
		"frames analyzed in parallel (default tracking.max_concurrency)")
	trackCmd.Flags().IntVar(&trackFormants, "formants", 0,
		"formant slots summarized (default tracking.max_formants)")
	trackCmd.Flags().BoolVar(&trackFilter, "filter", false,
		"drop candidates outside the speech frequency range or with wide bandwidths")
}

func runTrack(cmd *cobra.Command, args []string) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}

	if trackWindow > 0 {
		config.Tracking.Window = trackWindow
	}
	if trackFPS > 0 {
		config.Tracking.FramesPerSec = trackFPS
	}
	if trackConcurrency > 0 {
		config.Tracking.MaxConcurrency = trackConcurrency
	}
	if trackFormants > 0 {
		config.Tracking.MaxFormants = trackFormants
	}
	if trackFilter {
		config.Analysis.Filter.Enabled = true
	}

	application, err := newApp(cmd, config)
	if err != nil {
		return err
	}

	sig, err := loadSignal(args[0], trackSampleRate, config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := application.Track(ctx, sig, args[0])
	if err != nil {
		return err
	}

	return application.Output(report)
}
