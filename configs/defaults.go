package configs

import (
	"time"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/formant-tracker/internal/tracking"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/capture"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/config"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/lpc"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/synth"
)

// setDefaults sets default configuration values for all components
func setDefaults(v *viper.Viper) {
	// Application defaults
	if !v.IsSet("verbose") {
		v.Set("verbose", false)
	}
	if !v.IsSet("log_level") {
		v.Set("log_level", "info")
	}
	if !v.IsSet("log_format") {
		v.Set("log_format", "console")
	}
	if !v.IsSet("output_format") {
		v.Set("output_format", "table")
	}

	// Audio input defaults
	if !v.IsSet("audio.sample_rate") {
		v.Set("audio.sample_rate", 44100.0)
	}
	if !v.IsSet("audio.window") {
		v.Set("audio.window", capture.DefaultWindow)
	}
	if !v.IsSet("audio.buffer_duration") {
		v.Set("audio.buffer_duration", 1*time.Second)
	}
	if !v.IsSet("audio.envelope_size") {
		v.Set("audio.envelope_size", lpc.DefaultEnvelopeSize)
	}

	setAnalysisDefaults(v)
	setTrackingDefaults(v)
	setSynthDefaults(v)

	// Output defaults
	if !v.IsSet("output.pretty") {
		v.Set("output.pretty", true)
	}
	if !v.IsSet("output.file") {
		v.Set("output.file", "")
	}
}

// setAnalysisDefaults sets formant pipeline defaults
func setAnalysisDefaults(v *viper.Viper) {
	if !v.IsSet("analysis.model_order") {
		v.Set("analysis.model_order", config.DefaultModelOrder)
	}
	if !v.IsSet("analysis.pre_emphasis_frequency") {
		v.Set("analysis.pre_emphasis_frequency", config.DefaultPreEmphasisFrequency)
	}
	if !v.IsSet("analysis.root_tolerance") {
		v.Set("analysis.root_tolerance", config.DefaultRootTolerance)
	}
	if !v.IsSet("analysis.root_max_iterations") {
		v.Set("analysis.root_max_iterations", config.DefaultRootMaxIterations)
	}

	// Candidate filter, off unless asked for
	if !v.IsSet("analysis.filter.enabled") {
		v.Set("analysis.filter.enabled", false)
	}
	if !v.IsSet("analysis.filter.min_frequency") {
		v.Set("analysis.filter.min_frequency", config.DefaultFilterMinFrequency)
	}
	if !v.IsSet("analysis.filter.max_frequency") {
		v.Set("analysis.filter.max_frequency", config.DefaultFilterMaxFrequency)
	}
	if !v.IsSet("analysis.filter.max_bandwidth") {
		v.Set("analysis.filter.max_bandwidth", config.DefaultFilterMaxBandwidth)
	}
}

// setTrackingDefaults sets frame tracker defaults
func setTrackingDefaults(v *viper.Viper) {
	defaults := tracking.DefaultConfig()

	if !v.IsSet("tracking.window") {
		v.Set("tracking.window", defaults.Window)
	}
	if !v.IsSet("tracking.frames_per_second") {
		v.Set("tracking.frames_per_second", defaults.FramesPerSec)
	}
	if !v.IsSet("tracking.max_concurrency") {
		v.Set("tracking.max_concurrency", defaults.MaxConcurrency)
	}
	if !v.IsSet("tracking.max_formants") {
		v.Set("tracking.max_formants", defaults.MaxFormants)
	}
}

// setSynthDefaults sets vowel synthesizer defaults
func setSynthDefaults(v *viper.Viper) {
	defaults := synth.DefaultParams()

	if !v.IsSet("synth.f1") {
		v.Set("synth.f1", defaults.F1)
	}
	if !v.IsSet("synth.f2") {
		v.Set("synth.f2", defaults.F2)
	}
	if !v.IsSet("synth.b1") {
		v.Set("synth.b1", defaults.B1)
	}
	if !v.IsSet("synth.b2") {
		v.Set("synth.b2", defaults.B2)
	}
	if !v.IsSet("synth.pitch") {
		v.Set("synth.pitch", defaults.Pitch)
	}
	if !v.IsSet("synth.sample_rate") {
		v.Set("synth.sample_rate", defaults.SampleRate)
	}
	if !v.IsSet("synth.duration") {
		v.Set("synth.duration", defaults.Duration)
	}
	if !v.IsSet("synth.mode") {
		v.Set("synth.mode", string(defaults.Mode))
	}
	if !v.IsSet("synth.peak") {
		v.Set("synth.peak", defaults.Peak)
	}
}

// GetDefaultConfig returns a Config struct with all default values set
func GetDefaultConfig() *Config {
	return &Config{
		// Application settings defaults
		Verbose:      false,
		LogLevel:     "info",
		LogFormat:    "console",
		OutputFormat: "table",

		// Audio input defaults
		Audio: GetDefaultAudioConfig(),

		// Pipeline defaults
		Analysis: *config.DefaultAnalysisConfig(),

		// Tracker defaults
		Tracking: tracking.DefaultConfig(),

		// Synthesizer defaults
		Synth: synth.DefaultParams(),

		// Output configuration defaults
		Output: GetDefaultOutputConfig(),
	}
}

// GetDefaultAudioConfig returns default audio input settings
func GetDefaultAudioConfig() AudioConfig {
	return AudioConfig{
		SampleRate:     44100,
		Window:         capture.DefaultWindow,
		BufferDuration: 1 * time.Second,
		EnvelopeSize:   lpc.DefaultEnvelopeSize,
	}
}

// GetDefaultOutputConfig returns default output formatting settings
func GetDefaultOutputConfig() OutputConfig {
	return OutputConfig{
		Pretty: true,
	}
}

// HighResolutionAnalysisConfig returns a pipeline tuned for high sample rates,
// with a larger model order and the speech-range filter enabled.
func HighResolutionAnalysisConfig() config.AnalysisConfig {
	cfg := *config.DefaultAnalysisConfig()
	cfg.ModelOrder = 16
	cfg.Filter.Enabled = true
	return cfg
}
