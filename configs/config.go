package configs

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/RyanBlaney/formant-tracker/internal/tracking"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/config"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/synth"
	"github.com/RyanBlaney/formant-tracker/pkg/output"
	"github.com/RyanBlaney/formant-tracker/pkg/zaplog"
)

// Config represents the application configuration
type Config struct {
	// Application settings
	Verbose      bool   `mapstructure:"verbose"`
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	OutputFormat string `mapstructure:"output_format"`

	// Audio input configuration
	Audio AudioConfig `mapstructure:"audio"`

	// Formant pipeline configuration
	Analysis config.AnalysisConfig `mapstructure:"analysis"`

	// Frame tracker configuration
	Tracking tracking.Config `mapstructure:"tracking"`

	// Vowel synthesizer defaults
	Synth synth.Params `mapstructure:"synth"`

	// Output configuration
	Output OutputConfig `mapstructure:"output"`
}

// AudioConfig contains audio input settings
type AudioConfig struct {
	SampleRate     float64       `mapstructure:"sample_rate"` // used when a samples file carries none
	Window         time.Duration `mapstructure:"window"`
	BufferDuration time.Duration `mapstructure:"buffer_duration"`
	EnvelopeSize   int           `mapstructure:"envelope_size"`
}

// OutputConfig contains output formatting settings
type OutputConfig struct {
	Pretty bool   `mapstructure:"pretty"`
	File   string `mapstructure:"file"`
}

// LoadConfig loads configuration from the global viper instance
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(viper.GetViper())
}

// LoadConfigFrom fills in defaults on v and decodes it
func LoadConfigFrom(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode configuration: %w", err)
	}

	return config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if _, err := zaplog.ParseLevel(config.LogLevel); err != nil {
		return err
	}

	if _, err := output.NewFormatter(config.OutputFormat); err != nil {
		return err
	}

	if config.Audio.SampleRate <= 0 {
		return fmt.Errorf("audio sample rate must be positive")
	}

	if config.Audio.Window <= 0 {
		return fmt.Errorf("audio window must be positive")
	}

	if config.Audio.BufferDuration < config.Audio.Window {
		return fmt.Errorf("audio buffer duration must hold at least one window")
	}

	if config.Audio.EnvelopeSize < 2 {
		return fmt.Errorf("envelope size must be at least 2")
	}

	if err := config.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis: %w", err)
	}

	if err := config.Tracking.Validate(); err != nil {
		return fmt.Errorf("tracking: %w", err)
	}

	if err := config.Synth.Validate(); err != nil {
		return fmt.Errorf("synth: %w", err)
	}

	return nil
}
