package configs

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/formant-tracker/pkg/audio/config"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/synth"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfigFrom(viper.New())
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	defaults := GetDefaultConfig()
	assert.Equal(t, defaults.LogLevel, cfg.LogLevel)
	assert.Equal(t, defaults.OutputFormat, cfg.OutputFormat)
	assert.Equal(t, defaults.Audio, cfg.Audio)
	assert.Equal(t, defaults.Analysis, cfg.Analysis)
	assert.Equal(t, defaults.Tracking, cfg.Tracking)
	assert.Equal(t, defaults.Synth, cfg.Synth)
	assert.Equal(t, defaults.Output, cfg.Output)
	assert.False(t, cfg.Analysis.Filter.Enabled)
}

func TestLoadConfigFromYAML(t *testing.T) {
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
log_level: debug
output_format: json
audio:
  sample_rate: 16000
  window: 30ms
analysis:
  model_order: 12
  filter:
    enabled: true
tracking:
  frames_per_second: 100
synth:
  f1: 300
  f2: 2300
  duration: 500ms
  mode: parallel
`)))

	cfg, err := LoadConfigFrom(v)
	require.NoError(t, err)
	require.NoError(t, ValidateConfig(cfg))

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.Equal(t, 16000.0, cfg.Audio.SampleRate)
	assert.Equal(t, 30*time.Millisecond, cfg.Audio.Window)
	assert.Equal(t, time.Second, cfg.Audio.BufferDuration)

	assert.Equal(t, 12, cfg.Analysis.ModelOrder)
	assert.True(t, cfg.Analysis.Filter.Enabled)
	assert.Equal(t, config.DefaultFilterMaxFrequency, cfg.Analysis.Filter.MaxFrequency)
	assert.Equal(t, config.DefaultPreEmphasisFrequency, cfg.Analysis.PreEmphasisFrequency)

	assert.Equal(t, 100.0, cfg.Tracking.FramesPerSec)
	assert.Equal(t, 3, cfg.Tracking.MaxFormants)

	assert.Equal(t, 300.0, cfg.Synth.F1)
	assert.Equal(t, 2300.0, cfg.Synth.F2)
	assert.Equal(t, 500*time.Millisecond, cfg.Synth.Duration)
	assert.Equal(t, synth.ModeParallel, cfg.Synth.Mode)
	assert.Equal(t, synth.DefaultPitch, cfg.Synth.Pitch)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }},
		{"output format", func(c *Config) { c.OutputFormat = "xml" }},
		{"sample rate", func(c *Config) { c.Audio.SampleRate = 0 }},
		{"window", func(c *Config) { c.Audio.Window = 0 }},
		{"buffer shorter than window", func(c *Config) { c.Audio.BufferDuration = 10 * time.Millisecond }},
		{"envelope size", func(c *Config) { c.Audio.EnvelopeSize = 1 }},
		{"model order", func(c *Config) { c.Analysis.ModelOrder = 0 }},
		{"tracking rate", func(c *Config) { c.Tracking.FramesPerSec = 0 }},
		{"synth pitch", func(c *Config) { c.Synth.Pitch = -1 }},
	}

	require.NoError(t, ValidateConfig(GetDefaultConfig()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.modify(cfg)
			assert.Error(t, ValidateConfig(cfg))
		})
	}
}

func TestHighResolutionAnalysisConfig(t *testing.T) {
	cfg := HighResolutionAnalysisConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 16, cfg.ModelOrder)
	assert.True(t, cfg.Filter.Enabled)
}
