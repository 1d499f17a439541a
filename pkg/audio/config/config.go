package config

import "fmt"

// Pipeline defaults
const (
	DefaultModelOrder           = 10
	DefaultPreEmphasisFrequency = 50.0 // Hz
	DefaultRootTolerance        = 1e-6
	DefaultRootMaxIterations    = 100

	DefaultFilterMinFrequency = 90.0   // Hz
	DefaultFilterMaxFrequency = 3500.0 // Hz
	DefaultFilterMaxBandwidth = 1000.0 // Hz
)

// AnalysisConfig configures one run of the formant pipeline
type AnalysisConfig struct {
	// All-pole model
	ModelOrder           int     `json:"model_order" yaml:"model_order" mapstructure:"model_order"`
	PreEmphasisFrequency float64 `json:"pre_emphasis_frequency" yaml:"pre_emphasis_frequency" mapstructure:"pre_emphasis_frequency"` // corner frequency (Hz)

	// Bairstow iteration budget
	RootTolerance     float64 `json:"root_tolerance" yaml:"root_tolerance" mapstructure:"root_tolerance"`
	RootMaxIterations int     `json:"root_max_iterations" yaml:"root_max_iterations" mapstructure:"root_max_iterations"`

	// Candidate gating
	Filter FilterConfig `json:"filter" yaml:"filter" mapstructure:"filter"`
}

// FilterConfig gates formant candidates by frequency and bandwidth.
// Disabled by default: every retained root is reported.
type FilterConfig struct {
	Enabled      bool    `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	MinFrequency float64 `json:"min_frequency" yaml:"min_frequency" mapstructure:"min_frequency"` // exclusive (Hz)
	MaxFrequency float64 `json:"max_frequency" yaml:"max_frequency" mapstructure:"max_frequency"` // exclusive (Hz)
	MaxBandwidth float64 `json:"max_bandwidth" yaml:"max_bandwidth" mapstructure:"max_bandwidth"` // exclusive (Hz)
}

// DefaultAnalysisConfig returns the configuration used by the live pipeline
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		ModelOrder:           DefaultModelOrder,
		PreEmphasisFrequency: DefaultPreEmphasisFrequency,
		RootTolerance:        DefaultRootTolerance,
		RootMaxIterations:    DefaultRootMaxIterations,
		Filter:               DefaultFilterConfig(),
	}
}

// DefaultFilterConfig returns the disabled gate with the usual speech thresholds
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		Enabled:      false,
		MinFrequency: DefaultFilterMinFrequency,
		MaxFrequency: DefaultFilterMaxFrequency,
		MaxBandwidth: DefaultFilterMaxBandwidth,
	}
}

// Accepts reports whether a candidate passes the gate
func (f FilterConfig) Accepts(frequency, bandwidth float64) bool {
	if !f.Enabled {
		return true
	}
	return frequency > f.MinFrequency && frequency < f.MaxFrequency && bandwidth < f.MaxBandwidth
}

// Validate checks the configuration
func (c *AnalysisConfig) Validate() error {
	if c.ModelOrder < 1 {
		return fmt.Errorf("model order must be positive, got %d", c.ModelOrder)
	}
	if c.PreEmphasisFrequency < 0 {
		return fmt.Errorf("pre-emphasis frequency cannot be negative")
	}
	if c.RootTolerance <= 0 {
		return fmt.Errorf("root tolerance must be positive")
	}
	if c.RootMaxIterations < 1 {
		return fmt.Errorf("root iteration budget must be positive")
	}
	if c.Filter.Enabled {
		if c.Filter.MinFrequency >= c.Filter.MaxFrequency {
			return fmt.Errorf("filter min frequency must be below max frequency")
		}
		if c.Filter.MaxBandwidth <= 0 {
			return fmt.Errorf("filter max bandwidth must be positive")
		}
	}
	return nil
}
