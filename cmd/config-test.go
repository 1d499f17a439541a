package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/formant-tracker/configs"
)

// configTestCmd represents the config test command
var configTestCmd = &cobra.Command{
	Use:   "config-test",
	Short: "Test and display all configuration values",
	Long: `Test configuration loading and display all values to verify proper parsing.

This command loads the configuration, validates it and displays every value in
a structured format to help verify that your YAML configuration is being
parsed correctly.

Examples:
  # Test with default config file
  formant-tracker config-test

  # Test with specific config file
  formant-tracker --config /path/to/config.yaml config-test`,
	Args: cobra.NoArgs,
	RunE: runConfigTest,
}

func init() {
	rootCmd.AddCommand(configTestCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "FORMANT TRACKER CONFIGURATION TEST")
	fmt.Fprintln(w, strings.Repeat("=", 80))

	config, err := configs.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	printSection(w, "APPLICATION SETTINGS")
	printKeyValue(w, "Verbose", fmt.Sprintf("%t", config.Verbose))
	printKeyValue(w, "Log Level", config.LogLevel)
	printKeyValue(w, "Log Format", config.LogFormat)
	printKeyValue(w, "Output Format", config.OutputFormat)
	printKeyValue(w, "Output Pretty", fmt.Sprintf("%t", config.Output.Pretty))
	printKeyValue(w, "Output File", config.Output.File)

	printSection(w, "AUDIO CONFIGURATION")
	printKeyValue(w, "Sample Rate", fmt.Sprintf("%.0f Hz", config.Audio.SampleRate))
	printKeyValue(w, "Window", config.Audio.Window.String())
	printKeyValue(w, "Buffer Duration", config.Audio.BufferDuration.String())
	printKeyValue(w, "Envelope Size", fmt.Sprintf("%d", config.Audio.EnvelopeSize))

	printSection(w, "ANALYSIS CONFIGURATION")
	printKeyValue(w, "Model Order", fmt.Sprintf("%d", config.Analysis.ModelOrder))
	printKeyValue(w, "Pre-emphasis Frequency", fmt.Sprintf("%.1f Hz", config.Analysis.PreEmphasisFrequency))
	printKeyValue(w, "Root Tolerance", fmt.Sprintf("%g", config.Analysis.RootTolerance))
	printKeyValue(w, "Root Max Iterations", fmt.Sprintf("%d", config.Analysis.RootMaxIterations))
	printKeyValue(w, "Filter", "")
	printKeyValue(w, "  Enabled", fmt.Sprintf("%t", config.Analysis.Filter.Enabled))
	printKeyValue(w, "  Frequency Range", fmt.Sprintf("%.0f - %.0f Hz",
		config.Analysis.Filter.MinFrequency, config.Analysis.Filter.MaxFrequency))
	printKeyValue(w, "  Max Bandwidth", fmt.Sprintf("%.0f Hz", config.Analysis.Filter.MaxBandwidth))

	printSection(w, "TRACKING CONFIGURATION")
	printKeyValue(w, "Window", config.Tracking.Window.String())
	printKeyValue(w, "Frames Per Second", fmt.Sprintf("%.1f", config.Tracking.FramesPerSec))
	printKeyValue(w, "Max Concurrency", fmt.Sprintf("%d", config.Tracking.MaxConcurrency))
	printKeyValue(w, "Max Formants", fmt.Sprintf("%d", config.Tracking.MaxFormants))

	printSection(w, "SYNTH CONFIGURATION")
	printKeyValue(w, "Formants", fmt.Sprintf("F1 %.0f Hz (bw %.0f), F2 %.0f Hz (bw %.0f)",
		config.Synth.F1, config.Synth.B1, config.Synth.F2, config.Synth.B2))
	printKeyValue(w, "Pitch", fmt.Sprintf("%.1f Hz", config.Synth.Pitch))
	printKeyValue(w, "Sample Rate", fmt.Sprintf("%.0f Hz", config.Synth.SampleRate))
	printKeyValue(w, "Duration", config.Synth.Duration.String())
	printKeyValue(w, "Mode", string(config.Synth.Mode))
	printKeyValue(w, "Peak", fmt.Sprintf("%.2f", config.Synth.Peak))

	printSection(w, "VALIDATION")
	if err := configs.ValidateConfig(config); err != nil {
		printError(w, "%v", err)
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	printSuccess(w, "configuration is valid")

	fmt.Fprintln(w)
	fmt.Fprintln(w, ColorGreen+strings.Repeat("-", 80))
	fmt.Fprintln(w, "CONFIGURATION TEST COMPLETED SUCCESSFULLY")
	fmt.Fprintf(w, "Config file: %s\n", getConfigFilePath())
	fmt.Fprintln(w, strings.Repeat("=", 80)+ColorReset)

	return nil
}

func getConfigFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return "(none, using defaults)"
}
