package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/formant-tracker/configs"
	"github.com/RyanBlaney/formant-tracker/internal/app"
)

const envPrefix = "FORMANT_TRACKER"

var (
	configFile   string
	verbose      bool
	logLevel     string
	logFormat    string
	outputFormat string
	outputFile   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "formant-tracker",
	Short: "Vocal tract formant analysis",
	Long: `Estimate the formant frequencies of speech and sung vowels.

Each analysis window is Gaussian windowed and pre-emphasized, fitted with an
all-pole model by Burg's method, and the roots of the predictor polynomial are
found with Bairstow's method and mapped to frequency/bandwidth pairs.

Key features:
- Single window analysis with optional LPC envelope peaks
- Frame-by-frame tracking with per-formant statistics
- Vowel synthesis from the IPA chart for testing
- Sample files in yaml, json, text or raw float32`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"config file (default is $HOME/.config/formant-tracker/formant-tracker.yaml)")

	// Output and logging flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console",
		"log format (console, json)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table",
		"output format (json, table, csv, yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFile, "output-file", "",
		"write results to a file instead of stdout")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("output_format", rootCmd.PersistentFlags().Lookup("output"))
	viper.BindPFlag("output.file", rootCmd.PersistentFlags().Lookup("output-file"))
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	if configFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(configFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		// Search config in home directory and /etc
		viper.AddConfigPath(filepath.Join(home, ".config", "formant-tracker"))
		viper.AddConfigPath("/etc/formant-tracker")
		viper.AddConfigPath("./configs")
		viper.SetConfigName("formant-tracker")
		viper.SetConfigType("yaml")
	}

	// Environment variable support
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
		}
	} else if configFile != "" {
		fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", configFile, err)
		os.Exit(1)
	}
}

// initializeConfig initializes configuration after flags are parsed
func initializeConfig(cmd *cobra.Command) error {
	return bindFlags(cmd, viper.GetViper())
}

// bindFlags binds each cobra flag to its associated viper configuration
func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	var lastErr error

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		envVarSuffix := strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_"))

		// Bind to environment variable
		if err := v.BindEnv(f.Name, envPrefix+"_"+envVarSuffix); err != nil {
			lastErr = err
		}

		// Apply the viper value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(f.Name) {
			val := v.Get(f.Name)
			if _, section := val.(map[string]any); section {
				return
			}
			if err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val)); err != nil {
				lastErr = err
			}
		}
	})

	return lastErr
}

// loadConfig decodes the effective configuration, letting the caller adjust
// it from command flags before the app is built
func loadConfig() (*configs.Config, error) {
	config, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return config, nil
}

// newApp builds the application for a command run
func newApp(cmd *cobra.Command, config *configs.Config) (*app.App, error) {
	return app.NewApp(&app.Context{
		Out:    cmd.OutOrStdout(),
		Config: config,
	})
}
