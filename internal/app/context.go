package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/RyanBlaney/formant-tracker/configs"
	"github.com/RyanBlaney/formant-tracker/pkg/audio/formant"
	"github.com/RyanBlaney/formant-tracker/pkg/output"
	"github.com/RyanBlaney/formant-tracker/pkg/zaplog"
	"github.com/RyanBlaney/latency-benchmark-common/logging"
)

// Context holds the CLI arguments and runtime state shared by commands
type Context struct {
	// CLI arguments
	OutputFile   string
	OutputFormat string
	Verbose      bool

	// Runtime context
	Out    io.Writer // defaults to os.Stdout
	Logger logging.Logger
	Config *configs.Config
}

// App handles the application lifecycle for one command run
type App struct {
	ctx       *Context
	config    *configs.Config
	extractor *formant.Extractor
	logger    logging.Logger
}

// NewApp loads and validates configuration and prepares the pipeline. When
// ctx.Config is nil the configuration is read from viper.
func NewApp(ctx *Context) (*App, error) {
	config, err := loadAndMergeConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	ctx.Config = config

	logger, err := setupLogging(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	ctx.Logger = logger

	analysis := config.Analysis
	app := &App{
		ctx:       ctx,
		config:    config,
		extractor: formant.NewExtractor(&analysis),
		logger:    logger.WithFields(logging.Fields{"component": "app"}),
	}

	app.logger.Debug("Application initialized", logging.Fields{
		"output_format": config.OutputFormat,
		"model_order":   config.Analysis.ModelOrder,
		"filter":        config.Analysis.Filter.Enabled,
	})

	return app, nil
}

// Config returns the effective configuration
func (app *App) Config() *configs.Config {
	return app.config
}

// Logger returns the application logger
func (app *App) Logger() logging.Logger {
	return app.logger
}

// setupLogging builds the process logger unless the caller supplied one
func setupLogging(ctx *Context, config *configs.Config) (logging.Logger, error) {
	if ctx.Logger != nil {
		return ctx.Logger, nil
	}

	level := config.LogLevel
	if config.Verbose {
		level = "debug"
	}

	logger, err := zaplog.Install(zaplog.Options{
		Level:  level,
		Format: config.LogFormat,
	})
	if err != nil {
		return nil, err
	}
	return logger, nil
}

// loadAndMergeConfig loads configuration and applies CLI overrides
func loadAndMergeConfig(ctx *Context) (*configs.Config, error) {
	config := ctx.Config
	if config == nil {
		loaded, err := configs.LoadConfig()
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if ctx.OutputFormat != "" {
		config.OutputFormat = ctx.OutputFormat
	}
	if ctx.OutputFile != "" {
		config.Output.File = ctx.OutputFile
	}
	if ctx.Verbose {
		config.Verbose = true
	}

	if err := configs.ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Output formats data and writes it to the output file or writer
func (app *App) Output(data any) error {
	formatter, err := output.NewFormatter(app.config.OutputFormat)
	if err != nil {
		return err
	}

	formatted, err := formatter.Format(data, app.config.Output.Pretty)
	if err != nil {
		return fmt.Errorf("failed to format output data: %w", err)
	}

	if app.config.Output.File != "" {
		return app.writeToFile(formatted)
	}

	out := app.ctx.Out
	if out == nil {
		out = os.Stdout
	}
	_, err = out.Write(formatted)
	return err
}

// writeToFile writes data to the configured output file
func (app *App) writeToFile(data []byte) error {
	path := app.config.Output.File

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	app.logger.Debug("Results written to file", logging.Fields{
		"output_file": path,
		"size_bytes":  len(data),
	})

	return nil
}
