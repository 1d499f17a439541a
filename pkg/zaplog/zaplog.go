// Package zaplog backs the shared logging.Logger interface with zap so the
// formant tracker gets leveled, structured output in console or json form.
package zaplog

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/RyanBlaney/latency-benchmark-common/logging"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures a zap-backed logger
type Options struct {
	Level  string    // debug, info, warn, error
	Format string    // json or console
	Output io.Writer // defaults to os.Stderr
}

// Logger implements logging.Logger on top of a zap core
type Logger struct {
	logger *zap.Logger
	level  zap.AtomicLevel
}

// New builds a Logger from options
func New(opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "time"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if strings.EqualFold(opts.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	atom := zap.NewAtomicLevelAt(toZapLevel(level))
	core := zapcore.NewCore(encoder, zapcore.AddSync(out), atom)
	return &Logger{logger: zap.New(core), level: atom}, nil
}

// Install builds a Logger and makes it the global logger returned by
// logging.WithFields and friends
func Install(opts Options) (*Logger, error) {
	logger, err := New(opts)
	if err != nil {
		return nil, err
	}
	logging.SetGlobalLogger(logger)
	return logger, nil
}

// ParseLevel maps a level name to a logging level
func ParseLevel(level string) (logging.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return logging.InfoLevel, nil
	case "debug":
		return logging.DebugLevel, nil
	case "warn", "warning":
		return logging.WarnLevel, nil
	case "error":
		return logging.ErrorLevel, nil
	default:
		return logging.InfoLevel, fmt.Errorf("unknown log level: %q", level)
	}
}

func toZapLevel(level logging.Level) zapcore.Level {
	switch level {
	case logging.DebugLevel:
		return zapcore.DebugLevel
	case logging.WarnLevel:
		return zapcore.WarnLevel
	case logging.ErrorLevel:
		return zapcore.ErrorLevel
	case logging.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func (l *Logger) Debug(msg string, fields ...logging.Fields) {
	l.logger.Debug(msg, toZapFields(fields)...)
}

func (l *Logger) Info(msg string, fields ...logging.Fields) {
	l.logger.Info(msg, toZapFields(fields)...)
}

func (l *Logger) Warn(msg string, fields ...logging.Fields) {
	l.logger.Warn(msg, toZapFields(fields)...)
}

func (l *Logger) Error(err error, msg string, fields ...logging.Fields) {
	l.logger.Error(msg, withError(err, fields)...)
}

func (l *Logger) Fatal(err error, msg string, fields ...logging.Fields) {
	l.logger.Fatal(msg, withError(err, fields)...)
}

// WithFields returns a child logger sharing the level of its parent
func (l *Logger) WithFields(fields logging.Fields) logging.Logger {
	return &Logger{
		logger: l.logger.With(toZapFields([]logging.Fields{fields})...),
		level:  l.level,
	}
}

func (l *Logger) WithContext(ctx context.Context) logging.Logger {
	if fields, ok := ctx.Value("logger_fields").(logging.Fields); ok {
		return l.WithFields(fields)
	}
	return l
}

func (l *Logger) SetLevel(level logging.Level) {
	l.level.SetLevel(toZapLevel(level))
}

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	return l.logger.Sync()
}

func withError(err error, fields []logging.Fields) []zap.Field {
	zf := toZapFields(fields)
	if err != nil {
		zf = append(zf, zap.Error(err))
	}
	return zf
}

func toZapFields(fields []logging.Fields) []zap.Field {
	var n int
	for _, f := range fields {
		n += len(f)
	}
	if n == 0 {
		return nil
	}

	out := make([]zap.Field, 0, n)
	for _, f := range fields {
		for k, v := range f {
			out = append(out, zap.Any(k, v))
		}
	}
	return out
}

var _ logging.Logger = (*Logger)(nil)
