package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger wraps a sugared zap logger so callers can use Infow, Warnw and friends.
type Logger struct {
	*zap.SugaredLogger
	closers []func() error
}

type Options struct {
	Verbose bool
	// File, when set, receives every entry at debug level as JSON and is
	// rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// NewLogger returns a console logger on stderr; verbose enables debug output.
func NewLogger(verbose bool) *Logger {
	return New(Options{Verbose: verbose})
}

// New builds a logger from opts.
func New(opts Options) *Logger {
	level := zapcore.InfoLevel
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleEncoderConfig(opts.Verbose)),
			zapcore.Lock(os.Stderr),
			level,
		),
	}

	var closers []func() error
	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10),
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28),
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.AddSync(rotator),
			zapcore.DebugLevel,
		))
		closers = append(closers, rotator.Close)
	}

	l := fromCore(zapcore.NewTee(cores...))
	l.closers = closers
	return l
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return fromCore(zapcore.NewNopCore())
}

func fromCore(core zapcore.Core) *Logger {
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// Close flushes buffered entries and releases the log file.
func (l *Logger) Close() error {
	_ = l.Sync() // stderr sync fails on terminals
	var firstErr error
	for _, c := range l.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func consoleEncoderConfig(verbose bool) zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.CallerKey = zapcore.OmitKey
	if !verbose {
		cfg.TimeKey = zapcore.OmitKey
	}
	return cfg
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
