package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls how the process-wide logger is built.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// LogDir, when set, adds a rotating file sink under LogDir/dcx.log.
	LogDir string
	// Quiet suppresses console output below the error level.
	Quiet bool
}

// NewLogger builds a zap logger that writes human-readable output to stderr
// and, when configured, JSON lines to a rotating log file.
func NewLogger(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.UnmarshalText([]byte(opts.Level)); err != nil {
			return nil, err
		}
	}

	consoleLevel := level
	if opts.Quiet {
		consoleLevel = zapcore.ErrorLevel
	}
	consoleEncoder := zapcore.NewConsoleEncoder(consoleEncoderConfig())
	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), consoleLevel),
	}

	if opts.LogDir != "" {
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(opts.LogDir, "dcx.log"),
			MaxSize:    50, // megabytes before rotation
			MaxBackups: 5,
			MaxAge:     30, // days
		}
		fileEncoder := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	return cfg
}
