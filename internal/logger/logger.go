// Package logger wraps zap behind small package-level helpers taking
// alternating key/value pairs.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.SugaredLogger = newLogger(false)

// Init configures the global logger for the given environment. "prod"
// selects info level; anything else gets debug level with stack traces on
// warnings.
func Init(env string) {
	log = newLogger(env == "prod")
}

func newLogger(isProd bool) *zap.SugaredLogger {
	encoderConfig := zapcore.EncoderConfig{
		MessageKey:     "message",
		LevelKey:       "level",
		TimeKey:        "time",
		NameKey:        "logger",
		FunctionKey:    zapcore.OmitKey,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	level := zapcore.DebugLevel
	options := []zap.Option{
		zap.AddCaller(),
		zap.AddCallerSkip(1),
		zap.ErrorOutput(zapcore.AddSync(os.Stderr)),
	}
	if isProd {
		level = zapcore.InfoLevel
	} else {
		options = append(options, zap.AddStacktrace(zapcore.WarnLevel), zap.Development())
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		zap.NewAtomicLevelAt(level),
	)

	return zap.New(core, options...).Sugar()
}

// Sync flushes buffered log entries.
func Sync() error {
	return log.Sync()
}

func Debug(msg string, args ...interface{}) {
	log.Debugw(msg, args...)
}

func Info(msg string, args ...interface{}) {
	log.Infow(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	log.Warnw(msg, args...)
}

func Error(msg string, args ...interface{}) {
	log.Errorw(msg, args...)
}

func Fatal(msg string, args ...interface{}) {
	log.Fatalw(msg, args...)
}
