package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewLogger returns a Logger writing structured lines to stderr. Messages
// below level are dropped.
func NewLogger(level int) *zapLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = true
	cfg.Level = zap.NewAtomicLevelAt(toZapLevel(level))

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}

	return &zapLogger{sugar: l.Sugar()}
}

// LevelFromString parses the level names used in configs. Unknown names fall
// back to INFO.
func LevelFromString(s string) int {
	switch s {
	case "debug", "DEBUG":
		return DEBUG
	case "warn", "warning", "WARN", "WARNING":
		return WARNING
	case "error", "ERROR":
		return ERROR
	case "silence", "SILENCE":
		return SILENCE
	}

	return INFO
}

func toZapLevel(level int) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case INFO:
		return zapcore.InfoLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	}

	return zapcore.FatalLevel + 1
}

func (l *zapLogger) Debugf(msg string, a ...any) {
	l.sugar.Debugf(msg, a...)
}

func (l *zapLogger) Infof(msg string, a ...any) {
	l.sugar.Infof(msg, a...)
}

func (l *zapLogger) Warnf(msg string, a ...any) {
	l.sugar.Warnf(msg, a...)
}

func (l *zapLogger) Errorf(msg string, a ...any) {
	l.sugar.Errorf(msg, a...)
}

func (l *zapLogger) Sync() error {
	return l.sugar.Sync()
}
