// Package logging is the portal's structured JSON logger. It keeps a small
// builder API (WithField, WithFields, WithError) on top of zap.
package logging

import (
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes one JSON object per line.
type Logger struct {
	zl *zap.Logger
}

// NewLogger builds a logger at the named level ("DEBUG", "INFO", "WARN",
// "ERROR"; anything else means INFO) writing to output, or stdout when nil.
func NewLogger(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stdout
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.MessageKey = "message"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.AddSync(output),
		zap.NewAtomicLevelAt(parseLevel(level)),
	)

	return &Logger{zl: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// NewNop discards everything.
func NewNop() *Logger {
	return &Logger{zl: zap.NewNop()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARN", "WARNING":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// Zap exposes the underlying logger.
func (l *Logger) Zap() *zap.Logger { return l.zl }

// Sync flushes buffered entries.
func (l *Logger) Sync() error { return l.zl.Sync() }

func (l *Logger) WithFields(fields map[string]interface{}) *Entry {
	return (&Entry{logger: l}).WithFields(fields)
}

func (l *Logger) WithField(key string, value interface{}) *Entry {
	return l.WithFields(map[string]interface{}{key: value})
}

func (l *Logger) WithError(err error) *Entry {
	return &Entry{logger: l, err: err}
}

func (l *Logger) Debug(message string) { l.zl.Debug(message) }
func (l *Logger) Info(message string)  { l.zl.Info(message) }
func (l *Logger) Warn(message string)  { l.zl.Warn(message) }
func (l *Logger) Error(message string) { l.zl.Error(message) }

// Fatal logs and exits the process.
func (l *Logger) Fatal(message string) { l.zl.Fatal(message) }

// Entry accumulates fields for a single log line.
type Entry struct {
	logger *Logger
	fields map[string]interface{}
	err    error
}

func (e *Entry) WithField(key string, value interface{}) *Entry {
	return e.WithFields(map[string]interface{}{key: value})
}

func (e *Entry) WithFields(fields map[string]interface{}) *Entry {
	if e.fields == nil {
		e.fields = make(map[string]interface{}, len(fields))
	}
	for k, v := range fields {
		e.fields[k] = v
	}
	return e
}

func (e *Entry) WithError(err error) *Entry {
	e.err = err
	return e
}

func (e *Entry) Debug(message string) { e.logger.zl.Debug(message, e.zapFields()...) }
func (e *Entry) Info(message string)  { e.logger.zl.Info(message, e.zapFields()...) }
func (e *Entry) Warn(message string)  { e.logger.zl.Warn(message, e.zapFields()...) }
func (e *Entry) Error(message string) { e.logger.zl.Error(message, e.zapFields()...) }
func (e *Entry) Fatal(message string) { e.logger.zl.Fatal(message, e.zapFields()...) }

func (e *Entry) zapFields() []zap.Field {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, zap.Any(k, e.fields[k]))
	}
	if e.err != nil {
		out = append(out, zap.Error(e.err))
	}
	return out
}
