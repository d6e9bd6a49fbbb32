package logger

import (
	"io"
	"maps"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level represents the severity of a log message
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel maps a config string (debug, info, warn, error) to a Level.
// Unknown values fall back to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger provides structured logging on top of zap.
//
// Loggers derived with WithField/WithFields share the parent's output, level
// and encoding, so reconfiguring the parent reconfigures its children.
type Logger struct {
	sink   *sink
	fields map[string]interface{}
}

// sink holds the shared zap state. The sugared logger is rebuilt whenever the
// output or encoding changes.
type sink struct {
	mu       sync.RWMutex
	output   zapcore.WriteSyncer
	level    zap.AtomicLevel
	json     bool
	disabled bool
	base     *zap.SugaredLogger
}

// New creates a new logger with default settings
func New() *Logger {
	s := &sink{
		output: zapcore.Lock(os.Stdout),
		level:  zap.NewAtomicLevelAt(zapcore.InfoLevel),
	}
	s.rebuild()
	return &Logger{sink: s, fields: make(map[string]interface{})}
}

// NewNop returns a logger that discards everything. Useful in tests.
func NewNop() *Logger {
	l := New()
	l.Disable()
	return l
}

func (s *sink) rebuild() {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	var enc zapcore.Encoder
	if s.json {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = bracketLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	s.base = zap.New(zapcore.NewCore(enc, s.output, s.level)).Sugar()
}

func bracketLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + l.CapitalString() + "]")
}

// SetOutput sets the output destination
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.output = zapcore.Lock(zapcore.AddSync(w))
	l.sink.rebuild()
}

// SetLevel sets the minimum log level
func (l *Logger) SetLevel(level Level) {
	l.sink.level.SetLevel(level.zapLevel())
}

// Level returns the current minimum level.
func (l *Logger) Level() Level {
	switch l.sink.level.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.ErrorLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

// SetJSON enables or disables JSON output
func (l *Logger) SetJSON(enabled bool) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	if l.sink.json == enabled {
		return
	}
	l.sink.json = enabled
	l.sink.rebuild()
}

// Disable disables all logging
func (l *Logger) Disable() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.disabled = true
}

// Enable enables logging
func (l *Logger) Enable() {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	l.sink.disabled = false
}

// WithField returns a new logger with an additional field
func (l *Logger) WithField(key string, value interface{}) *Logger {
	newFields := maps.Clone(l.fields)
	if newFields == nil {
		newFields = make(map[string]interface{}, 1)
	}
	newFields[key] = value
	return &Logger{sink: l.sink, fields: newFields}
}

// WithFields returns a new logger with additional fields
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	maps.Copy(newFields, l.fields)
	maps.Copy(newFields, fields)
	return &Logger{sink: l.sink, fields: newFields}
}

// Zap exposes the underlying sugared logger with this logger's fields attached.
func (l *Logger) Zap() *zap.SugaredLogger {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	return l.sink.base.With(l.keyvals()...)
}

func (l *Logger) keyvals() []interface{} {
	kv := make([]interface{}, 0, len(l.fields)*2)
	for k, v := range l.fields {
		kv = append(kv, k, v)
	}
	return kv
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.sink.mu.RLock()
	disabled := l.sink.disabled
	base := l.sink.base
	l.sink.mu.RUnlock()

	if disabled || !l.sink.level.Enabled(level.zapLevel()) {
		return
	}

	s := base
	if len(l.fields) > 0 {
		s = base.With(l.keyvals()...)
	}

	switch level {
	case LevelDebug:
		s.Debugf(format, args...)
	case LevelInfo:
		s.Infof(format, args...)
	case LevelWarn:
		s.Warnf(format, args...)
	case LevelError:
		s.Errorf(format, args...)
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	l.sink.mu.RLock()
	defer l.sink.mu.RUnlock()
	return l.sink.base.Sync()
}

// Default logger instance
var defaultLogger = New()

// Default returns the process-wide logger.
func Default() *Logger {
	return defaultLogger
}

// SetDefaultLevel sets the level for the default logger
func SetDefaultLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// SetDefaultJSON enables JSON output for the default logger
func SetDefaultJSON(enabled bool) {
	defaultLogger.SetJSON(enabled)
}

// Debug logs a debug message using the default logger
func Debug(format string, args ...interface{}) {
	defaultLogger.Debug(format, args...)
}

// Info logs an info message using the default logger
func Info(format string, args ...interface{}) {
	defaultLogger.Info(format, args...)
}

// Warn logs a warning message using the default logger
func Warn(format string, args ...interface{}) {
	defaultLogger.Warn(format, args...)
}

// Error logs an error message using the default logger
func Error(format string, args ...interface{}) {
	defaultLogger.Error(format, args...)
}

// WithField returns a new logger with an additional field using the default logger
func WithField(key string, value interface{}) *Logger {
	return defaultLogger.WithField(key, value)
}

// WithFields returns a new logger with additional fields using the default logger
func WithFields(fields map[string]interface{}) *Logger {
	return defaultLogger.WithFields(fields)
}
