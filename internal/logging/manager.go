// pattern: Imperative Shell

// Package logging provides scoped structured loggers backed by zap, written to
// a rotated log file and optionally mirrored to a console.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds configuration for the Manager.
type Config struct {
	FilePath   string    // Path to log file
	MaxSizeMB  int       // Max size in MB before rotation
	MaxBackups int       // Max number of old log files to keep
	MaxAgeDays int       // Max days to keep old log files
	Level      string    // Minimum log level (debug, info, warn, error)
	Console    io.Writer // Optional human-readable mirror, e.g. os.Stderr for --debug
}

// LoggerProvider is an interface for obtaining scoped loggers.
// Both Manager and TestLogManager implement this interface.
type LoggerProvider interface {
	For(scope string) *ScopedLogger
}

// ScopedLogger provides a logger with scope context and additional field support.
type ScopedLogger struct {
	slog  *slog.Logger
	scope string
}

// Info logs at INFO level.
func (l *ScopedLogger) Info(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Info(msg, args...)
	}
}

// Debug logs at DEBUG level.
func (l *ScopedLogger) Debug(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Debug(msg, args...)
	}
}

// Warn logs at WARN level.
func (l *ScopedLogger) Warn(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Warn(msg, args...)
	}
}

// Error logs at ERROR level.
func (l *ScopedLogger) Error(msg string, args ...any) {
	if l.slog != nil {
		l.slog.Error(msg, args...)
	}
}

// With returns a new ScopedLogger with the given key-value pairs added to all log entries.
func (l *ScopedLogger) With(args ...any) *ScopedLogger {
	if l.slog == nil {
		return l
	}
	return &ScopedLogger{
		slog:  l.slog.With(args...),
		scope: l.scope,
	}
}

// Scope returns the logger's scope name.
func (l *ScopedLogger) Scope() string {
	return l.scope
}

// Manager hands out scoped loggers that share one rotated log file.
type Manager struct {
	baseZap    *zap.Logger
	fileWriter *lumberjack.Logger
	loggers    map[string]*ScopedLogger
	mu         sync.Mutex
	level      zapcore.Level
}

// NewManager creates a new log manager with the given configuration.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.FilePath == "" {
		return nil, fmt.Errorf("FilePath is required")
	}

	if cfg.MaxSizeMB == 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups == 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays == 0 {
		cfg.MaxAgeDays = 28
	}

	level := ParseZapLevel(cfg.Level)

	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonEncoderConfig()), zapcore.AddSync(fileWriter), level),
	}
	if cfg.Console != nil {
		consoleCfg := zap.NewDevelopmentEncoderConfig()
		consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.AddSync(cfg.Console),
			level,
		))
	}

	return &Manager{
		baseZap:    zap.New(zapcore.NewTee(cores...)),
		fileWriter: fileWriter,
		loggers:    make(map[string]*ScopedLogger),
		level:      level,
	}, nil
}

// jsonEncoderConfig is shared by the file core and the test recorder so both
// produce the same fields.
func jsonEncoderConfig() zapcore.EncoderConfig {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.EpochTimeEncoder
	encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	return encoderCfg
}

// ParseZapLevel parses a level name, falling back to info.
func ParseZapLevel(name string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// For returns a logger for the given scope. Loggers are cached per scope.
func (m *Manager) For(scope string) *ScopedLogger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}
	logger := newScopedLogger(m.baseZap.Named(scope), m.level, scope)
	m.loggers[scope] = logger
	return logger
}

func newScopedLogger(zapLogger *zap.Logger, level zapcore.Level, scope string) *ScopedLogger {
	return &ScopedLogger{
		slog:  slog.New(&zapSlogHandler{zap: zapLogger, level: level}),
		scope: scope,
	}
}

// Sync flushes all buffered logs.
func (m *Manager) Sync() error {
	return m.baseZap.Sync()
}

// Close syncs and closes the log file.
func (m *Manager) Close() error {
	_ = m.Sync()
	return m.fileWriter.Close()
}

// zapSlogHandler adapts zap.Logger to slog.Handler interface.
type zapSlogHandler struct {
	zap   *zap.Logger
	level zapcore.Level
	attrs []slog.Attr
}

func (h *zapSlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return slogToZapLevel(level) >= h.level
}

func (h *zapSlogHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]zap.Field, 0, r.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		fields = append(fields, zapField(attr))
	}
	r.Attrs(func(attr slog.Attr) bool {
		fields = append(fields, zapField(attr))
		return true
	})

	if ce := h.zap.Check(slogToZapLevel(r.Level), r.Message); ce != nil {
		ce.Write(fields...)
	}
	return nil
}

func (h *zapSlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &zapSlogHandler{zap: h.zap, level: h.level, attrs: newAttrs}
}

func (h *zapSlogHandler) WithGroup(name string) slog.Handler {
	return &zapSlogHandler{zap: h.zap.Named(name), level: h.level, attrs: h.attrs}
}

// zapField keeps errors as zap error fields so they render as strings.
func zapField(attr slog.Attr) zap.Field {
	if err, ok := attr.Value.Any().(error); ok {
		return zap.NamedError(attr.Key, err)
	}
	return zap.Any(attr.Key, attr.Value.Any())
}

func slogToZapLevel(level slog.Level) zapcore.Level {
	switch {
	case level >= slog.LevelError:
		return zapcore.ErrorLevel
	case level >= slog.LevelWarn:
		return zapcore.WarnLevel
	case level >= slog.LevelInfo:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}
