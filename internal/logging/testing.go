// pattern: Imperative Shell

package logging

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards all output.
// Use in tests or when logging is not configured.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{}
}

// TestLogManager records every entry in memory at debug level so tests can
// assert on what was logged.
type TestLogManager struct {
	sink    *RecordingSink
	baseZap *zap.Logger
	loggers map[string]*ScopedLogger
	mu      sync.Mutex
}

// NewTestLogManager creates a TestLogManager with an empty recording.
func NewTestLogManager() *TestLogManager {
	sink := NewRecordingSink()
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(jsonEncoderConfig()),
		zapcore.AddSync(sink),
		zapcore.DebugLevel,
	)
	return &TestLogManager{
		sink:    sink,
		baseZap: zap.New(core),
		loggers: make(map[string]*ScopedLogger),
	}
}

// For returns a scoped logger for the given scope name.
// Named For() to match the production Manager API.
func (m *TestLogManager) For(scope string) *ScopedLogger {
	m.mu.Lock()
	defer m.mu.Unlock()

	if logger, ok := m.loggers[scope]; ok {
		return logger
	}
	logger := newScopedLogger(m.baseZap.Named(scope), zapcore.DebugLevel, scope)
	m.loggers[scope] = logger
	return logger
}

// Entries returns everything logged so far.
func (m *TestLogManager) Entries() []LogEntry {
	return m.sink.Entries()
}

// Find returns the entries with the given message.
func (m *TestLogManager) Find(msg string) []LogEntry {
	var found []LogEntry
	for _, e := range m.sink.Entries() {
		if e.Message == msg {
			found = append(found, e)
		}
	}
	return found
}

type nopProvider struct{}

func (nopProvider) For(string) *ScopedLogger { return NopLogger() }

// NopProvider hands out loggers that discard all output.
func NopProvider() LoggerProvider {
	return nopProvider{}
}
