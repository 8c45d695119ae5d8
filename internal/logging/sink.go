// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"sync"
	"time"
)

// RecordingSink is a zapcore.WriteSyncer that decodes each JSON line written
// by zap and keeps the entries in memory.
type RecordingSink struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewRecordingSink creates an empty sink.
func NewRecordingSink() *RecordingSink {
	return &RecordingSink{}
}

// Write implements io.Writer. Lines that are not JSON objects are dropped.
func (s *RecordingSink) Write(p []byte) (int, error) {
	entry, err := decodeEntry(p)
	if err != nil {
		return len(p), nil
	}

	s.mu.Lock()
	s.entries = append(s.entries, entry)
	s.mu.Unlock()
	return len(p), nil
}

// Sync implements zapcore.WriteSyncer.
func (s *RecordingSink) Sync() error {
	return nil
}

// Entries returns a copy of everything recorded so far.
func (s *RecordingSink) Entries() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// decodeEntry converts one JSON record from zap into a LogEntry.
func decodeEntry(data []byte) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogEntry{}, err
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     "INFO",
		Scope:     "app",
		Fields:    make(map[string]any),
	}

	if msg, ok := raw["msg"].(string); ok {
		entry.Message = msg
		delete(raw, "msg")
	}
	if level, ok := raw["level"].(string); ok {
		entry.Level = ParseLevel(level)
		delete(raw, "level")
	}
	if logger, ok := raw["logger"].(string); ok {
		entry.Scope = logger
		delete(raw, "logger")
	}
	if ts, ok := raw["ts"].(float64); ok {
		sec := int64(ts)
		entry.Timestamp = time.Unix(sec, int64((ts-float64(sec))*1e9))
		delete(raw, "ts")
	}
	delete(raw, "caller")
	delete(raw, "stacktrace")

	for k, v := range raw {
		entry.Fields[k] = v
	}
	return entry, nil
}
