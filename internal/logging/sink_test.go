// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"testing"
	"time"
)

func TestRecordingSink_Write(t *testing.T) {
	sink := NewRecordingSink()

	data, _ := json.Marshal(map[string]any{
		"level":  "warn",
		"ts":     float64(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC).Unix()),
		"logger": "shim",
		"msg":    "autoshim failed for binary",
		"name":   "eslint",
		"caller": "shim/autoshim.go:60",
	})

	n, err := sink.Write(append(data, '\n'))
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != len(data)+1 {
		t.Errorf("Write() = %d, want %d", n, len(data)+1)
	}

	entries := sink.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.Level != "WARN" || got.Scope != "shim" || got.Message != "autoshim failed for binary" {
		t.Errorf("unexpected entry: %+v", got)
	}
	if got.Field("name") != "eslint" {
		t.Errorf("Field(name) = %q, want %q", got.Field("name"), "eslint")
	}
	if _, ok := got.Fields["caller"]; ok {
		t.Error("caller should not be kept as a field")
	}
	if got.Timestamp.UTC().Hour() != 3 {
		t.Errorf("Timestamp = %v, want hour 3 UTC", got.Timestamp.UTC())
	}
}

func TestRecordingSink_DropsGarbage(t *testing.T) {
	sink := NewRecordingSink()
	if _, err := sink.Write([]byte("not json\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if len(sink.Entries()) != 0 {
		t.Error("non-JSON lines should be dropped")
	}
	if err := sink.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}
}

func TestRecordingSink_Defaults(t *testing.T) {
	sink := NewRecordingSink()
	_, _ = sink.Write([]byte(`{"msg":"bare"}`))

	got := sink.Entries()[0]
	if got.Level != "INFO" || got.Scope != "app" {
		t.Errorf("defaults = %q/%q, want INFO/app", got.Level, got.Scope)
	}
}
