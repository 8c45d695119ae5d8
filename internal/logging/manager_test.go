// pattern: Imperative Shell

package logging

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewManager_RequiresFilePath(t *testing.T) {
	if _, err := NewManager(Config{}); err == nil {
		t.Fatal("NewManager() should fail without FilePath")
	}
}

func TestNewManager_CreatesLogDirectory(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "nested", "log", "shimctl.log")

	mgr, err := NewManager(Config{FilePath: logFile, Level: "debug"})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	if _, err := os.Stat(filepath.Dir(logFile)); err != nil {
		t.Errorf("log directory should exist: %v", err)
	}
}

func TestManager_For(t *testing.T) {
	mgr, err := NewManager(Config{FilePath: filepath.Join(t.TempDir(), "test.log")})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	defer func() { _ = mgr.Close() }()

	logger := mgr.For("shim")
	if logger == nil {
		t.Fatal("For() returned nil")
	}
	if logger != mgr.For("shim") {
		t.Error("For() should return cached logger for same scope")
	}
	if logger == mgr.For("catalog") {
		t.Error("For() should return different logger for different scope")
	}
	if logger.Scope() != "shim" {
		t.Errorf("Scope() = %q, want %q", logger.Scope(), "shim")
	}
}

func TestManager_LoggingToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	mgr, err := NewManager(Config{FilePath: logFile, Level: "debug"})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}

	mgr.For("shim").Info("shim created", "name", "eslint", "error", errors.New("boom"))
	_ = mgr.Close()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	content := string(data)
	for _, want := range []string{"shim created", `"logger":"shim"`, `"name":"eslint"`, `"error":"boom"`} {
		if !strings.Contains(content, want) {
			t.Errorf("log file should contain %s, got: %s", want, content)
		}
	}
}

func TestManager_LevelFiltering(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "test.log")

	mgr, err := NewManager(Config{FilePath: logFile, Level: "warn"})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	logger := mgr.For("app")
	logger.Info("quiet message")
	logger.Warn("loud message")
	_ = mgr.Close()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if strings.Contains(string(data), "quiet message") {
		t.Error("info entry should be filtered at warn level")
	}
	if !strings.Contains(string(data), "loud message") {
		t.Error("warn entry should be written at warn level")
	}
}

func TestManager_ConsoleMirror(t *testing.T) {
	var console bytes.Buffer
	mgr, err := NewManager(Config{
		FilePath: filepath.Join(t.TempDir(), "test.log"),
		Level:    "debug",
		Console:  &console,
	})
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	mgr.For("catalog").Debug("catalog loaded", "path", "/tmp/catalog.toml")
	_ = mgr.Close()

	out := console.String()
	if !strings.Contains(out, "catalog loaded") || !strings.Contains(out, "catalog") {
		t.Errorf("console output missing entry: %q", out)
	}
}

func TestParseZapLevel(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"loud":  zapcore.InfoLevel,
	}
	for input, want := range tests {
		if got := ParseZapLevel(input); got != want {
			t.Errorf("ParseZapLevel(%q) = %v, want %v", input, got, want)
		}
	}
}
