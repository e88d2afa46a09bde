package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.level.String()
		if result != tt.expected {
			t.Errorf("LogLevel(%d).String() = '%s', expected '%s'", tt.level, result, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"Warning", LogLevelWarn},
		{"error", LogLevelError},
		{"unknown", LogLevelInfo},
		{"", LogLevelInfo},
	}

	for _, tt := range tests {
		result := ParseLogLevel(tt.input)
		if result != tt.expected {
			t.Errorf("ParseLogLevel('%s') = %d, expected %d", tt.input, result, tt.expected)
		}
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelDebug,
		Output: &buf,
		Prefix: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	for _, want := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "test:"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output", want)
		}
	}
}

func TestLogger_LogLevel_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelWarn,
		Output: &buf,
	})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("expected DEBUG and INFO to be filtered out, got %q", output)
	}
	if !strings.Contains(output, "[WARN]") || !strings.Contains(output, "[ERROR]") {
		t.Errorf("expected WARN and ERROR in output, got %q", output)
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Info("saved %s (%d chars)", "a.txt", 42)

	if !strings.Contains(buf.String(), "saved a.txt (42 chars)") {
		t.Errorf("expected formatted message, got %q", buf.String())
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithField("b", 2).WithComponent("engine").WithField("a", 1).Info("msg")

	if !strings.Contains(buf.String(), "{a=1, b=2, component=engine}") {
		t.Errorf("expected sorted fields, got %q", buf.String())
	}

	buf.Reset()
	logger.Info("plain")
	if strings.Contains(buf.String(), "{") {
		t.Errorf("parent logger gained fields: %q", buf.String())
	}
}

func TestLogger_DerivedSharesLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})
	child := logger.WithComponent("config")

	logger.SetLevel(LogLevelError)
	child.Warn("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected child to follow parent level, got %q", buf.String())
	}
	if child.Level() != LogLevelError {
		t.Errorf("child.Level() = %v, expected ERROR", child.Level())
	}

	child.SetLevel(LogLevelDebug)
	logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected parent to follow level set on child")
	}
}

func TestLogger_DisableEnable(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	logger.Disable()
	logger.Error("nothing")
	if buf.Len() != 0 {
		t.Error("expected no output while disabled")
	}

	logger.Enable()
	logger.Error("something")
	if buf.Len() == 0 {
		t.Error("expected output after Enable")
	}
}

func TestLogger_SetOutput(t *testing.T) {
	var first, second bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &first})

	logger.SetOutput(&second)
	logger.Info("moved")

	if first.Len() != 0 || !strings.Contains(second.String(), "moved") {
		t.Errorf("expected output in second writer, got %q / %q", first.String(), second.String())
	}
}

func TestNewLogger_NilOutputDiscards(t *testing.T) {
	logger := NewLogger(LoggerConfig{})
	logger.Error("dropped")
}

func TestNewSessionLogger(t *testing.T) {
	a := NewSessionLogger(DefaultLoggerConfig())
	b := NewSessionLogger(DefaultLoggerConfig())

	idA, ok := a.Field("session")
	if !ok {
		t.Fatal("expected session field")
	}
	if _, err := uuid.Parse(idA.(string)); err != nil {
		t.Errorf("session id %v is not a UUID: %v", idA, err)
	}
	if idB, _ := b.Field("session"); idA == idB {
		t.Error("expected distinct session ids")
	}
}

func TestNewNullLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewNullLogger()
	logger.SetOutput(&buf)
	logger.Error("dropped")

	if buf.Len() != 0 {
		t.Errorf("expected null logger to discard, got %q", buf.String())
	}
}

func TestOpenLogOutput(t *testing.T) {
	w, err := OpenLogOutput("")
	if err != nil {
		t.Fatalf("OpenLogOutput(\"\") failed: %v", err)
	}
	if _, err := w.Write([]byte("x")); err != nil {
		t.Errorf("discard writer failed: %v", err)
	}
	_ = w.Close()

	path := filepath.Join(t.TempDir(), "logs", "x5.log")
	w, err = OpenLogOutput(path)
	if err != nil {
		t.Fatalf("OpenLogOutput() failed: %v", err)
	}
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: w})
	logger.Info("to file")
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("expected log line in file, got %q", data)
	}
}
