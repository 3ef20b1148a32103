package observability

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// TestParseLogLevel verifies LOG_LEVEL parsing, including case, whitespace
// and the WARN default.
func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		env    string
		expect zapcore.Level
	}{
		{"", zap.WarnLevel},
		{"INFO", zap.InfoLevel},
		{"DEBUG", zap.DebugLevel},
		{"WARN", zap.WarnLevel},
		{"ERROR", zap.ErrorLevel},
		{"debug", zap.DebugLevel},
		{"  info  ", zap.InfoLevel},
		{"invalid", zap.WarnLevel},
	}
	for _, tt := range tests {
		level := parseLogLevel(tt.env)
		if got := level.Level(); got != tt.expect {
			t.Errorf("parseLogLevel(%q) = %v, want %v", tt.env, got, tt.expect)
		}
	}
}

func TestParseOutputPaths(t *testing.T) {
	tests := []struct {
		env  string
		want []string
	}{
		{"", []string{"stderr"}},
		{"  ", []string{"stderr"}},
		{",", []string{"stderr"}},
		{"/tmp/ws.log", []string{"/tmp/ws.log"}},
		{"stderr, /tmp/ws.log", []string{"stderr", "/tmp/ws.log"}},
	}
	for _, tt := range tests {
		if got := parseOutputPaths(tt.env); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseOutputPaths(%q) = %v, want %v", tt.env, got, tt.want)
		}
	}
}

// TestNewLogger verifies that NewLogger creates a usable logger.
func TestNewLogger(t *testing.T) {
	logger, err := NewLogger()
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	if logger == nil {
		t.Fatal("NewLogger() returned nil logger")
	}

	logger.Warn("test message")
	_ = logger.Sync() // best-effort; can fail on /dev/stderr in test env
}

func TestNewLogger_WritesToLogOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "station.log")
	t.Setenv("LOG_OUTPUT", path)
	t.Setenv("LOG_LEVEL", "debug")

	logger, err := NewLogger()
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Debug("lookup", zap.String("city", "Testville"))
	if err := FlushTelemetry(logger); err != nil {
		t.Fatalf("FlushTelemetry() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"city":"Testville"`) {
		t.Errorf("log file = %q, want city field", data)
	}
	if !strings.Contains(string(data), `"timestamp"`) {
		t.Errorf("log file = %q, want timestamp key", data)
	}
}
