package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// captureLogOutput reinitializes the logger to write to a buffer, runs f and
// restores the default logger.
func captureLogOutput(level Level, format Format, f func()) string {
	var buf bytes.Buffer
	InitLoggerTo(&buf, level, format)
	f()
	InitLogger(LevelInfo, FormatText)
	return buf.String()
}

func TestInitLogger(t *testing.T) {
	tests := []struct {
		name   string
		level  Level
		format Format
	}{
		{"Debug level JSON format", LevelDebug, FormatJSON},
		{"Info level JSON format", LevelInfo, FormatJSON},
		{"Warn level Text format", LevelWarn, FormatText},
		{"Error level Text format", LevelError, FormatText},
		{"Default level (invalid value)", Level(999), FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			InitLogger(tt.level, tt.format)
			if GetLogger() == nil {
				t.Error("Expected logger to be initialized, got nil")
			}
		})
	}
	InitLogger(LevelInfo, FormatText)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{"", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		got, err := ParseLevel(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("json"); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(json) = %v, %v", f, err)
	}
	if f, err := ParseFormat("Text"); err != nil || f != FormatText {
		t.Errorf("ParseFormat(Text) = %v, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) should fail")
	}
}

func TestRunID(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		expected string
	}{
		{"Context with run ID", WithRunID(context.Background(), "run-1"), "run-1"},
		{"Context without run ID", context.Background(), ""},
		{"Context with wrong type value", context.WithValue(context.Background(), RunIDKey, 12345), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetRunID(tt.ctx); got != tt.expected {
				t.Errorf("GetRunID() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestLoggingFunctions(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
		want string
	}{
		{"Debug", func() { Debug("debug message", "key", "value") }, "debug message"},
		{"Info", func() { Info("info message", "key", "value") }, "info message"},
		{"Warn", func() { Warn("warning message", "key", "value") }, "warning message"},
		{"Error", func() { Error("error message", "key", "value") }, "error message"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := captureLogOutput(LevelDebug, FormatJSON, tt.fn)
			if !strings.Contains(output, tt.want) {
				t.Errorf("output %q does not contain %q", output, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	output := captureLogOutput(LevelWarn, FormatText, func() {
		Info("hidden")
		Warn("shown")
	})
	if strings.Contains(output, "hidden") {
		t.Error("info message logged at warn level")
	}
	if !strings.Contains(output, "shown") {
		t.Error("warn message missing")
	}
}

func TestAlignmentResult(t *testing.T) {
	output := captureLogOutput(LevelDebug, FormatJSON, func() {
		ctx := WithRunID(context.Background(), "run-42")
		AlignmentResult(ctx, "MAT-en", "MAT-fi", 10, 12, 14, "policy", "last_of_shorter")
	})

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &entry); err != nil {
		t.Fatalf("invalid JSON log output %q: %v", output, err)
	}
	want := map[string]any{
		"msg":               "alignment_result",
		"run_id":            "run-42",
		"source_book":       "MAT-en",
		"target_book":       "MAT-fi",
		"source_paragraphs": float64(10),
		"target_paragraphs": float64(12),
		"pairs":             float64(14),
		"policy":            "last_of_shorter",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("entry[%q] = %v, want %v", k, entry[k], v)
		}
	}
}

func TestNothingToAlign(t *testing.T) {
	output := captureLogOutput(LevelInfo, FormatJSON, func() {
		NothingToAlign(context.Background(), "MAT-en", "MAT-fi", 0, 3)
	})
	if !strings.Contains(output, `"level":"ERROR"`) || !strings.Contains(output, "nothing_to_align") {
		t.Errorf("unexpected output %q", output)
	}
}

func TestStoreEvent(t *testing.T) {
	output := captureLogOutput(LevelDebug, FormatText, func() {
		StoreEvent("put", "paragraphs", 7, "book", "MAT-en")
	})
	for _, want := range []string{"store_event", "operation=put", "count=7", "book=MAT-en"} {
		if !strings.Contains(output, want) {
			t.Errorf("output %q does not contain %q", output, want)
		}
	}
}

func TestTimestampFormat(t *testing.T) {
	output := captureLogOutput(LevelInfo, FormatJSON, func() {
		Info("timestamp check")
	})
	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(output)), &entry); err != nil {
		t.Fatalf("invalid JSON log output: %v", err)
	}
	ts, ok := entry["time"].(string)
	if !ok || !strings.Contains(ts, "T") || strings.Contains(ts, ".") {
		t.Errorf("time = %v, want RFC3339 without fractional seconds", entry["time"])
	}
}
