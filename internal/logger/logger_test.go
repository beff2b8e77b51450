package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

type logEntry struct {
	Timestamp string                 `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Fields    map[string]interface{} `json:"fields"`
	Error     string                 `json:"error"`
}

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "info message",
			level:   LevelInfo,
			message: "test message",
			fields:  Fields{"key": "value"},
			want:    true,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "debug message",
			want:    false, // won't log (below INFO)
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "error occurred",
			err:     errors.New("test error"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(LevelInfo, &buf)

			logger.log(tt.level, tt.message, tt.fields, tt.err)

			logged := buf.Len() > 0
			if logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLogger_JSONShape(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Error("reading worksheet failed", Fields{"range": "'Nicknames'!A:B"}, errors.New("403 forbidden"))

	var entry logEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v (output %q)", err, buf.String())
	}

	if entry.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", entry.Level)
	}
	if entry.Message != "reading worksheet failed" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Fields["range"] != "'Nicknames'!A:B" {
		t.Errorf("Fields[range] = %v", entry.Fields["range"])
	}
	if entry.Error != "403 forbidden" {
		t.Errorf("Error = %q, want 403 forbidden", entry.Error)
	}
	if _, err := time.Parse(time.RFC3339, entry.Timestamp); err != nil {
		t.Errorf("Timestamp %q is not RFC3339: %v", entry.Timestamp, err)
	}
}

func TestLogger_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	New(LevelInfo, &buf).Info("started", nil)

	if strings.Contains(buf.String(), `"fields"`) || strings.Contains(buf.String(), `"error"`) {
		t.Errorf("unexpected keys in %q", buf.String())
	}
}

func TestLogger_PrintfAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(LevelDebug, &buf)

	logger.Printf("Endpoint: %s, params: %v\n", "getMe", map[string]string{})
	logger.Println("Authorized on account", "canoebot")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	var entry logEntry
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatal(err)
	}
	if entry.Message != "Authorized on account canoebot" {
		t.Errorf("Message = %q", entry.Message)
	}
	if entry.Level != "DEBUG" {
		t.Errorf("Level = %q, want DEBUG", entry.Level)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("commands.getquote")
	m.IncrCounter("commands.getquote")
	m.IncrCounter("commands.getquote")

	snapshot := m.GetSnapshot()
	counters := snapshot["counters"].(map[string]int64)

	if counters["commands.getquote"] != 3 {
		t.Errorf("Counter = %v, want 3", counters["commands.getquote"])
	}
}

func TestMetrics_Gauge(t *testing.T) {
	m := NewMetrics()

	m.SetGauge("started_at", 1)
	m.SetGauge("started_at", 2)

	snapshot := m.GetSnapshot()
	gauges := snapshot["gauges"].(map[string]float64)

	if gauges["started_at"] != 2 {
		t.Errorf("Gauge = %v, want 2", gauges["started_at"])
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("sheets.read", 100*time.Millisecond)
	m.RecordTiming("sheets.read", 200*time.Millisecond)
	m.RecordTiming("sheets.read", 150*time.Millisecond)

	snapshot := m.GetSnapshot()
	timings := snapshot["timings"].(map[string]map[string]interface{})

	readTiming := timings["sheets.read"]
	if readTiming["count"].(int) != 3 {
		t.Errorf("Timing count = %v, want 3", readTiming["count"])
	}

	if readTiming["min"].(string) != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", readTiming["min"])
	}

	if readTiming["max"].(string) != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", readTiming["max"])
	}

	if readTiming["average"].(string) != "150ms" {
		t.Errorf("Average timing = %v, want 150ms", readTiming["average"])
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	previous := Default()
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(previous)

	Debug("test debug", nil)
	Info("test info", Fields{"key": "value"})
	Warn("test warning", nil)
	Error("test error", Fields{"component": "test"}, errors.New("test"))

	if got := strings.Count(buf.String(), "\n"); got != 4 {
		t.Errorf("logged %d lines, want 4", got)
	}

	IncrCounter("test")
	SetGauge("test", 42.0)
	RecordTiming("test", time.Second)

	snapshot := GetMetricsSnapshot()
	if snapshot == nil {
		t.Error("GetMetricsSnapshot() returned nil")
	}
}

func TestLogger_Levels(t *testing.T) {
	tests := []struct {
		name      string
		minLevel  Level
		logLevel  Level
		shouldLog bool
	}{
		{"debug logs at debug", LevelDebug, LevelDebug, true},
		{"info logs at debug", LevelDebug, LevelInfo, true},
		{"debug doesn't log at info", LevelInfo, LevelDebug, false},
		{"warn doesn't log at error", LevelError, LevelWarn, false},
		{"error always logs", LevelDebug, LevelError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(tt.minLevel, &buf)

			logger.log(tt.logLevel, "test", nil, nil)

			if logged := buf.Len() > 0; logged != tt.shouldLog {
				t.Errorf("shouldLog = %v, want %v", logged, tt.shouldLog)
			}
			if logger.Level() != tt.minLevel {
				t.Errorf("Level() = %v, want %v", logger.Level(), tt.minLevel)
			}
		})
	}
}
