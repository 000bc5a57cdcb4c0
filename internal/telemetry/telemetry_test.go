package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"DEBUG", slog.LevelDebug},
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogOptions{Level: "INFO", Output: &buf})

	logger.Info("hello", "queue", "task_queue")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON log line, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "hello" {
		t.Errorf("expected msg=hello, got %v", record["msg"])
	}
	if record["queue"] != "task_queue" {
		t.Errorf("expected queue=task_queue, got %v", record["queue"])
	}
}

func TestNewLogger_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogOptions{Level: "WARN", Format: "text", Output: &buf})

	logger.Info("skipped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "skipped") {
		t.Error("info message should be filtered at WARN level")
	}
	if !strings.Contains(out, "msg=kept") {
		t.Errorf("expected text output with msg=kept, got %q", out)
	}
}

func TestFromContext(t *testing.T) {
	logger := NewLogger(LogOptions{Output: io.Discard})
	ctx := WithLogger(context.Background(), logger)

	if FromContext(ctx) != logger {
		t.Error("expected logger from context")
	}
	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected default logger for empty context")
	}
}

func TestMetricsHandler(t *testing.T) {
	MessagesPublished.WithLabelValues("", "task_queue").Inc()

	srv := httptest.NewServer(MetricsHandler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("unexpected healthz response: %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "rabbitwork_messages_published_total") {
		t.Error("metrics output should contain rabbitwork_messages_published_total")
	}
}

func TestMessagesConsumedCounter(t *testing.T) {
	c := MessagesConsumed.WithLabelValues("test_queue", "error")
	before := testutil.ToFloat64(c)
	c.Inc()

	if got := testutil.ToFloat64(c); got != before+1 {
		t.Errorf("expected counter %v, got %v", before+1, got)
	}
}

func TestServeMetrics_EmptyAddr(t *testing.T) {
	logger := NewLogger(LogOptions{Output: io.Discard})
	if err := ServeMetrics(context.Background(), "", logger); err != nil {
		t.Errorf("expected nil for disabled metrics, got %v", err)
	}
}
