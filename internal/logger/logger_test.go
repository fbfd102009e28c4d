package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "debug", Encoding: "json"}, &buf)
	log.Debug("decision added", zap.Int64("id", 7))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected one JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "decision added" || entry["id"] != float64(7) {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["timestamp"]; !ok {
		t.Fatal("missing timestamp key")
	}
}

func TestNewConsoleFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "warn", Encoding: "console"}, &buf)
	log.Info("hidden")
	log.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatal("info should be filtered at warn level")
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "WARN") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestNewBadLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: "loud"}, &buf)
	log.Info("hidden")
	log.Error("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}
