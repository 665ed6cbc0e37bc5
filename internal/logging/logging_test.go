package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/valeriaulyamaeva/finance-tracker/internal/logging"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := logging.New("warn", "json", &buf)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	log.Info().Msg("dropped")
	log.Warn().Str("path", "/transactions/").Msg("kept")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("expected exactly one json line, got %q: %v", buf.String(), err)
	}
	if line["message"] != "kept" || line["path"] != "/transactions/" || line["level"] != "warn" {
		t.Errorf("unexpected log line: %v", line)
	}
	if _, ok := line["time"]; !ok {
		t.Errorf("log line has no timestamp: %v", line)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := logging.New("loud", "json", &bytes.Buffer{}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
