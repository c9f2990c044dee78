// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewJSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "auto", slog.LevelInfo)

	logger.Info("estado created", "id_estado", 7)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "estado created" {
		t.Errorf("unexpected msg: %v", entry["msg"])
	}
	if entry["id_estado"] != float64(7) {
		t.Errorf("unexpected id_estado: %v", entry["id_estado"])
	}
}

func TestNewForcedText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "text", slog.LevelInfo)

	logger.Info("listening", "port", 3000)

	if !strings.Contains(buf.String(), "msg=listening") || !strings.Contains(buf.String(), "port=3000") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "json", slog.LevelInfo)

	logger.Debug("hidden")

	if buf.Len() != 0 {
		t.Errorf("debug output should be filtered, got %q", buf.String())
	}
}
