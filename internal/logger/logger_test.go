package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestJSONEnabled(t *testing.T) {
	l := New(false)
	if l.JSONEnabled() {
		t.Fatal("expected false")
	}
	l = New(true)
	if !l.JSONEnabled() {
		t.Fatal("expected true")
	}
}

func TestPlainLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(false, &buf)
	l.Warn("admin user not found", map[string]any{"wallet": "abc"})
	got := buf.String()
	if !strings.HasPrefix(got, "[WARN] admin user not found ") {
		t.Fatalf("unexpected line: %q", got)
	}
	if !strings.Contains(got, `"wallet":"abc"`) {
		t.Fatalf("fields missing: %q", got)
	}
}

func TestJSONLine(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(true, &buf)
	l.Info("connected", map[string]any{"host": "localhost"})
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}
	if payload["level"] != "INFO" || payload["msg"] != "connected" || payload["host"] != "localhost" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
}
