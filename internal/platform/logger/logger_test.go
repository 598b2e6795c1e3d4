package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": Debug, "": Info, "WARNING": Warn, "error": Error, "nope": Info}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "catlog", Out: &buf})

	l.With(map[string]any{"cat_id": "c1"}).Warn("update failed", map[string]any{"err": errors.New("boom"), " ": "x"})
	l.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["msg"] != "update failed" || entry["level"] != "warning" || entry["app"] != "catlog" ||
		entry["cat_id"] != "c1" || entry["err"] != "boom" {
		t.Fatalf("unexpected entry: %v", entry)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("missing ts: %v", entry)
	}
}

func TestTextOutput(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Debug, Format: FormatText, Out: &buf})
	l.Debug("loaded", map[string]any{"cats": 2})
	if !strings.Contains(buf.String(), "cats=2") || !strings.Contains(buf.String(), `msg=loaded`) {
		t.Fatalf("unexpected text output: %q", buf.String())
	}
}
