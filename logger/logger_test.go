package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func jsonLogger(buf *bytes.Buffer, level string) *Logger {
	return NewWithWriter(&Config{Level: level, Format: FormatJSON}, "test-svc", buf)
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	return m
}

func TestNewWithWriter_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "info").WithComponent("fetch")

	l.Info("loaded", Fields(FieldURL, "http://x/api/faq", FieldItems, 2))

	m := decodeLine(t, &buf)
	if m["message"] != "loaded" {
		t.Errorf("expected message 'loaded', got %v", m["message"])
	}
	if m[FieldComponent] != "fetch" {
		t.Errorf("expected component=fetch, got %v", m[FieldComponent])
	}
	if m[FieldURL] != "http://x/api/faq" {
		t.Errorf("expected url field, got %v", m[FieldURL])
	}
	if m["service"] != "test-svc" {
		t.Errorf("expected service=test-svc, got %v", m["service"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "warn")

	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected nothing below warn, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("expected warn line, got %q", buf.String())
	}
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "loud")
	l.Debug("hidden")
	l.Info("visible")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected info level fallback, got %q", buf.String())
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, "debug").WithFields(map[string]any{FieldSeq: 3})
	l.Debug("refresh")
	m := decodeLine(t, &buf)
	if m[FieldSeq] != float64(3) {
		t.Errorf("expected seq=3, got %v", m[FieldSeq])
	}
}

func TestFieldHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	if len(f) != 1 || f["a"] != 1 {
		t.Errorf("expected odd trailing key to be dropped, got %v", f)
	}

	ef := ErrorFields("toggle", errors.New("disk full"))
	if ef[FieldOperation] != "toggle" || ef[FieldError] != "disk full" {
		t.Errorf("unexpected error fields %v", ef)
	}

	df := DurationFields("fetch", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("expected 1500ms, got %v", df[FieldDuration])
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", func() Config { c := Config{}; c.ApplyDefaults(); return c }(), false},
		{"json debug", Config{Level: "debug", Format: FormatJSON}, false},
		{"bad level", Config{Level: "loud", Format: FormatJSON}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestGlobal(t *testing.T) {
	var buf bytes.Buffer
	prev := Global()
	t.Cleanup(func() { SetGlobal(prev) })

	SetGlobal(jsonLogger(&buf, "info"))
	Get("theme").Info("toggled", Fields(FieldTheme, "dark"))

	m := decodeLine(t, &buf)
	if m[FieldComponent] != "theme" || m[FieldTheme] != "dark" {
		t.Errorf("unexpected global log line %v", m)
	}
}

func TestInit_RejectsInvalid(t *testing.T) {
	prev := Global()
	t.Cleanup(func() { SetGlobal(prev) })

	if err := Init(Config{Level: "loud"}, "svc"); err == nil {
		t.Error("expected Init to reject an invalid level")
	}
}

func TestNop(t *testing.T) {
	Nop().Error("dropped")
}
