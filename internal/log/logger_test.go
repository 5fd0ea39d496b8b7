package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerStampsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentStore, Output: &buf})

	l.Info("inserted", FieldID, "abc")
	out := buf.String()
	if !strings.Contains(out, "component=store") || !strings.Contains(out, "id=abc") {
		t.Fatalf("got %q, want component and id attributes", out)
	}

	buf.Reset()
	l.WithComponent(ComponentDaemon).Warn("poll failed")
	if !strings.Contains(buf.String(), "component=daemon") {
		t.Fatalf("got %q, want component=daemon", buf.String())
	}
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelWarn, Component: ComponentApp, Output: &buf})
	l.Debug("hidden")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("got %q, want nothing below warn", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v, want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
