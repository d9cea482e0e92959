package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"ERR", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"something", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("X", "val")
	if v := getenv("X", "def"); v != "val" {
		t.Fatalf("getenv returned %q, want 'val'", v)
	}
	if v := getenv("Y_UNSET_FOR_TEST", "def"); v != "def" {
		t.Fatalf("getenv returned %q, want 'def'", v)
	}
}

func TestInitAndL(t *testing.T) {
	_ = os.Unsetenv("LOG_LEVEL")
	_ = os.Unsetenv("LOG_PRETTY")
	Init()
	if L().GetLevel() != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %v", L().GetLevel())
	}

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_PRETTY", "true")
	Init()
	if L().GetLevel() != zerolog.DebugLevel {
		t.Fatalf("expected debug level, got %v", L().GetLevel())
	}
}

func TestLazyInit(t *testing.T) {
	mu.Lock()
	inited = false
	base = zerolog.Logger{}
	mu.Unlock()

	if L() == nil {
		t.Fatalf("logger is nil")
	}
	mu.RLock()
	defer mu.RUnlock()
	if !inited {
		t.Fatalf("L() did not initialize the logger")
	}
}

func TestServiceAndComponentFields(t *testing.T) {
	t.Setenv("LOG_PRETTY", "false")
	t.Setenv("LOG_SERVICE", "goldpulse-test")
	var buf bytes.Buffer
	InitWithWriter(&buf)
	t.Cleanup(Init)

	lg := Component("nbp")
	lg.Info().Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["service"] != "goldpulse-test" {
		t.Fatalf("service field = %v", entry["service"])
	}
	if entry["component"] != "nbp" {
		t.Fatalf("component field = %v", entry["component"])
	}
	if entry["message"] != "hello" {
		t.Fatalf("message field = %v", entry["message"])
	}
}
