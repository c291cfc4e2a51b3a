package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"debug":  zerolog.DebugLevel,
		" WARN ": zerolog.WarnLevel,
		"error":  zerolog.ErrorLevel,
		"":       zerolog.InfoLevel,
		"bogus":  zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Str("comment_id", "c1").Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info line should be filtered: %s", out)
	}
	if !strings.Contains(out, `"comment_id":"c1"`) || !strings.Contains(out, `"service":"blogcomments"`) {
		t.Fatalf("unexpected log output: %s", out)
	}
}

func TestOpen_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	log, closer, err := Open(path, "debug")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	log.Debug().Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log failed: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("log line missing: %s", data)
	}
}

func TestOpen_EmptyPathIsNop(t *testing.T) {
	_, closer, err := Open("", "info")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}
