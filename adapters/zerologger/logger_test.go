package zerologger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/goliatone/go-activity/pkg/interfaces/logger"
	"github.com/rs/zerolog"
)

func TestJSONLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewJSON(&buf, "debug").With(logger.F("component", "activity"))

	lgr.Error("delivery failed", logger.F("stage", "receive"), logger.Err(errors.New("boom")))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if line["message"] != "delivery failed" {
		t.Fatalf("unexpected message: %v", line["message"])
	}
	if line["component"] != "activity" || line["stage"] != "receive" {
		t.Fatalf("fields not written: %v", line)
	}
	if line["error"] != "boom" {
		t.Fatalf("expected error field, got %v", line["error"])
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	lgr := NewJSON(&buf, "warn")
	lgr.Debug("hidden")
	lgr.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected debug/info to be filtered, got %q", buf.String())
	}
	lgr.Warn("shown")
	if buf.Len() == 0 {
		t.Fatalf("expected warn line")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"DEBUG":   zerolog.DebugLevel,
		" error ": zerolog.ErrorLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v want %v", in, got, want)
		}
	}
}
