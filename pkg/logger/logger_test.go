package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitAndGet(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf})

	log := Get()
	log.Info().Str("k", "v").Msg("hello")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not json: %v", err)
	}
	if entry["service"] != "marketplace-api" {
		t.Fatalf("service field missing: %+v", entry)
	}
	if entry["message"] != "hello" || entry["k"] != "v" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestFor_TagsComponent(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf})

	log := For("auth")
	log.Info().Msg("resolved")

	if !strings.Contains(buf.String(), `"component":"auth"`) {
		t.Fatalf("component field missing: %s", buf.String())
	}
}

func TestInit_OnlyFirstCallWins(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Level: "debug", Output: &first})
	Init(Options{Level: "debug", Output: &second})

	log := Get()
	log.Info().Msg("where")

	if first.Len() == 0 {
		t.Fatalf("first writer should receive the log")
	}
	if second.Len() != 0 {
		t.Fatalf("second Init must be a no-op")
	}
}

func TestLevelFiltering(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "error", Output: &buf})

	log := Get()
	log.Debug().Msg("noise")
	if buf.Len() != 0 {
		t.Fatalf("debug must be suppressed at error level: %s", buf.String())
	}

	log.Error().Msg("real")
	if buf.Len() == 0 {
		t.Fatalf("error entry should be written")
	}
}
