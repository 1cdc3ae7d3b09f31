package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestInitLevels(t *testing.T) {
	cases := map[string]string{
		"debug":   "debug",
		"DEBUG":   "debug",
		" warn ":  "warn",
		"warning": "warn",
		"error":   "error",
		"fatal":   "fatal",
		"":        "info",
		"bogus":   "info",
	}
	for in, want := range cases {
		Init(in)
		if got := LevelString(); got != want {
			t.Fatalf("Init(%q): level = %q, want %q", in, got, want)
		}
	}
	Init("info")
}

func TestSuppression(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stdout)

	Init("warn")
	defer Init("info")

	Debugf("hidden %d", 1)
	Infof("hidden %d", 2)
	Warnf("visible %d", 3)
	Errorf("visible %d", 4)

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Fatalf("debug/info should be suppressed at warn level, got %q", got)
	}
	if !strings.Contains(got, "[WARN] visible 3") || !strings.Contains(got, "[ERROR] visible 4") {
		t.Fatalf("warn/error lines missing, got %q", got)
	}
}
