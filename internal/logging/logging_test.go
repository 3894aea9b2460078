package logging

import (
	"bytes"
	"strings"
	"testing"

	"diffract/internal/diffraction"
)

var _ diffraction.Logger = (*Logger)(nil)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"warning": LevelWarn,
		" warn ":  LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestLoggerFiltersBelowThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("warn", &buf)
	l.Debugf("debug %d", 1)
	l.Infof("info %d", 2)
	l.Warnf("warn %d", 3)
	l.Errorf("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Fatalf("messages below warn were written:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] warn 3") || !strings.Contains(out, "[ERROR] error 4") {
		t.Fatalf("missing messages at or above warn:\n%s", out)
	}
}

func TestLoggerDebugWritesEverything(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("debug", &buf)
	if l.Level() != LevelDebug {
		t.Fatalf("level = %s", l.Level())
	}
	l.Debugf("spots=%d", 21)
	if !strings.Contains(buf.String(), "[DEBUG] spots=21") {
		t.Fatalf("debug message missing: %q", buf.String())
	}
}
