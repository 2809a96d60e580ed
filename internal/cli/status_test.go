package cli

import (
	"strings"
	"testing"
	"time"
)

func TestStatusLineContent(t *testing.T) {
	line := StatusLine(-55.0, 7*time.Second, 0.5)

	for _, want := range []string{"volume=", " -55.0", "dB", "silent_for=", "  7.0", "eye_glow=", "0.50"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line missing %q: %q", want, line)
		}
	}
}

func TestStatusLineFixedWidths(t *testing.T) {
	// The line is rewritten in place each tick, so values must keep a
	// stable width as they change.
	short := StatusLine(-5.2, 0, 1.0)
	long := StatusLine(-160.0, 120*time.Second, 0.07)

	if len(short) != len(long) {
		t.Errorf("rendered widths differ: %d vs %d\n%q\n%q", len(short), len(long), short, long)
	}
}

func TestStatusLineGlowFormatting(t *testing.T) {
	tests := []struct {
		glow float64
		want string
	}{
		{1.0, "1.00"},
		{0.993, "0.99"},
		{0.0, "0.00"},
	}

	for _, tt := range tests {
		line := StatusLine(-40, time.Second, tt.glow)
		if !strings.Contains(line, tt.want) {
			t.Errorf("StatusLine glow %v missing %q: %q", tt.glow, tt.want, line)
		}
	}
}
