package game

import (
	"strings"
	"testing"
	"time"

	"github.com/iburimskiy/audio-dodge/internal/config"
	"github.com/iburimskiy/audio-dodge/internal/control"
)

func (s fakeStatus) Playing() bool { return s.playing }
func (s fakeStatus) Progress() float64 { return s.progress }
func (s fakeStatus) Elapsed() time.Duration { return 0 }
func (s fakeStatus) Duration() time.Duration { return 0 }

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61 * time.Second, "01:01"},
		{75*time.Minute + 3*time.Second, "75:03"},
		{-time.Second, "00:00"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.expected {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestStatusLine(t *testing.T) {
	st := fakeStatus{playing: true, volume: 0.5, kind: config.DistortionBuzz, amount: 20}

	line := statusLine(st, 40, true)
	for _, want := range []string{"score 40", "playing", "volume 50%", "distortion buzz 20"} {
		if !strings.Contains(line, want) {
			t.Errorf("status line %q is missing %q", line, want)
		}
	}

	st.playing = false
	if line := statusLine(st, 0, true); !strings.Contains(line, "paused") {
		t.Errorf("status line %q, want paused", line)
	}
	if line := statusLine(st, 0, false); !strings.Contains(line, "no track") {
		t.Errorf("status line %q, want the open hint", line)
	}
}

func TestToggleLines(t *testing.T) {
	params := config.Default().Draw
	enabled := func(f control.Field) bool { return f == control.Bars || f == control.Game }

	lines := toggleLines(enabled, params)
	if len(lines) != len(control.ToggleFields)+1 {
		t.Fatalf("got %d lines, want %d", len(lines), len(control.ToggleFields)+1)
	}
	if lines[1] != "2 [x] bars" {
		t.Errorf("bars line = %q", lines[1])
	}
	if lines[7] != "8 [ ] outer ring" {
		t.Errorf("outer ring line = %q", lines[7])
	}
	if lines[len(lines)-1] != "[ ] rings 16" {
		t.Errorf("ring line = %q", lines[len(lines)-1])
	}
}
