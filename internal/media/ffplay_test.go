//go:build !windows

package media

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fakeFFPlay writes a stand-in ffplay that records its arguments and then
// runs body.
func fakeFFPlay(t *testing.T, body string) (*FFPlay, string) {
	t.Helper()
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	script := "#!/bin/sh\necho \"$@\" > " + argsFile + "\n" + body + "\n"
	bin := filepath.Join(dir, "ffplay")
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	p, err := NewFFPlay(bin, 70)
	if err != nil {
		t.Fatal(err)
	}
	p.probe = ""
	t.Cleanup(func() { p.Stop() })
	return p, argsFile
}

func readArgs(t *testing.T, path string) string {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if b, err := os.ReadFile(path); err == nil && len(b) > 0 {
			return strings.TrimSpace(string(b))
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("fake player never ran")
	return ""
}

func TestNewFFPlayMissing(t *testing.T) {
	_, err := NewFFPlay(filepath.Join(t.TempDir(), "nope"), 50)
	if !errors.Is(err, ErrNoPlayer) {
		t.Errorf("err = %v, want ErrNoPlayer", err)
	}
}

func TestPlayWithoutSource(t *testing.T) {
	p, _ := fakeFFPlay(t, "exec sleep 30")
	if err := p.Play(); !errors.Is(err, ErrNoSource) {
		t.Errorf("err = %v, want ErrNoSource", err)
	}
}

func TestPlayPauseStop(t *testing.T) {
	p, argsFile := fakeFFPlay(t, "exec sleep 30")
	p.SetSource("/music/song.mp3")

	if err := p.Play(); err != nil {
		t.Fatal(err)
	}
	if p.State() != Playing {
		t.Fatalf("state = %v, want playing", p.State())
	}
	args := readArgs(t, argsFile)
	if !strings.Contains(args, "-nodisp") || !strings.Contains(args, "-volume 70") {
		t.Errorf("args = %q", args)
	}

	p.Pause()
	if p.State() != Paused {
		t.Fatalf("state = %v, want paused", p.State())
	}
	pos := p.Position()
	time.Sleep(20 * time.Millisecond)
	if p.Position() != pos {
		t.Error("position advanced while paused")
	}

	p.Play()
	if p.State() != Playing {
		t.Fatalf("state = %v after resume", p.State())
	}
	p.Stop()
	if p.State() != Stopped || p.Position() != 0 {
		t.Errorf("after stop: state=%v pos=%v", p.State(), p.Position())
	}
}

func TestVideoGetsWindowTitle(t *testing.T) {
	p, argsFile := fakeFFPlay(t, "exec sleep 30")
	p.SetSource("/clips/movie.mkv")
	p.Play()
	args := readArgs(t, argsFile)
	if strings.Contains(args, "-nodisp") || !strings.Contains(args, "-window_title movie.mkv") {
		t.Errorf("args = %q", args)
	}
}

func TestSeekRestartsAtPosition(t *testing.T) {
	p, argsFile := fakeFFPlay(t, "exec sleep 30")
	p.SetSource("/music/song.ogg")
	p.Seek(90 * time.Second)
	if got := p.Position(); got != 90*time.Second {
		t.Errorf("position = %v", got)
	}
	p.Play()
	if args := readArgs(t, argsFile); !strings.Contains(args, "-ss 90.000") {
		t.Errorf("args = %q", args)
	}
	p.Seek(-time.Second)
	if p.Position() > time.Second {
		t.Errorf("negative seek not clamped: %v", p.Position())
	}
}

func TestEndAndErrorEvents(t *testing.T) {
	tests := []struct {
		body string
		want EventKind
	}{
		{"exit 0", EventEnd},
		{"exit 3", EventError},
	}
	for _, tt := range tests {
		p, _ := fakeFFPlay(t, tt.body)
		events := make(chan Event, 1)
		p.SetOnEvent(func(ev Event) { events <- ev })
		p.SetSource("/music/a.flac")
		if err := p.Play(); err != nil {
			t.Fatal(err)
		}
		select {
		case ev := <-events:
			if ev.Kind != tt.want {
				t.Errorf("%q: event = %v, want %v", tt.body, ev.Kind, tt.want)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("%q: no event", tt.body)
		}
		if p.State() != Stopped {
			t.Errorf("%q: state = %v", tt.body, p.State())
		}
	}
}

func TestStopSuppressesEvents(t *testing.T) {
	p, argsFile := fakeFFPlay(t, "exec sleep 30")
	events := make(chan Event, 1)
	p.SetOnEvent(func(ev Event) { events <- ev })
	p.SetSource("/music/a.wav")
	p.Play()
	readArgs(t, argsFile)
	p.Stop()
	select {
	case ev := <-events:
		t.Errorf("unexpected event %v after stop", ev.Kind)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSetVolumeClamps(t *testing.T) {
	p, _ := fakeFFPlay(t, "exec sleep 30")
	p.SetVolume(150)
	if p.Volume() != 100 {
		t.Errorf("volume = %d", p.Volume())
	}
	p.SetVolume(-5)
	if p.Volume() != 0 {
		t.Errorf("volume = %d", p.Volume())
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{65 * time.Second, "1:05"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.d); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
