// Package media plays audio and video files for the preview pane.
package media

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoPlayer = errors.New("no media player available")
	ErrNoSource = errors.New("no media source set")
)

// State is the playback state.
type State int

const (
	Stopped State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "stopped"
}

// EventKind identifies a player notification.
type EventKind int

const (
	EventDuration EventKind = iota // duration became known
	EventEnd                       // playback reached the end
	EventError                     // playback failed
)

// Event is delivered on the player's goroutine; handlers must not block.
type Event struct {
	Kind     EventKind
	Duration time.Duration
	Err      error
}

// Player is the playback engine behind the media surface.
type Player interface {
	SetSource(path string) error
	Source() string
	Play() error
	Pause() error
	Stop() error
	Seek(pos time.Duration) error
	SetVolume(v int)
	Volume() int
	State() State
	Position() time.Duration
	Duration() time.Duration
	SetOnEvent(fn func(Event))
}

// FormatTime renders a position as m:ss, or h:mm:ss past the hour.
func FormatTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	s := int64(d / time.Second)
	h, m := s/3600, (s/60)%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s%60)
	}
	return fmt.Sprintf("%d:%02d", m, s%60)
}

func clampVolume(v int) int {
	return max(0, min(v, 100))
}
