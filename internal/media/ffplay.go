package media

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/justyntemme/vista/internal/classify"
	"github.com/justyntemme/vista/internal/debug"
)

// FFPlay drives one ffplay process per playback run. Pausing suspends the
// process where the platform allows it; otherwise the process is stopped
// and restarted at the paused position. Seeking and volume changes while
// playing restart at the new position.
type FFPlay struct {
	bin   string
	probe string // ffprobe, empty when not installed

	mu        sync.Mutex
	source    string
	noDisplay bool
	state     State
	volume    int
	cmd       *exec.Cmd
	gen       int
	offset    time.Duration // position at the last start or pause
	started   time.Time
	duration  time.Duration
	onEvent   func(Event)
}

// NewFFPlay locates bin (default "ffplay") on PATH.
func NewFFPlay(bin string, volume int) (*FFPlay, error) {
	if bin == "" {
		bin = "ffplay"
	}
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: %s not found", ErrNoPlayer, bin)
	}
	p := &FFPlay{bin: path, volume: clampVolume(volume)}
	if probe, err := exec.LookPath("ffprobe"); err == nil {
		p.probe = probe
	}
	return p, nil
}

func (p *FFPlay) SetOnEvent(fn func(Event)) {
	p.mu.Lock()
	p.onEvent = fn
	p.mu.Unlock()
}

// SetSource stops any playback and loads path. The duration is probed in
// the background and reported with EventDuration.
func (p *FFPlay) SetSource(path string) error {
	p.mu.Lock()
	p.kill()
	p.source = path
	p.noDisplay = classify.Classify(path) == classify.Audio
	p.state = Stopped
	p.offset = 0
	p.duration = 0
	gen := p.gen
	probe := p.probe
	p.mu.Unlock()

	if probe != "" {
		go p.probeDuration(probe, path, gen)
	}
	return nil
}

func (p *FFPlay) probeDuration(probe, path string, gen int) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, probe, "-v", "error",
		"-show_entries", "format=duration", "-of", "csv=p=0", path).Output()
	if err != nil {
		debug.Log(debug.PREVIEW, "ffprobe %s: %v", path, err)
		return
	}
	secs, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || secs <= 0 {
		return
	}
	d := time.Duration(secs * float64(time.Second))

	p.mu.Lock()
	if p.source != path || p.gen < gen {
		p.mu.Unlock()
		return
	}
	p.duration = d
	cb := p.onEvent
	p.mu.Unlock()
	if cb != nil {
		cb(Event{Kind: EventDuration, Duration: d})
	}
}

func (p *FFPlay) Source() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.source
}

func (p *FFPlay) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.source == "" {
		return ErrNoSource
	}
	switch p.state {
	case Playing:
		return nil
	case Paused:
		if p.cmd != nil {
			if err := resume(p.cmd); err == nil {
				p.started = time.Now()
				p.state = Playing
				return nil
			}
			p.kill()
		}
	}
	return p.start(p.offset)
}

func (p *FFPlay) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != Playing {
		return nil
	}
	p.offset = p.position()
	if err := suspend(p.cmd); err != nil {
		p.kill()
	}
	p.state = Paused
	return nil
}

func (p *FFPlay) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.kill()
	p.state = Stopped
	p.offset = 0
	return nil
}

func (p *FFPlay) Seek(pos time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	pos = max(pos, 0)
	if p.duration > 0 {
		pos = min(pos, p.duration)
	}
	switch p.state {
	case Playing:
		p.kill()
		return p.start(pos)
	case Paused:
		p.kill()
	}
	p.offset = pos
	return nil
}

func (p *FFPlay) SetVolume(v int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	v = clampVolume(v)
	if v == p.volume {
		return
	}
	p.volume = v
	if p.state == Playing {
		pos := p.position()
		p.kill()
		if err := p.start(pos); err != nil {
			debug.Log(debug.PREVIEW, "restart at volume %d: %v", v, err)
		}
	}
}

func (p *FFPlay) Volume() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *FFPlay) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

func (p *FFPlay) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position()
}

func (p *FFPlay) Duration() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.duration
}

// position must be called with mu held.
func (p *FFPlay) position() time.Duration {
	pos := p.offset
	if p.state == Playing {
		pos += time.Since(p.started)
	}
	if p.duration > 0 && pos > p.duration {
		pos = p.duration
	}
	return pos
}

// start must be called with mu held.
func (p *FFPlay) start(offset time.Duration) error {
	args := []string{"-autoexit", "-loglevel", "error", "-volume", strconv.Itoa(p.volume)}
	if p.noDisplay {
		args = append(args, "-nodisp")
	} else {
		args = append(args, "-window_title", filepath.Base(p.source))
	}
	if offset > 0 {
		args = append(args, "-ss", strconv.FormatFloat(offset.Seconds(), 'f', 3, 64))
	}
	args = append(args, p.source)

	cmd := exec.Command(p.bin, args...)
	configureProcess(cmd)
	if err := cmd.Start(); err != nil {
		p.state = Stopped
		return fmt.Errorf("start %s: %w", filepath.Base(p.bin), err)
	}
	p.gen++
	p.cmd = cmd
	p.offset = offset
	p.started = time.Now()
	p.state = Playing
	debug.Log(debug.PREVIEW, "ffplay pid=%d %s at %v", cmd.Process.Pid, p.source, offset)
	go p.wait(cmd, p.gen)
	return nil
}

// kill ends the current process without reporting an event. Must be
// called with mu held.
func (p *FFPlay) kill() {
	p.gen++
	if p.cmd == nil {
		return
	}
	if err := killProcess(p.cmd); err != nil {
		debug.Log(debug.PREVIEW, "kill ffplay: %v", err)
	}
	p.cmd = nil
}

func (p *FFPlay) wait(cmd *exec.Cmd, gen int) {
	err := cmd.Wait()

	p.mu.Lock()
	if gen != p.gen {
		p.mu.Unlock()
		return
	}
	p.cmd = nil
	p.state = Stopped
	p.offset = 0
	cb := p.onEvent
	p.mu.Unlock()

	ev := Event{Kind: EventEnd}
	if err != nil {
		ev = Event{Kind: EventError, Err: fmt.Errorf("playback: %w", err)}
	}
	if cb != nil {
		cb(ev)
	}
}
