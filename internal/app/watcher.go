package app

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/justyntemme/vista/internal/debug"
)

const defaultDebounce = 200 * time.Millisecond

// DirectoryWatcher reports folders whose direct children changed. Bursts
// of events for one folder are folded into a single notification once the
// folder has been quiet for the debounce interval.
type DirectoryWatcher struct {
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu       sync.Mutex
	watching map[string]bool

	notify chan string
	done   chan struct{}
	once   sync.Once
}

func NewDirectoryWatcher(debounce time.Duration) (*DirectoryWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	dw := &DirectoryWatcher{
		watcher:  w,
		debounce: debounce,
		watching: make(map[string]bool),
		notify:   make(chan string, 10),
		done:     make(chan struct{}),
	}
	go dw.run()
	return dw, nil
}

// relevant are the operations that change a listing.
const relevant = fsnotify.Create | fsnotify.Remove | fsnotify.Rename | fsnotify.Write | fsnotify.Chmod

func (dw *DirectoryWatcher) run() {
	last := make(map[string]time.Time)
	ticker := time.NewTicker(dw.debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-dw.done:
			return

		case ev, ok := <-dw.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&relevant == 0 {
				continue
			}
			if dir, ok := dw.owner(ev.Name); ok {
				last[dir] = time.Now()
				debug.Log(debug.FS, "watch: %s %s", ev.Op, ev.Name)
			}

		case err, ok := <-dw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.FS, "watch error: %v", err)

		case now := <-ticker.C:
			for dir, t := range last {
				if now.Sub(t) < dw.debounce {
					continue
				}
				delete(last, dir)
				select {
				case dw.notify <- dir:
				default:
					// A refresh for this folder is already queued.
				}
			}
		}
	}
}

// owner maps an event path to the watched folder it belongs to: its
// parent, or the folder itself.
func (dw *DirectoryWatcher) owner(name string) (string, bool) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dir := filepath.Dir(name); dw.watching[dir] {
		return dir, true
	}
	if dw.watching[name] {
		return name, true
	}
	return "", false
}

// Watch adds path. Watching a path twice is a no-op.
func (dw *DirectoryWatcher) Watch(path string) error {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if dw.watching[path] {
		return nil
	}
	if err := dw.watcher.Add(path); err != nil {
		return err
	}
	dw.watching[path] = true
	debug.Log(debug.FS, "watching %s", path)
	return nil
}

// Unwatch removes path. The folder may already be gone, so removal errors
// are only logged.
func (dw *DirectoryWatcher) Unwatch(path string) {
	dw.mu.Lock()
	defer dw.mu.Unlock()
	if !dw.watching[path] {
		return
	}
	if err := dw.watcher.Remove(path); err != nil {
		debug.Log(debug.FS, "unwatch %s: %v", path, err)
	}
	delete(dw.watching, path)
}

// Notify delivers folders that changed.
func (dw *DirectoryWatcher) Notify() <-chan string {
	return dw.notify
}

// Close stops the watcher. Safe to call twice.
func (dw *DirectoryWatcher) Close() error {
	var err error
	dw.once.Do(func() {
		close(dw.done)
		err = dw.watcher.Close()
	})
	return err
}
