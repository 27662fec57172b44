// Package fs is the directory listing provider: single-level listings via
// fastwalk, item counts, and the sidebar's places.
package fs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/vista/internal/debug"
)

// ErrNotFound wraps listing errors for directories that vanished.
var ErrNotFound = errors.New("directory not found")

type OpType int

const (
	FetchDir OpType = iota
	CountDir
)

type Request struct {
	Op         OpType
	Path       string
	ShowHidden bool
	Gen        int64 // Generation counter to track stale requests
}

type Entry struct {
	Name    string
	Path    string
	IsDir   bool
	Size    int64
	ModTime time.Time
	Mode    fs.FileMode
	Ext     string // lower-case, without the dot; empty for directories
}

type Response struct {
	Op      OpType
	Path    string
	Entries []Entry
	Count   int
	Err     error
	Gen     int64 // Generation counter from request
}

// System answers listing requests on a worker goroutine so the UI never
// blocks on a slow mount.
type System struct {
	RequestChan  chan Request
	ResponseChan chan Response

	gen atomic.Int64
}

func NewSystem() *System {
	return &System{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// NextGen returns a new generation number for a request. Responses with an
// older generation than the latest request are stale.
func (s *System) NextGen() int64 { return s.gen.Add(1) }

// Latest returns the most recent generation handed out.
func (s *System) Latest() int64 { return s.gen.Load() }

func (s *System) Start() {
	for req := range s.RequestChan {
		debug.Log(debug.FS, "Request: op=%d path=%q gen=%d", req.Op, req.Path, req.Gen)

		switch req.Op {
		case FetchDir:
			entries, err := List(req.Path, req.ShowHidden)
			debug.Log(debug.FS, "FetchDir response: path=%q entries=%d gen=%d err=%v",
				req.Path, len(entries), req.Gen, err)
			s.ResponseChan <- Response{Op: FetchDir, Path: req.Path, Entries: entries, Err: err, Gen: req.Gen}

		case CountDir:
			n, err := CountEntries(req.Path)
			s.ResponseChan <- Response{Op: CountDir, Path: req.Path, Count: n, Err: err, Gen: req.Gen}
		}
	}
}

// List returns the direct children of path. Hidden (dot) entries are
// dropped unless showHidden is set. Symlinks are followed; broken ones are
// listed with their lstat info.
func List(path string, showHidden bool) ([]Entry, error) {
	debug.Log(debug.FS, "List: reading %q", path)

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", path)
	}

	var result []Entry
	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: true, // Follow symlinks to get target info
	}

	pathLen := len(path)

	err = fastwalk.Walk(conf, path, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.FS_ENTRY, "List: walk error at %q: %v", fullPath, err)
			return nil // Skip errors, continue walking
		}

		if fullPath == path {
			return nil
		}

		// Only direct children; fullPath starts with path so the remainder
		// must not contain another separator.
		relStart := pathLen
		if relStart < len(fullPath) && (fullPath[relStart] == '/' || fullPath[relStart] == '\\') {
			relStart++
		}
		rel := fullPath[relStart:]
		if strings.ContainsAny(rel, "/\\") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !showHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}

		// fastwalk.StatDirEntry follows symlinks when Follow=true
		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			// Broken symlink: fall back to the link itself.
			info, err = os.Lstat(fullPath)
			if err != nil {
				debug.Log(debug.FS_ENTRY, "List: skipping %q: stat error: %v", name, err)
				return nil
			}
		}

		e := Entry{
			Name:    name,
			Path:    fullPath,
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Mode:    info.Mode(),
		}
		if !e.IsDir {
			e.Ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		}
		debug.Log(debug.FS_ENTRY, "List: %q isDir=%v size=%d", name, e.IsDir, e.Size)

		mu.Lock()
		result = append(result, e)
		mu.Unlock()

		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})

	if err != nil {
		debug.Log(debug.FS, "List: walk error: %v", err)
		return nil, err
	}
	return result, nil
}

// CountEntries returns the number of direct children of path, hidden ones
// included. The details pane shows it as a folder's size.
func CountEntries(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("%s: %w", path, ErrNotFound)
		}
		return 0, err
	}
	defer f.Close()

	n := 0
	for {
		names, err := f.Readdirnames(256)
		n += len(names)
		if err != nil {
			break
		}
	}
	return n, nil
}
