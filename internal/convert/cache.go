// Package convert turns office documents into PDF or HTML artifacts with
// external converters and caches them on disk, keyed by source path.
package convert

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/store"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultRunTimeout   = 120 * time.Second
)

// Options configures a Cache.
type Options struct {
	Dir          string
	StartTimeout time.Duration
	RunTimeout   time.Duration
	// Tools restricts and orders converters by name; empty uses
	// DefaultTools order.
	Tools []string
	// Index, when set, records each conversion. The cache does not own it.
	Index *store.DB
}

// Cache maps source paths to converted artifacts in Dir.
type Cache struct {
	dir          string
	startTimeout time.Duration
	runTimeout   time.Duration
	tools        []Tool
	index        *store.DB

	group singleflight.Group
	// Conversions hold the read lock; ClearCache takes the write lock so
	// it never removes a slot mid-conversion.
	mu sync.RWMutex

	lookPath func(string) (string, error)
}

// New creates the cache directory if needed.
func New(opts Options) (*Cache, error) {
	if opts.Dir == "" {
		return nil, errors.New("convert: cache dir is required")
	}
	if opts.StartTimeout <= 0 {
		opts.StartTimeout = DefaultStartTimeout
	}
	if opts.RunTimeout <= 0 {
		opts.RunTimeout = DefaultRunTimeout
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("convert: create cache dir: %w", err)
	}
	return &Cache{
		dir:          opts.Dir,
		startTimeout: opts.StartTimeout,
		runTimeout:   opts.RunTimeout,
		tools:        filterTools(DefaultTools(), opts.Tools),
		index:        opts.Index,
		lookPath:     exec.LookPath,
	}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Key returns the hex SHA-1 of the absolute form of path.
func Key(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	sum := sha1.Sum([]byte(abs))
	return hex.EncodeToString(sum[:])
}

// SlotPath returns where the artifact for source in format lives.
func (c *Cache) SlotPath(source string, format Format) string {
	return filepath.Join(c.dir, Key(source)+"."+string(format))
}

// EnsurePDF returns a PDF rendition of source, converting on a miss.
func (c *Cache) EnsurePDF(ctx context.Context, source string) (string, error) {
	return c.ensure(ctx, source, PDF)
}

// EnsureHTML returns an HTML rendition of source, converting on a miss.
func (c *Cache) EnsureHTML(ctx context.Context, source string) (string, error) {
	return c.ensure(ctx, source, HTML)
}

// Cached reports whether a valid artifact for source already exists.
func (c *Cache) Cached(source string, format Format) bool {
	src, err := os.Stat(source)
	if err != nil {
		return false
	}
	_, ok := c.hit(c.SlotPath(source, format), src.ModTime())
	return ok
}

func (c *Cache) hit(slot string, srcMod time.Time) (string, bool) {
	info, err := os.Stat(slot)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}
	if info.ModTime().Before(srcMod) {
		return "", false
	}
	return slot, true
}

func (c *Cache) ensure(ctx context.Context, source string, format Format) (string, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}

	key := Key(abs)
	// The flight outlives any one caller: it runs detached from ctx and is
	// bounded by the run timeouts, while each caller stops waiting when its
	// own ctx ends.
	work := context.WithoutCancel(ctx)
	ch := c.group.DoChan(string(format)+":"+key, func() (any, error) {
		c.mu.RLock()
		defer c.mu.RUnlock()

		// Re-stat inside the flight: the source may have changed while we
		// waited on a previous conversion.
		src, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("convert: %w", err)
		}
		slot := filepath.Join(c.dir, key+"."+string(format))
		if p, ok := c.hit(slot, src.ModTime()); ok {
			debug.Log(debug.CONVERT, "Cache hit %s -> %s", abs, p)
			return p, nil
		}
		return c.convert(work, abs, key, slot, src.ModTime(), format)
	})

	select {
	case <-ctx.Done():
		debug.Log(debug.CONVERT, "Stopped waiting for %s: %v", abs, ctx.Err())
		return "", ctx.Err()
	case r := <-ch:
		if r.Shared {
			debug.Log(debug.CONVERT, "Shared in-flight conversion for %s", abs)
		}
		if r.Err != nil {
			return "", r.Err
		}
		return r.Val.(string), nil
	}
}

func (c *Cache) convert(ctx context.Context, source, key, slot string, srcMod time.Time, format Format) (string, error) {
	tool, ok := c.detect(format)
	if !ok {
		debug.Log(debug.CONVERT, "No converter for %s", format)
		return "", noConverterError(format)
	}
	if tool.TextOnly {
		return "", &ConversionError{
			Tool:   tool.Name,
			Source: source,
			Output: fmt.Sprintf("%s can only extract text, cannot produce %s", tool.Name, strings.ToUpper(string(format))),
			Kind:   ErrFailed,
		}
	}

	workDir, err := os.MkdirTemp(c.dir, ".work-"+key[:8]+"-")
	if err != nil {
		return "", fmt.Errorf("convert: work dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	job := Job{
		Source:  source,
		Out:     filepath.Join(workDir, key+"."+string(format)),
		WorkDir: workDir,
		Format:  format,
	}
	args := tool.Args[format](job)

	debug.Log(debug.CONVERT, "Converting %s with %s %v", source, tool.Path, args)
	beside := besideSource(job)
	before, _ := os.Stat(beside)
	started := time.Now()
	output, runErr := run(ctx, tool.Path, args, c.startTimeout, c.runTimeout)

	if errors.Is(runErr, ErrTimeout) {
		return "", &ConversionError{Tool: tool.Name, Source: source, Output: output, Kind: ErrTimeout}
	}

	produced, found := locateOutput(job, before)
	if !found {
		return "", &ConversionError{Tool: tool.Name, Source: source, Output: output, Kind: ErrFailed, Cause: runErr}
	}
	if runErr != nil {
		debug.Log(debug.CONVERT, "%s exited with %v but produced %s", tool.Name, runErr, produced)
	}
	if produced != job.Out {
		debug.Log(debug.CONVERT, "Relocating %s -> %s", produced, slot)
	}
	place := moveFile
	if produced == beside {
		place = copyFile
	}
	if err := place(produced, slot); err != nil {
		return "", &ConversionError{Tool: tool.Name, Source: source, Output: output, Kind: ErrFailed, Cause: err}
	}

	// A source stamped in the future would otherwise make the fresh
	// artifact look stale forever.
	if info, err := os.Stat(slot); err == nil && info.ModTime().Before(srcMod) {
		os.Chtimes(slot, time.Now(), srcMod)
	}

	debug.Log(debug.CONVERT, "Converted %s in %v", source, time.Since(started).Round(time.Millisecond))
	if c.index != nil {
		err := c.index.Record(store.Entry{
			Key:       key,
			Source:    source,
			Artifact:  slot,
			Tool:      tool.Name,
			SourceMod: srcMod,
		})
		if err != nil {
			debug.Log(debug.CONVERT, "Index record failed: %v", err)
		}
	}
	return slot, nil
}

// besideSource is where WPS writes its output: <srcdir>/<base>.<ext>.
func besideSource(job Job) string {
	base := strings.TrimSuffix(filepath.Base(job.Source), filepath.Ext(job.Source))
	return filepath.Join(filepath.Dir(job.Source), base+"."+string(job.Format))
}

// locateOutput finds the artifact a tool produced. Besides the requested
// path it checks <workdir>/<base>.<ext> (LibreOffice ignores file names)
// and the file beside the source. That one only counts if the run created
// or rewrote it, judged against before, its state when the run started.
func locateOutput(job Job, before os.FileInfo) (string, bool) {
	if nonEmpty(job.Out) {
		return job.Out, true
	}
	p := besideSource(job)
	if w := filepath.Join(job.WorkDir, filepath.Base(p)); nonEmpty(w) {
		return w, true
	}
	if p == job.Source {
		return "", false
	}
	info, err := os.Stat(p)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}
	if before != nil && info.ModTime().Equal(before.ModTime()) && info.Size() == before.Size() {
		return "", false
	}
	return p, true
}

func nonEmpty(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}

// moveFile renames src to dst, copying when they are on different devices.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile writes src to dst through a temporary file so a partial copy
// never sits in the slot.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	tmp := dst + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// ClearCache removes every artifact and recreates the directory empty.
// It waits for running conversions to finish first.
func (c *Cache) ClearCache() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	debug.Log(debug.CONVERT, "Clearing cache %s", c.dir)
	if err := os.RemoveAll(c.dir); err != nil {
		return fmt.Errorf("convert: clear cache: %w", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("convert: recreate cache: %w", err)
	}
	if c.index != nil {
		if err := c.index.Reset(); err != nil {
			debug.Log(debug.CONVERT, "Index reset failed: %v", err)
		}
	}
	return nil
}

// Usage returns the number of artifacts and their total size.
func (c *Cache) Usage() (files int, bytes int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return 0, 0
	}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if info, err := e.Info(); err == nil {
			files++
			bytes += info.Size()
		}
	}
	return files, bytes
}

// Entries returns the conversion index, newest first. It is empty when
// the cache has no index.
func (c *Cache) Entries() ([]store.Entry, error) {
	if c.index == nil {
		return nil, nil
	}
	return c.index.List()
}
