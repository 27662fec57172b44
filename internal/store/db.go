// Package store keeps the index of converted office artifacts in sqlite.
// The index is advisory: the converter cache always re-checks mtimes on
// disk, so a stale or missing row never serves a stale artifact.
package store

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/vista/internal/debug"
)

var ErrClosed = errors.New("store: closed")

// Entry is one conversion record.
type Entry struct {
	Key       string // sha1 of the absolute source path
	Source    string
	Artifact  string
	Tool      string
	SourceMod time.Time // source mtime at conversion
	CreatedAt time.Time
}

type EventType int

const (
	RecordConversion EventType = iota
	LookupConversion
	ListConversions
	DeleteConversion
	ResetConversions
)

type request struct {
	Op    EventType
	Key   string
	Entry Entry
	reply chan response
}

type response struct {
	Entry   Entry
	Found   bool
	Entries []Entry
	Err     error
}

// DB serialises all access through one worker goroutine.
type DB struct {
	conn     *sql.DB
	requests chan request
	done     chan struct{}

	mu     sync.RWMutex
	closed bool
}

// Open initializes the database connection and schema
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		db.Close()
		return nil, err
	}

	query := `
	CREATE TABLE IF NOT EXISTS conversions (
		key TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		artifact TEXT NOT NULL,
		tool TEXT NOT NULL,
		source_mtime INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(query); err != nil {
		db.Close()
		return nil, err
	}

	debug.Log(debug.STORE, "Opened conversion index %s", dbPath)
	d := &DB{
		conn:     db,
		requests: make(chan request, 10),
		done:     make(chan struct{}),
	}
	go d.run()
	return d, nil
}

// run is the worker loop; it owns conn until Close.
func (d *DB) run() {
	defer close(d.done)
	for req := range d.requests {
		var resp response
		switch req.Op {
		case RecordConversion:
			resp.Err = d.handleRecord(req.Entry)
		case LookupConversion:
			resp.Entry, resp.Found, resp.Err = d.handleLookup(req.Key)
		case ListConversions:
			resp.Entries, resp.Err = d.handleList()
		case DeleteConversion:
			_, resp.Err = d.conn.Exec("DELETE FROM conversions WHERE key = ?", req.Key)
		case ResetConversions:
			_, resp.Err = d.conn.Exec("DELETE FROM conversions")
		}
		if resp.Err != nil {
			debug.Log(debug.STORE, "Store error (op %d): %v", req.Op, resp.Err)
		}
		req.reply <- resp
	}
}

func (d *DB) do(req request) response {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return response{Err: ErrClosed}
	}
	req.reply = make(chan response, 1)
	d.requests <- req
	return <-req.reply
}

// Record inserts or replaces the row for e.Key.
func (d *DB) Record(e Entry) error {
	return d.do(request{Op: RecordConversion, Entry: e}).Err
}

// Lookup returns the row for key.
func (d *DB) Lookup(key string) (Entry, bool, error) {
	r := d.do(request{Op: LookupConversion, Key: key})
	return r.Entry, r.Found, r.Err
}

// List returns all rows, newest first.
func (d *DB) List() ([]Entry, error) {
	r := d.do(request{Op: ListConversions})
	return r.Entries, r.Err
}

// Delete removes the row for key.
func (d *DB) Delete(key string) error {
	return d.do(request{Op: DeleteConversion, Key: key}).Err
}

// Reset removes every row.
func (d *DB) Reset() error {
	return d.do(request{Op: ResetConversions}).Err
}

func (d *DB) handleRecord(e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := d.conn.Exec(
		`INSERT OR REPLACE INTO conversions (key, source, artifact, tool, source_mtime, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Key, e.Source, e.Artifact, e.Tool, e.SourceMod.UnixNano(), e.CreatedAt.UnixNano())
	return err
}

func (d *DB) handleLookup(key string) (Entry, bool, error) {
	row := d.conn.QueryRow(
		"SELECT key, source, artifact, tool, source_mtime, created_at FROM conversions WHERE key = ?", key)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	return e, true, nil
}

func (d *DB) handleList() ([]Entry, error) {
	rows, err := d.conn.Query(
		"SELECT key, source, artifact, tool, source_mtime, created_at FROM conversions ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var mod, created int64
	if err := s.Scan(&e.Key, &e.Source, &e.Artifact, &e.Tool, &mod, &created); err != nil {
		return Entry{}, err
	}
	e.SourceMod = time.Unix(0, mod)
	e.CreatedAt = time.Unix(0, created)
	return e, nil
}

// Close stops the worker and closes the connection. Calls after Close
// return ErrClosed.
func (d *DB) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.requests)
	d.mu.Unlock()

	<-d.done
	return d.conn.Close()
}
