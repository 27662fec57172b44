package store

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "idx", "conversions.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordLookup(t *testing.T) {
	db := openTemp(t)
	mod := time.Unix(1700000000, 123)
	e := Entry{Key: "abc", Source: "/s/a.docx", Artifact: "/c/abc.pdf", Tool: "unoconv", SourceMod: mod}
	if err := db.Record(e); err != nil {
		t.Fatal(err)
	}
	got, ok, err := db.Lookup("abc")
	if err != nil || !ok {
		t.Fatalf("Lookup: ok=%v err=%v", ok, err)
	}
	if got.Source != e.Source || got.Artifact != e.Artifact || got.Tool != e.Tool {
		t.Errorf("got %+v", got)
	}
	if !got.SourceMod.Equal(mod) {
		t.Errorf("SourceMod = %v, want %v", got.SourceMod, mod)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	if _, ok, err := db.Lookup("missing"); ok || err != nil {
		t.Errorf("missing key: ok=%v err=%v", ok, err)
	}
}

func TestRecordReplaces(t *testing.T) {
	db := openTemp(t)
	db.Record(Entry{Key: "k", Source: "a", Artifact: "x", Tool: "pandoc"})
	db.Record(Entry{Key: "k", Source: "a", Artifact: "x", Tool: "soffice"})
	list, err := db.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Tool != "soffice" {
		t.Errorf("list = %+v", list)
	}
}

func TestListOrderDeleteReset(t *testing.T) {
	db := openTemp(t)
	base := time.Now()
	for i, k := range []string{"a", "b", "c"} {
		db.Record(Entry{Key: k, Source: k, Artifact: k, Tool: "t", CreatedAt: base.Add(time.Duration(i) * time.Second)})
	}
	list, _ := db.List()
	if len(list) != 3 || list[0].Key != "c" || list[2].Key != "a" {
		t.Fatalf("list order = %+v", list)
	}
	if err := db.Delete("b"); err != nil {
		t.Fatal(err)
	}
	list, _ = db.List()
	if len(list) != 2 {
		t.Errorf("after delete: %d rows", len(list))
	}
	if err := db.Reset(); err != nil {
		t.Fatal(err)
	}
	list, _ = db.List()
	if len(list) != 0 {
		t.Errorf("after reset: %d rows", len(list))
	}
}

func TestConcurrentCallers(t *testing.T) {
	db := openTemp(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i))
			if err := db.Record(Entry{Key: key, Source: key, Artifact: key, Tool: "t"}); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()
	list, _ := db.List()
	if len(list) != 20 {
		t.Errorf("rows = %d, want 20", len(list))
	}
}

func TestClosed(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "c.db"))
	if err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Fatal(err)
	}
	if err := db.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := db.Record(Entry{Key: "x"}); !errors.Is(err, ErrClosed) {
		t.Errorf("Record after Close: %v", err)
	}
}
