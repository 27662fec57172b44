package fs

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"
)

func makeTree(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	for _, d := range []string{"dir1", "dir2", ".hidden_dir", "dir1/nested"} {
		if err := os.MkdirAll(filepath.Join(tmpDir, d), 0o755); err != nil {
			t.Fatalf("failed to create dir %s: %v", d, err)
		}
	}
	for _, f := range []string{"file1.TXT", "file2.go", ".hidden_file", "dir1/inner.txt"} {
		if err := os.WriteFile(filepath.Join(tmpDir, f), []byte("content"), 0o644); err != nil {
			t.Fatalf("failed to create file %s: %v", f, err)
		}
	}
	return tmpDir
}

func names(entries []Entry) []string {
	var out []string
	for _, e := range entries {
		out = append(out, e.Name)
	}
	sort.Strings(out)
	return out
}

func TestList(t *testing.T) {
	tmpDir := makeTree(t)

	entries, err := List(tmpDir, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	got := names(entries)
	want := []string{"dir1", "dir2", "file1.TXT", "file2.go"}
	if len(got) != len(want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, e := range entries {
		switch e.Name {
		case "dir1":
			if !e.IsDir || e.Ext != "" {
				t.Errorf("dir1: %+v", e)
			}
		case "file1.TXT":
			if e.IsDir || e.Size != 7 || e.Ext != "txt" {
				t.Errorf("file1.TXT: %+v", e)
			}
			if time.Since(e.ModTime) > time.Minute {
				t.Errorf("file1.TXT ModTime = %v", e.ModTime)
			}
		}
	}
}

func TestListShowHidden(t *testing.T) {
	tmpDir := makeTree(t)
	entries, err := List(tmpDir, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 6 {
		t.Errorf("got %v, want 6 entries including dotfiles", names(entries))
	}
}

func TestListNonExistent(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "nope"), false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestListBrokenSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}
	tmpDir := t.TempDir()
	if err := os.Symlink(filepath.Join(tmpDir, "missing"), filepath.Join(tmpDir, "dangling")); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(tmpDir, "real")
	os.Mkdir(target, 0o755)
	if err := os.Symlink(target, filepath.Join(tmpDir, "link")); err != nil {
		t.Fatal(err)
	}

	entries, err := List(tmpDir, false)
	if err != nil {
		t.Fatal(err)
	}
	found := map[string]Entry{}
	for _, e := range entries {
		found[e.Name] = e
	}
	if _, ok := found["dangling"]; !ok {
		t.Error("broken symlink should still be listed")
	}
	if e, ok := found["link"]; !ok || !e.IsDir {
		t.Errorf("symlink to dir: %+v", e)
	}
}

func TestCountEntries(t *testing.T) {
	tmpDir := makeTree(t)
	n, err := CountEntries(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if n != 6 {
		t.Errorf("CountEntries = %d, want 6", n)
	}
	if _, err := CountEntries(filepath.Join(tmpDir, "nope")); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestSystemWorker(t *testing.T) {
	tmpDir := makeTree(t)
	s := NewSystem()
	go s.Start()
	defer close(s.RequestChan)

	gen := s.NextGen()
	s.RequestChan <- Request{Op: FetchDir, Path: tmpDir, Gen: gen}
	select {
	case resp := <-s.ResponseChan:
		if resp.Err != nil || resp.Gen != gen || len(resp.Entries) != 4 {
			t.Errorf("resp = %+v", resp)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for FetchDir")
	}

	s.RequestChan <- Request{Op: CountDir, Path: filepath.Join(tmpDir, "dir1"), Gen: s.NextGen()}
	select {
	case resp := <-s.ResponseChan:
		if resp.Count != 2 {
			t.Errorf("count = %d, want 2", resp.Count)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for CountDir")
	}
	if s.Latest() != 2 {
		t.Errorf("Latest = %d", s.Latest())
	}
}

func TestShortcuts(t *testing.T) {
	home := t.TempDir()
	os.Mkdir(filepath.Join(home, "Documents"), 0o755)
	os.WriteFile(filepath.Join(home, "Music"), nil, 0o644) // a file, not a folder
	got := Shortcuts(home)
	if len(got) != 2 || got[0].Name != "Home" || got[1].Name != "Documents" {
		t.Errorf("Shortcuts = %+v", got)
	}
	if Shortcuts("") != nil {
		t.Error("empty home should yield no shortcuts")
	}
	if places := Places(home); len(places) < 3 {
		t.Errorf("Places should append at least one drive: %+v", places)
	}
}
