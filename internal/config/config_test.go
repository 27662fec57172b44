package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vista", "config.json")
	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := m.Get()
	if cfg.Preview.MaxTextSize != 5*1024*1024 {
		t.Errorf("MaxTextSize = %d, want 5MB", cfg.Preview.MaxTextSize)
	}
	if cfg.Navigation.BreadcrumbThreshold != 5 {
		t.Errorf("BreadcrumbThreshold = %d, want 5", cfg.Navigation.BreadcrumbThreshold)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("Load must not create %s", path)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"converter":{"runTimeout":"30s"},"preview":{"officeMode":"web"}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg := m.Get()
	if got := cfg.Converter.RunTimeout.Std(); got != 30*time.Second {
		t.Errorf("RunTimeout = %v, want 30s", got)
	}
	if got := cfg.Converter.StartTimeout.Std(); got != 15*time.Second {
		t.Errorf("StartTimeout = %v, want default 15s", got)
	}
	if cfg.Preview.OfficeMode != OfficeWeb {
		t.Errorf("OfficeMode = %q, want web", cfg.Preview.OfficeMode)
	}
	if cfg.View.Mode != "table" {
		t.Errorf("View.Mode = %q, want table", cfg.View.Mode)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	m := NewManager(path)
	if err := m.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.ParseError() == nil {
		t.Error("ParseError() = nil, want error")
	}
	if m.Get().Preview.OfficeMode != OfficePDF {
		t.Error("malformed config should fall back to defaults")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Config)
		check func(Config) bool
	}{
		{"bad office mode", func(c *Config) { c.Preview.OfficeMode = "html" }, func(c Config) bool { return c.Preview.OfficeMode == OfficePDF }},
		{"zero history", func(c *Config) { c.Navigation.MaxHistory = 0 }, func(c Config) bool { return c.Navigation.MaxHistory == 100 }},
		{"tiny threshold", func(c *Config) { c.Navigation.BreadcrumbThreshold = 1 }, func(c Config) bool { return c.Navigation.BreadcrumbThreshold == 5 }},
		{"bad view mode", func(c *Config) { c.View.Mode = "grid" }, func(c Config) bool { return c.View.Mode == "table" }},
		{"volume", func(c *Config) { c.Preview.Volume = 150 }, func(c Config) bool { return c.Preview.Volume == 80 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager(filepath.Join(t.TempDir(), "c.json"))
			m.Update(tt.edit)
			if !tt.check(m.Get()) {
				t.Errorf("normalize did not repair %s: %+v", tt.name, m.Get())
			}
		})
	}
}

func TestGenerateConfigBacksUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"old":true}`), 0o644); err != nil {
		t.Fatal(err)
	}
	backup, err := GenerateConfig(path)
	if err != nil {
		t.Fatalf("GenerateConfig: %v", err)
	}
	if backup == "" {
		t.Fatal("expected a backup path")
	}
	old, err := os.ReadFile(backup)
	if err != nil || string(old) != `{"old":true}` {
		t.Errorf("backup content = %q, %v", old, err)
	}
	fresh, _ := os.ReadFile(path)
	if !strings.Contains(string(fresh), `"startTimeout": "15s"`) {
		t.Errorf("fresh config missing duration string:\n%s", fresh)
	}
}

func TestCacheDirOverride(t *testing.T) {
	cfg := *DefaultConfig()
	cfg.Cache.Dir = "/tmp/x"
	if got := CacheDir(cfg); got != "/tmp/x" {
		t.Errorf("CacheDir = %q", got)
	}
	cfg.Cache.Dir = ""
	if got := CacheDir(cfg); !strings.HasSuffix(got, filepath.Join("vista", "office_cache")) {
		t.Errorf("CacheDir = %q, want .../vista/office_cache", got)
	}
}
