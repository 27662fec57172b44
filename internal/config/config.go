package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/justyntemme/vista/internal/debug"
)

// Config holds all user-configurable settings loaded from config.json
type Config struct {
	Preview    PreviewConfig    `json:"preview"`
	Converter  ConverterConfig  `json:"converter"`
	View       ViewConfig       `json:"view"`
	Navigation NavigationConfig `json:"navigation"`
	Cache      CacheConfig      `json:"cache"`
	Hotkeys    HotkeysConfig    `json:"hotkeys"`
}

// Office preview modes
const (
	OfficeDetails = "details"
	OfficeWeb     = "web"
	OfficePDF     = "pdf"
)

// PreviewConfig holds preview pane settings
type PreviewConfig struct {
	Enabled      bool   `json:"enabled"`
	WidthPercent int    `json:"widthPercent"`
	MaxTextSize  int64  `json:"maxTextSize"` // bytes; larger files show a placeholder
	OfficeMode   string `json:"officeMode"`  // "details" | "web" | "pdf"
	PDFEnabled   bool   `json:"pdfEnabled"`
	Highlight    bool   `json:"highlight"`  // syntax colouring for code files
	PDFFitA4     bool   `json:"pdfFitA4"`   // fit pages to an A4 aspect
	AutoPlay     bool   `json:"autoPlay"`
	Volume       int    `json:"volume"`     // 0-100
	PlayerPath   string `json:"playerPath"` // empty = search PATH for ffplay
}

// ConverterConfig controls external office converters.
type ConverterConfig struct {
	StartTimeout Duration `json:"startTimeout"`
	RunTimeout   Duration `json:"runTimeout"`
	// Tools restricts and orders the converters tried. Empty means the
	// built-in priority list.
	Tools []string `json:"tools,omitempty"`
}

// ViewConfig holds directory view settings
type ViewConfig struct {
	Mode          string `json:"mode"`        // "table" | "icon" | "tree"
	DefaultSort   string `json:"defaultSort"` // "name" | "date" | "type" | "size"
	SortAscending bool   `json:"sortAscending"`
	ShowDotfiles  bool   `json:"showDotfiles"`
	Thumbnails    bool   `json:"thumbnails"`
	ShowSize      bool   `json:"showSize"`
	ShowType      bool   `json:"showType"`
	ShowModified  bool   `json:"showModified"`
}

// NavigationConfig holds history and breadcrumb settings
type NavigationConfig struct {
	MaxHistory          int `json:"maxHistory"`
	BreadcrumbThreshold int `json:"breadcrumbThreshold"`
}

// CacheConfig locates the conversion cache.
type CacheConfig struct {
	Dir string `json:"dir,omitempty"` // empty = <user cache dir>/vista/office_cache
}

// Duration is a time.Duration stored as a Go duration string ("15s").
type Duration time.Duration

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// Accept plain nanosecond numbers too.
		var n int64
		if nerr := json.Unmarshal(b, &n); nerr != nil {
			return fmt.Errorf("duration must be a string like \"15s\": %w", err)
		}
		*d = Duration(n)
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Manager handles loading, saving, and accessing configuration
type Manager struct {
	mu       sync.RWMutex
	config   *Config
	path     string
	parseErr error // Stores parsing error if config failed to load
}

// NewManager creates a manager bound to path. An empty path means ConfigPath().
func NewManager(path string) *Manager {
	if path == "" {
		path = ConfigPath()
	}
	return &Manager{
		config: DefaultConfig(),
		path:   path,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Preview: PreviewConfig{
			Enabled:      true,
			WidthPercent: 35,
			MaxTextSize:  5 * 1024 * 1024,
			OfficeMode:   OfficePDF,
			PDFEnabled:   true,
			Highlight:    true,
			AutoPlay:     true,
			Volume:       80,
		},
		Converter: ConverterConfig{
			StartTimeout: Duration(15 * time.Second),
			RunTimeout:   Duration(120 * time.Second),
		},
		View: ViewConfig{
			Mode:          "table",
			DefaultSort:   "name",
			SortAscending: true,
			Thumbnails:    true,
			ShowSize:      true,
			ShowType:      true,
			ShowModified:  true,
		},
		Navigation: NavigationConfig{
			MaxHistory:          100,
			BreadcrumbThreshold: 5,
		},
		Hotkeys: DefaultHotkeys(),
	}
}

// ConfigPath returns <user config dir>/vista/config.json
func ConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "vista", "config.json")
}

// CacheDir resolves the conversion cache directory for cfg.
func CacheDir(cfg Config) string {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir
	}
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "vista", "office_cache")
}

// Load reads the configuration file. A missing file leaves the defaults in
// place and writes nothing; only the conversion cache is persisted by
// default. A malformed file is recorded in ParseError and defaults are used.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.parseErr = nil

	data, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		debug.Log(debug.APP, "Config: %s not found, using defaults", m.path)
		m.config = DefaultConfig()
		return nil
	}
	if err != nil {
		debug.Log(debug.APP, "Config: failed to read %s: %v", m.path, err)
		return err
	}

	// Unmarshal over defaults so a partial file keeps the rest.
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		debug.Log(debug.APP, "Config: JSON parse error: %v", err)
		m.parseErr = err
		m.config = DefaultConfig()
		return nil
	}
	cfg.normalize()

	debug.Log(debug.APP, "Config: loaded from %s", m.path)
	m.config = cfg
	return nil
}

// normalize replaces out-of-range values with defaults.
func (c *Config) normalize() {
	def := DefaultConfig()
	switch c.Preview.OfficeMode {
	case OfficeDetails, OfficeWeb, OfficePDF:
	default:
		c.Preview.OfficeMode = def.Preview.OfficeMode
	}
	if c.Preview.MaxTextSize <= 0 {
		c.Preview.MaxTextSize = def.Preview.MaxTextSize
	}
	if c.Preview.Volume < 0 || c.Preview.Volume > 100 {
		c.Preview.Volume = def.Preview.Volume
	}
	if c.Converter.StartTimeout <= 0 {
		c.Converter.StartTimeout = def.Converter.StartTimeout
	}
	if c.Converter.RunTimeout <= 0 {
		c.Converter.RunTimeout = def.Converter.RunTimeout
	}
	if c.Navigation.MaxHistory <= 0 {
		c.Navigation.MaxHistory = def.Navigation.MaxHistory
	}
	if c.Navigation.BreadcrumbThreshold < 2 {
		c.Navigation.BreadcrumbThreshold = def.Navigation.BreadcrumbThreshold
	}
	switch c.View.Mode {
	case "table", "icon", "tree":
	default:
		c.View.Mode = def.View.Mode
	}
}

// saveUnlocked saves config without acquiring lock (caller must hold lock)
func (m *Manager) saveUnlocked() error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(m.config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.path, data, 0o644)
}

// Save writes the current configuration to disk
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveUnlocked()
}

// Get returns a copy of the current configuration
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.config == nil {
		return *DefaultConfig()
	}
	return *m.config
}

// Update applies fn to the in-memory configuration. Nothing is written.
func (m *Manager) Update(fn func(*Config)) {
	m.mu.Lock()
	fn(m.config)
	m.config.normalize()
	m.mu.Unlock()
}

// Path returns the file the manager reads and writes.
func (m *Manager) Path() string {
	return m.path
}

// ParseError returns the parsing error if config failed to load
func (m *Manager) ParseError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.parseErr
}

// GenerateConfig backs up an existing config at path and writes a fresh
// default one. It returns the backup path, or "" if there was nothing to
// back up.
func GenerateConfig(path string) (backupPath string, err error) {
	if path == "" {
		path = ConfigPath()
	}

	if _, err := os.Stat(path); err == nil {
		timestamp := time.Now().Format("20060102-150405")
		backupPath = filepath.Join(filepath.Dir(path), "config.backup."+timestamp+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read existing config: %w", err)
		}
		if err := os.WriteFile(backupPath, data, 0o644); err != nil {
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return backupPath, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(DefaultConfig(), "", "  ")
	if err != nil {
		return backupPath, fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return backupPath, fmt.Errorf("failed to write config: %w", err)
	}

	return backupPath, nil
}
