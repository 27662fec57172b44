package app

import (
	"log"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"

	"github.com/justyntemme/vista/internal/config"
	"github.com/justyntemme/vista/internal/convert"
	"github.com/justyntemme/vista/internal/debug"
	"github.com/justyntemme/vista/internal/fs"
	"github.com/justyntemme/vista/internal/media"
	"github.com/justyntemme/vista/internal/nav"
	"github.com/justyntemme/vista/internal/pdf"
	"github.com/justyntemme/vista/internal/preview"
	"github.com/justyntemme/vista/internal/store"
	"github.com/justyntemme/vista/internal/ui"
	"github.com/justyntemme/vista/internal/view"
)

const (
	thumbnailEntries = 500
	thumbnailPixels  = 128
)

// Options are the command-line inputs.
type Options struct {
	Debug      bool
	ConfigPath string
	StartPath  string
}

// Orchestrator wires the packages together and owns the frame loop.
type Orchestrator struct {
	opts   Options
	window *app.Window
	cfg    *config.Manager

	deps   *SharedDeps
	shared *SharedState
	state  ui.State

	nav     *NavigationController
	preview *PreviewController
	watcher *DirectoryWatcher

	index   *store.DB
	conv    *convert.Cache
	poppler *pdf.Poppler

	done chan struct{}
}

func NewOrchestrator(opts Options) *Orchestrator {
	o := &Orchestrator{
		opts:   opts,
		window: new(app.Window),
		cfg:    config.NewManager(opts.ConfigPath),
		done:   make(chan struct{}),
	}
	o.state = ui.State{SelectedIndex: -1}
	return o
}

// setup loads the configuration and builds every collaborator. Optional
// tools that are missing degrade the matching surface instead of failing.
func (o *Orchestrator) setup() {
	if err := o.cfg.Load(); err != nil {
		log.Printf("Failed to read config: %v", err)
	}
	if perr := o.cfg.ParseError(); perr != nil {
		o.state.ConfigError = perr.Error()
	}
	cfg := o.cfg.Get()

	home, err := os.UserHomeDir()
	if err != nil {
		home, _ = os.Getwd()
	}

	cacheDir := config.CacheDir(cfg)
	if db, err := store.Open(filepath.Join(filepath.Dir(cacheDir), "index.db")); err != nil {
		log.Printf("Conversion index unavailable: %v", err)
	} else {
		o.index = db
	}
	conv, err := convert.New(convert.Options{
		Dir:          cacheDir,
		StartTimeout: cfg.Converter.StartTimeout.Std(),
		RunTimeout:   cfg.Converter.RunTimeout.Std(),
		Tools:        cfg.Converter.Tools,
		Index:        o.index,
	})
	if err != nil {
		log.Printf("Office conversion disabled: %v", err)
	} else {
		o.conv = conv
	}

	// Interfaces stay nil, not typed-nil, when a tool is missing.
	var player media.Player
	if p, err := media.NewFFPlay(cfg.Preview.PlayerPath, cfg.Preview.Volume); err != nil {
		debug.Log(debug.APP, "media: %v", err)
	} else {
		player = p
	}
	var renderer pdf.Renderer
	if cfg.Preview.PDFEnabled {
		if p, err := pdf.NewPoppler(); err != nil {
			debug.Log(debug.APP, "pdf: %v", err)
		} else {
			o.poppler = p
			renderer = p
		}
	}
	var converter preview.Converter
	if o.conv != nil {
		converter = o.conv
	}

	thumbs := ui.NewThumbnailCache(thumbnailEntries, thumbnailPixels)
	thumbs.OnLoad = func(string) { o.window.Invalidate() }

	r := ui.NewRenderer(thumbs, config.NewHotkeyMatcher(cfg.Hotkeys))
	r.Debug = o.opts.Debug

	o.deps = &SharedDeps{
		Window: o.window,
		FS:     fs.NewSystem(),
		UI:     r,
		Config: o.cfg,
		Thumbs: thumbs,
		Home:   home,
	}

	vc := view.NewController(fs.List, view.Options{
		Mode:       view.ParseMode(cfg.View.Mode),
		Sort:       view.SortOrder{Column: view.ParseSortColumn(cfg.View.DefaultSort), Ascending: cfg.View.SortAscending},
		ShowHidden: cfg.View.ShowDotfiles,
		Thumbnails: cfg.View.Thumbnails,
		Columns:    view.Columns{Size: cfg.View.ShowSize, Type: cfg.View.ShowType, Modified: cfg.View.ShowModified},
	})
	o.shared = &SharedState{State: &o.state, View: vc}
	o.shared.rebuildEntries()

	dispatcher := preview.NewDispatcher(preview.Options{
		Player:     player,
		Renderer:   renderer,
		Converter:  converter,
		OfficeMode: cfg.Preview.OfficeMode,
		Text: preview.TextOptions{
			MaxSize:   cfg.Preview.MaxTextSize,
			Highlight: cfg.Preview.Highlight,
		},
		AutoPlay: cfg.Preview.AutoPlay,
		FitA4:    cfg.Preview.PDFFitA4,
		OnChange: o.window.Invalidate,
	})
	o.preview = NewPreviewController(o.deps, dispatcher)

	if w, err := NewDirectoryWatcher(0); err != nil {
		log.Printf("Folder watching disabled: %v", err)
	} else {
		o.watcher = w
	}
	navigator := nav.NewNavigator(home, cfg.Navigation.MaxHistory)
	o.nav = NewNavigationController(o.deps, o.shared, navigator, o.preview, o.watcher)

	o.state.Places = ui.NewPlaces(fs.Places(home))
	o.state.PreviewVisible = cfg.Preview.Enabled
	o.state.PreviewPercent = cfg.Preview.WidthPercent
	o.state.PDFAvailable = renderer != nil
}

func (o *Orchestrator) Run() error {
	if o.opts.Debug {
		log.Println("Starting Vista in DEBUG mode")
	}
	o.setup()
	defer o.shutdown()

	go o.deps.FS.Start()
	go o.processEvents()
	o.refreshCacheUsage()

	start := o.opts.StartPath
	if start == "" {
		start = o.deps.Home
	}
	if err := o.nav.nav.NavigateTo(start); err != nil {
		log.Printf("Cannot open %s: %v", start, err)
		o.nav.NavigateTo(o.deps.Home)
	}

	var ops op.Ops
	for {
		switch e := o.window.Event().(type) {
		case app.DestroyEvent:
			return e.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, e)

			o.shared.Mu.Lock()
			o.preview.syncLocked(&o.state)
			evt := o.deps.UI.Layout(gtx, &o.state)
			o.shared.Mu.Unlock()
			o.preview.afterLayout(o.deps.UI.PreviewSize)

			if evt.Action != ui.ActionNone {
				debug.Log(debug.UI, "Action: %d path=%q index=%d", evt.Action, evt.Path, evt.NewIndex)
				o.handleUIEvent(evt)
			}
			e.Frame(gtx.Ops)
		}
	}
}

// processEvents applies worker results until shutdown.
func (o *Orchestrator) processEvents() {
	var changes <-chan string
	if o.watcher != nil {
		changes = o.watcher.Notify()
	}
	for {
		select {
		case <-o.done:
			return
		case resp := <-o.deps.FS.ResponseChan:
			o.nav.handleFSResponse(resp)
		case dir := <-changes:
			o.nav.dirChanged(dir)
		}
	}
}

// refreshCacheUsage recounts the conversion cache in the background.
func (o *Orchestrator) refreshCacheUsage() {
	if o.conv == nil {
		return
	}
	go func() {
		files, bytes := o.conv.Usage()
		o.shared.Mu.Lock()
		o.state.CacheFiles, o.state.CacheBytes = files, bytes
		o.shared.Mu.Unlock()
		o.window.Invalidate()
	}()
}

func (o *Orchestrator) shutdown() {
	close(o.done)
	o.preview.Stop()
	if o.watcher != nil {
		o.watcher.Close()
	}
	o.deps.Thumbs.Stop()
	if o.poppler != nil {
		o.poppler.Close()
	}
	if o.index != nil {
		if err := o.index.Close(); err != nil {
			log.Printf("Closing index: %v", err)
		}
	}
}

// Main runs the window on its own goroutine as Gio requires and exits the
// process when it closes.
func Main(opts Options) {
	go func() {
		o := NewOrchestrator(opts)
		o.window.Option(app.Title("Vista"), app.Size(unit.Dp(1200), unit.Dp(760)))
		if err := o.Run(); err != nil {
			log.Fatal(err)
		}
		os.Exit(0)
	}()
	app.Main()
}
