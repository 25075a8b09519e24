package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/asplogic/jshint/internal/host"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Reloader re-reads configuration from disk.
type Reloader interface {
	Path() string
	Reload() error
}

// Watcher feeds changes of files on disk into engines. Every write to an
// open file is treated as an edit and linted by the file's engine after the
// edit delay; writes to the settings file reload the settings.
type Watcher struct {
	watcher  *fsnotify.Watcher
	settings Reloader
	logger   *zap.Logger

	mu         sync.Mutex
	views      map[string]watchedView
	dirs       map[string]bool
	isWatching bool
	done       chan struct{}
}

type watchedView struct {
	buf    *host.Buffer
	engine *Engine
}

// NewWatcher creates a watcher. settings may be nil.
func NewWatcher(settings Reloader, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Watcher{
		watcher:  fw,
		settings: settings,
		logger:   logger,
		views:    make(map[string]watchedView),
		dirs:     make(map[string]bool),
	}, nil
}

// Open loads path into a buffer attached to window and starts tracking it
// with engine. The load event is delivered to the engine's listener.
func (w *Watcher) Open(path string, engine *Engine, window host.Window) (*host.Buffer, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	buf := host.NewBuffer(string(content), abs, "").Attach(window)

	w.mu.Lock()
	w.views[abs] = watchedView{buf: buf, engine: engine}
	w.mu.Unlock()

	// directories are watched so that editors replacing files by rename
	// are still seen
	if err := w.addDir(filepath.Dir(abs)); err != nil {
		return nil, err
	}

	NewListener(engine).OnLoad(buf)
	return buf, nil
}

// StartWatching processes file events until ctx is done or StopWatching is
// called.
func (w *Watcher) StartWatching(ctx context.Context) error {
	var settingsDir string
	if w.settings != nil && w.settings.Path() != "" {
		settingsPath, err := filepath.Abs(w.settings.Path())
		if err != nil {
			return err
		}
		settingsDir = filepath.Dir(settingsPath)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isWatching {
		return fmt.Errorf("already watching")
	}
	if settingsDir != "" {
		if err := w.addDirLocked(settingsDir); err != nil {
			return fmt.Errorf("error watching settings: %w", err)
		}
	}

	w.isWatching = true
	w.done = make(chan struct{})
	go w.watchLoop(ctx, w.done)
	return nil
}

func (w *Watcher) StopWatching() error {
	w.mu.Lock()
	watching, done := w.isWatching, w.done
	w.isWatching = false
	w.mu.Unlock()

	err := w.watcher.Close()
	if !watching {
		w.logger.Debug("Not watching")
		return err
	}
	<-done
	return err
}

// Views returns the tracked buffers by absolute path.
func (w *Watcher) Views() map[string]*host.Buffer {
	w.mu.Lock()
	defer w.mu.Unlock()

	out := make(map[string]*host.Buffer, len(w.views))
	for k, v := range w.views {
		out[k] = v.buf
	}
	return out
}

// Relint schedules a run for every tracked view, after each engine's edit
// delay.
func (w *Watcher) Relint() {
	w.mu.Lock()
	views := make([]watchedView, 0, len(w.views))
	for _, v := range w.views {
		views = append(views, v)
	}
	w.mu.Unlock()

	for _, v := range views {
		v.engine.ScheduleLint(v.buf, v.engine.Settings().EditDelay())
	}
}

func (w *Watcher) addDir(dir string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addDirLocked(dir)
}

func (w *Watcher) addDirLocked(dir string) error {
	if w.dirs[dir] {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("error adding directory to watcher: %w", err)
	}
	w.dirs[dir] = true
	return nil
}

func (w *Watcher) watchLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}

	name, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	if w.settings != nil && w.settings.Path() != "" {
		if settingsPath, err := filepath.Abs(w.settings.Path()); err == nil && settingsPath == name {
			if err := w.settings.Reload(); err != nil {
				w.logger.Error("Failed to reload settings", zap.String("path", name), zap.Error(err))
			}
			return
		}
	}

	w.mu.Lock()
	view, ok := w.views[name]
	w.mu.Unlock()
	if !ok {
		return
	}
	buf := view.buf

	content, err := os.ReadFile(name)
	if err != nil {
		w.logger.Debug("File vanished before it could be read", zap.String("path", name), zap.Error(err))
		return
	}
	if string(content) == buf.Text() {
		return
	}

	buf.SetText(string(content))
	view.engine.ScheduleLint(buf, view.engine.Settings().EditDelay())
}
