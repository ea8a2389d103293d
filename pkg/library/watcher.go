package library

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last file event before
// a reload fires. Editors tend to emit several events per save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a library directory and invokes a reload callback
// when its YAML files change. Rapid event bursts are debounced so a
// multi-file save triggers one reload.
type Watcher struct {
	dir      string
	debounce time.Duration
	logger   *slog.Logger

	fsw *fsnotify.Watcher

	mu      sync.Mutex
	timer   *time.Timer
	running bool
}

// NewWatcher creates a watcher for dir. A debounce of zero selects
// DefaultDebounce.
func NewWatcher(dir string, debounce time.Duration, logger *slog.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	return &Watcher{
		dir:      dir,
		debounce: debounce,
		logger:   logger,
		fsw:      fsw,
	}, nil
}

// Watch blocks, delivering debounced change notifications to onChange
// until the context is cancelled. Errors from onChange are logged, not
// fatal; the watch continues.
func (w *Watcher) Watch(ctx context.Context, onChange func() error) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return fmt.Errorf("watcher already running")
	}
	w.running = true
	w.mu.Unlock()

	if err := w.addTree(w.dir); err != nil {
		return fmt.Errorf("watch library directory: %w", err)
	}

	w.logger.Info("library watcher started",
		"dir", w.dir,
		"debounce_ms", w.debounce.Milliseconds(),
	)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("library watcher stopped")
			return w.close()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !relevant(event) {
				continue
			}
			// New subdirectories need their own watch.
			if event.Op.Has(fsnotify.Create) {
				if isDir(event.Name) {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn("failed to watch new directory",
							"dir", event.Name, "error", err)
					}
					continue
				}
			}
			w.logger.Debug("library file event",
				"path", event.Name, "op", event.Op.String())
			w.schedule(func() {
				w.logger.Info("reloading library", "dir", w.dir)
				if err := onChange(); err != nil {
					w.logger.Error("library reload failed", "error", err)
				}
			})

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("library watcher error", "error", err)
		}
	}
}

func (w *Watcher) close() error {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.running = false
	w.mu.Unlock()
	return w.fsw.Close()
}

// schedule arms the debounce timer, replacing any pending callback.
func (w *Watcher) schedule(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, fn)
}

// addTree watches dir and every non-hidden subdirectory beneath it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %q: %w", path, err)
		}
		return nil
	})
}

// relevant filters events down to content changes on YAML files.
func relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) && event.Op&^fsnotify.Chmod == 0 {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	switch strings.ToLower(filepath.Ext(event.Name)) {
	case ".yaml", ".yml":
		return true
	}
	// Directory events carry no extension; keep them for addTree.
	return event.Op.Has(fsnotify.Create) && isDir(event.Name)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
