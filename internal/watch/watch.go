// Package watch turns file changes under the library root into rescans.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/llehouerou/zeedle/internal/logger"
	"github.com/llehouerou/zeedle/internal/tags"
)

// DefaultDebounce is the quiet period after the last change before a
// rescan is triggered.
const DefaultDebounce = time.Second

// Watcher watches a library root recursively.
type Watcher struct {
	root     string
	debounce time.Duration
	trigger  func()
	fsw      *fsnotify.Watcher
}

// New watches root and every non-hidden directory below it. trigger runs on
// the Run goroutine once a burst of changes has settled.
func New(root string, debounce time.Duration, trigger func()) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	w := &Watcher{root: root, debounce: debounce, trigger: trigger, fsw: fsw}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run handles events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) && isDir(event.Name) && !hidden(event.Name) {
				if err := w.addTree(event.Name); err != nil {
					logger.Warn("watch new directory", logger.String("path", event.Name), logger.Err(err))
				}
			}
			if !relevant(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-fire:
			logger.Info("library changed", logger.String("root", w.root))
			w.trigger()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", logger.Err(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // unreadable entries are skipped like the scanner does
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && hidden(path) {
			return fs.SkipDir
		}
		return w.fsw.Add(path)
	})
}

// relevant reports whether an event can change the catalog.
func relevant(e fsnotify.Event) bool {
	if hidden(e.Name) {
		return false
	}
	if !e.Has(fsnotify.Create) && !e.Has(fsnotify.Remove) && !e.Has(fsnotify.Rename) && !e.Has(fsnotify.Write) {
		return false
	}
	if tags.IsMusicFile(e.Name) {
		return true
	}
	// A removed or renamed directory no longer stats; treat extensionless
	// names as directories.
	return !e.Has(fsnotify.Write) && filepath.Ext(e.Name) == ""
}

func hidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
