// Package watcher watches OCR drop directories with fsnotify and drives
// index and remove callbacks, debouncing rapid writes.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Roots are the directories to watch.
	Roots []string
	// Extensions filters which files trigger callbacks; empty means all.
	Extensions []string
	// Recursive also watches subdirectories, including ones created later.
	Recursive bool
	// Debounce is how long a file must stay quiet before it is indexed.
	// Zero uses the default.
	Debounce time.Duration
	// Logger, when set, logs debug events.
	Logger *zap.Logger
}

// Watcher watches directories and invokes callbacks on file changes.
type Watcher struct {
	opts     Options
	onIndex  func(path string)
	onRemove func(path string)

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	pending map[string]*time.Timer
	started bool

	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher. onIndex is called when a file appears or settles
// after writes; onRemove when a file disappears.
func New(opts Options, onIndex, onRemove func(path string)) *Watcher {
	if opts.Debounce <= 0 {
		opts.Debounce = defaultDebounce
	}
	return &Watcher{
		opts:     opts,
		onIndex:  onIndex,
		onRemove: onRemove,
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return nil
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	w.fsw = fsw
	w.started = true
	if w.opts.Logger != nil {
		w.opts.Logger.Debug("watcher starting",
			zap.Strings("roots", w.opts.Roots),
			zap.Strings("extensions", w.opts.Extensions),
			zap.Bool("recursive", w.opts.Recursive))
	}
	for _, root := range w.opts.Roots {
		if err := w.watchTreeLocked(root); err != nil {
			_ = fsw.Close()
			w.fsw = nil
			w.started = false
			w.mu.Unlock()
			return err
		}
	}
	w.mu.Unlock()
	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if err != nil && w.opts.Logger != nil {
				w.opts.Logger.Debug("watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	path := ev.Name
	if w.opts.Logger != nil {
		w.opts.Logger.Debug("watcher event", zap.String("op", ev.Op.String()), zap.String("path", path))
	}
	switch {
	case ev.Op.Has(fsnotify.Create), ev.Op.Has(fsnotify.Write):
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.addedDirectory(path)
			return
		}
		if matchExtension(path, w.opts.Extensions) {
			w.schedule(path)
		}
	case ev.Op.Has(fsnotify.Remove), ev.Op.Has(fsnotify.Rename):
		w.cancel(path)
		if matchExtension(path, w.opts.Extensions) && w.onRemove != nil {
			w.onRemove(path)
		}
	}
}

// addedDirectory starts watching a directory that appeared under a root and
// indexes whatever it already contains.
func (w *Watcher) addedDirectory(dir string) {
	if !w.opts.Recursive {
		return
	}
	w.mu.Lock()
	if w.fsw != nil {
		if err := w.watchTreeLocked(dir); err != nil && w.opts.Logger != nil {
			w.opts.Logger.Debug("watcher failed to add directory", zap.String("path", dir), zap.Error(err))
		}
	}
	w.mu.Unlock()
	w.syncTree(dir)
}

// schedule arms the debounce timer for path, replacing any earlier one.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
	}
	w.pending[path] = time.AfterFunc(w.opts.Debounce, func() {
		w.mu.Lock()
		delete(w.pending, path)
		w.mu.Unlock()
		if w.opts.Logger != nil {
			w.opts.Logger.Debug("watcher indexing file (debounced)", zap.String("path", path))
		}
		if w.onIndex != nil {
			w.onIndex(path)
		}
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.pending[path]; ok {
		t.Stop()
		delete(w.pending, path)
	}
}

// watchTreeLocked registers root (and its subdirectories when recursive)
// with fsnotify, creating the root if it does not exist yet.
func (w *Watcher) watchTreeLocked(root string) error {
	root = filepath.Clean(root)
	if _, err := os.Stat(root); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err := os.MkdirAll(root, 0755); err != nil {
			return err
		}
	}
	if !w.opts.Recursive {
		return w.fsw.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.fsw.Add(path)
		}
		return nil
	})
}

// SyncExistingFiles indexes all matching files already present under the
// watched roots. Call after Start to pick up files that predate the watcher.
func (w *Watcher) SyncExistingFiles() {
	for _, root := range w.opts.Roots {
		w.syncTree(root)
	}
}

func (w *Watcher) syncTree(root string) {
	if w.opts.Logger != nil {
		w.opts.Logger.Debug("watcher syncing directory", zap.String("root", root))
	}
	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if matchExtension(path, w.opts.Extensions) && w.onIndex != nil {
			w.onIndex(path)
		}
		return nil
	})
}

// Directories returns the watched root directories.
func (w *Watcher) Directories() []string {
	return append([]string(nil), w.opts.Roots...)
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started || w.fsw == nil {
		w.mu.Unlock()
		return
	}
	for path, t := range w.pending {
		t.Stop()
		delete(w.pending, path)
	}
	_ = w.fsw.Close()
	w.fsw = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}

func matchExtension(path string, extensions []string) bool {
	if len(extensions) == 0 {
		return true
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	for _, e := range extensions {
		if strings.TrimPrefix(strings.ToLower(e), ".") == ext {
			return true
		}
	}
	return false
}
