package manager

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceInterval is how long the watcher waits after the last file
// event before triggering a reload. Editors and atomic-rename writers
// produce bursts of events for a single logical change.
const debounceInterval = 200 * time.Millisecond

// fileWatcher watches the catalog backing files and triggers a reload
// after changes settle.
type fileWatcher struct {
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	files    map[string]bool
	onChange func()

	mu    sync.Mutex
	timer *time.Timer
}

// newFileWatcher watches the parent directories of the given files.
// Watching directories instead of the files themselves survives the
// rename-over-the-top writes the authoring store performs.
func newFileWatcher(paths []string, logger *slog.Logger, onChange func()) (*fileWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &fileWatcher{
		watcher:  w,
		logger:   logger,
		files:    make(map[string]bool),
		onChange: onChange,
	}

	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			w.Close()
			return nil, err
		}
		fw.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for dir := range dirs {
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, err
		}
	}

	return fw, nil
}

// run processes events until the context is cancelled.
func (fw *fileWatcher) run(ctx context.Context) {
	defer fw.watcher.Close()

	fw.logger.Info("catalog watcher started", "files", len(fw.files))

	for {
		select {
		case <-ctx.Done():
			fw.stopTimer()
			fw.logger.Info("catalog watcher stopped")
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !fw.relevant(event) {
				continue
			}
			fw.logger.Debug("catalog file changed", "file", event.Name, "op", event.Op.String())
			fw.schedule()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("catalog watcher error", "error", err)
		}
	}
}

// relevant filters directory noise down to writes touching the watched
// files.
func (fw *fileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return fw.files[abs]
}

// schedule arms (or re-arms) the debounce timer.
func (fw *fileWatcher) schedule() {
	fw.mu.Lock()
	defer fw.mu.Unlock()

	if fw.timer != nil {
		fw.timer.Stop()
	}
	fw.timer = time.AfterFunc(debounceInterval, fw.onChange)
}

func (fw *fileWatcher) stopTimer() {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.timer != nil {
		fw.timer.Stop()
	}
}
