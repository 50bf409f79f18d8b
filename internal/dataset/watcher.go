package dataset

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Change reports that a watched input file was written, created, or removed.
type Change struct {
	File string // absolute or as-given path of the changed file
}

// Watcher monitors a fixed set of input files for changes using fsnotify.
// Events are debounced so a burst of writes from an editor save produces a
// single Change.
type Watcher struct {
	Changes <-chan Change // read-only external channel

	files   map[string]bool // base-resolved paths we care about
	changes chan Change
	done    chan struct{}
	started bool
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher over the given files. The parent directories
// are watched rather than the files themselves, so rename-and-replace saves
// are still observed.
func NewWatcher(files ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	ch := make(chan Change, 16)
	w := &Watcher{
		Changes: ch,
		files:   make(map[string]bool, len(files)),
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	for _, f := range files {
		w.files[filepath.Clean(f)] = true
	}
	return w, nil
}

// Start begins watching the parent directories of the registered files.
func (w *Watcher) Start() error {
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := w.watcher.Add(dir); err != nil {
			return err
		}
	}

	w.started = true
	go w.loop()
	return nil
}

// Stop closes the watcher and channels. Safe to call without a prior Start.
func (w *Watcher) Stop() {
	w.watcher.Close()
	if w.started {
		<-w.done // wait for loop to exit
	}
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Debounce: track last event time per file.
	const debounce = 100 * time.Millisecond
	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for file := range pending {
					w.changes <- Change{File: file}
				}
				return
			}
			if !w.files[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[filepath.Clean(event.Name)] = time.Now()
			}

		case _, ok := <-ticker.C:
			if !ok {
				return
			}
			now := time.Now()
			for file, at := range pending {
				if now.Sub(at) >= debounce {
					w.changes <- Change{File: file}
					delete(pending, file)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Watch errors are non-fatal; the next event or re-run recovers.
		}
	}
}
