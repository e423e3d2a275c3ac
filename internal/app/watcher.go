package app

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"glocate/internal/debug"
)

// IndexWatcher watches the plocate database files and notifies when an
// index was rewritten, so results can be flagged as possibly stale and
// the media database re-probed.
//
// updatedb replaces the database atomically, so the interesting events
// are creates and renames inside the database directory, not writes to
// the watched file itself.
type IndexWatcher struct {
	watcher    *fsnotify.Watcher
	mu         sync.Mutex
	indexes    map[string]bool // watched database paths
	dirs       map[string]bool // their parent directories, added to fsnotify
	notify     chan string
	done       chan struct{}
	debounceMs int
}

// NewIndexWatcher creates a watcher for the given database paths. The
// parent directory is watched even when the database itself does not
// exist yet, so the first rebuild is noticed too.
func NewIndexWatcher(paths []string, debounceMs int) (*IndexWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounceMs <= 0 {
		debounceMs = 500
	}

	iw := &IndexWatcher{
		watcher:    w,
		indexes:    make(map[string]bool),
		dirs:       make(map[string]bool),
		notify:     make(chan string, 10),
		done:       make(chan struct{}),
		debounceMs: debounceMs,
	}

	for _, p := range paths {
		if p == "" {
			continue
		}
		iw.indexes[p] = true
		dir := filepath.Dir(p)
		if !iw.dirs[dir] {
			if err := w.Add(dir); err != nil {
				debug.Log(debug.WATCH, "cannot watch %s: %v", dir, err)
				continue
			}
			iw.dirs[dir] = true
		}
	}

	go iw.run()
	return iw, nil
}

// run processes filesystem events with debouncing
func (iw *IndexWatcher) run() {
	lastEvent := make(map[string]time.Time)
	pending := make(map[string]bool)
	ticker := time.NewTicker(time.Duration(iw.debounceMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-iw.done:
			return

		case event, ok := <-iw.watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Write) {
				iw.mu.Lock()
				if iw.indexes[event.Name] {
					lastEvent[event.Name] = time.Now()
					pending[event.Name] = true
					debug.Log(debug.WATCH, "index event: %s on %s", event.Op, event.Name)
				}
				iw.mu.Unlock()
			}

		case err, ok := <-iw.watcher.Errors:
			if !ok {
				return
			}
			debug.Log(debug.WATCH, "fsnotify error: %v", err)

		case <-ticker.C:
			now := time.Now()
			debounce := time.Duration(iw.debounceMs) * time.Millisecond

			for path, isPending := range pending {
				if isPending && now.Sub(lastEvent[path]) >= debounce {
					select {
					case iw.notify <- path:
						debug.Log(debug.WATCH, "index change notification: %s", path)
					default:
					}
					delete(pending, path)
					delete(lastEvent, path)
				}
			}
		}
	}
}

// Notify returns the channel that receives changed database paths
func (iw *IndexWatcher) Notify() <-chan string {
	return iw.notify
}

// Close shuts down the watcher
func (iw *IndexWatcher) Close() error {
	close(iw.done)
	return iw.watcher.Close()
}
