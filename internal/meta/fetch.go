// Package meta fetches file metadata off the caller's goroutine so that
// selecting an entry never blocks on a slow or hung filesystem.
package meta

import (
	"io/fs"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"

	"glocate/internal/debug"
)

// Info describes one inspected path. Accessible is false when the stat
// failed; the remaining fields are zero in that case.
type Info struct {
	Path       string
	SizeBytes  int64
	ModifiedAt time.Time
	IsDir      bool
	Items      int // direct children, directories only
	Accessible bool
}

type request struct {
	path  string
	isDir bool
}

// Fetcher resolves metadata requests on a worker goroutine and delivers
// each result on Results. Only the newest pending request is served; a
// request that was replaced before the worker picked it up is never
// inspected. Consumers match Results against their current selection by
// Path and discard anything stale.
type Fetcher struct {
	requests chan request
	results  chan Info
	quit     chan struct{}
	closed   atomic.Bool
}

// NewFetcher starts the worker.
func NewFetcher() *Fetcher {
	f := &Fetcher{
		requests: make(chan request, 1),
		results:  make(chan Info, 4),
		quit:     make(chan struct{}),
	}
	go f.run()
	return f
}

// Results delivers resolved metadata in request order.
func (f *Fetcher) Results() <-chan Info {
	return f.results
}

// Fetch queues a path for inspection, replacing any request the worker
// has not started yet. Never blocks.
func (f *Fetcher) Fetch(path string, isDir bool) {
	if f.closed.Load() {
		return
	}
	req := request{path: path, isDir: isDir}
	for {
		select {
		case f.requests <- req:
			return
		default:
			// Drop the superseded pending request and retry.
			select {
			case <-f.requests:
			default:
			}
		}
	}
}

// Close stops the worker. Pending requests are discarded.
func (f *Fetcher) Close() {
	if f.closed.CompareAndSwap(false, true) {
		close(f.quit)
	}
}

func (f *Fetcher) run() {
	for {
		select {
		case <-f.quit:
			return
		case req := <-f.requests:
			info := inspect(req.path, req.isDir)
			debug.Log(debug.META, "inspect %q: accessible=%v size=%d items=%d",
				req.path, info.Accessible, info.SizeBytes, info.Items)
			select {
			case f.results <- info:
			case <-f.quit:
				return
			}
		}
	}
}

func inspect(path string, isDir bool) Info {
	st, err := os.Stat(path)
	if err != nil {
		return Info{Path: path, IsDir: isDir}
	}
	info := Info{
		Path:       path,
		SizeBytes:  st.Size(),
		ModifiedAt: st.ModTime(),
		IsDir:      st.IsDir(),
		Accessible: true,
	}
	if info.IsDir {
		info.Items = countChildren(path)
	}
	return info
}

// countChildren counts the direct children of dir. Unreadable entries
// are skipped rather than failing the count.
func countChildren(dir string) int {
	var n atomic.Int64
	conf := &fastwalk.Config{Follow: false}
	prefixLen := len(dir)

	err := fastwalk.Walk(conf, dir, func(fullPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if fullPath == dir {
			return nil
		}
		relStart := prefixLen
		if relStart < len(fullPath) && (fullPath[relStart] == '/' || fullPath[relStart] == '\\') {
			relStart++
		}
		if strings.ContainsAny(fullPath[relStart:], `/\`) {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}
		n.Add(1)
		if d.IsDir() {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		debug.Log(debug.META, "countChildren %q: %v", dir, err)
	}
	return int(n.Load())
}
