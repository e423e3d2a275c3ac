// Package app wires the query pipeline together: it owns the session
// state, dispatches lookups and rebuilds, and fans results back out as
// events.
package app

import (
	"context"
	"errors"
	"time"

	"glocate/internal/category"
	"glocate/internal/config"
	"glocate/internal/debug"
	"glocate/internal/locate"
	"glocate/internal/meta"
	"glocate/internal/query"
	"glocate/internal/result"
	"glocate/internal/store"
	"glocate/internal/task"
)

// LookupRunner runs one lookup against the index.
type LookupRunner interface {
	Invoke(ctx context.Context, in query.Intent) ([]string, error)
}

// RebuildRunner runs one index rebuild.
type RebuildRunner interface {
	Run(ctx context.Context, spec locate.RebuildSpec) error
}

// Deps holds the controller's collaborators. Store and Watcher may be
// nil; everything else is required.
type Deps struct {
	Config   *config.Manager
	Lookup   LookupRunner
	Rebuild  RebuildRunner
	Store    *store.DB
	Watcher  *IndexWatcher
	OpenPath func(path string) error
}

// Controller drives the session: it validates queries, runs lookups on
// the task supervisor, refilters in memory, and reports everything on
// its event channel.
type Controller struct {
	deps  Deps
	state *SessionState
	tasks *task.Supervisor
	meta  *meta.Fetcher

	events chan Event
	done   chan struct{}
}

// NewController builds a controller and starts its background
// consumers.
func NewController(deps Deps) *Controller {
	if deps.OpenPath == nil {
		deps.OpenPath = platformOpen
	}
	cfg := deps.Config.Get()

	col := result.ByName
	if cfg.Results.SortColumn == "path" {
		col = result.ByPath
	}

	c := &Controller{
		deps:   deps,
		state:  NewSessionState(col, cfg.Results.SortAscending),
		tasks:  task.NewSupervisor(),
		meta:   meta.NewFetcher(),
		events: make(chan Event, 32),
		done:   make(chan struct{}),
	}
	go c.consumeMeta()
	if deps.Watcher != nil {
		go c.consumeWatcher()
	}
	return c
}

// Events delivers controller notifications. A slow consumer may lose
// view-refresh events but never terminal ones.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// State exposes the session for snapshots.
func (c *Controller) State() *SessionState {
	return c.state
}

// RunLookup submits the main query text. An empty or blank query
// resets the session. While a lookup is in flight a second submission
// is rejected with task.ErrAlreadyRunning and leaves the session and
// the running lookup untouched; cancel first.
func (c *Controller) RunLookup(text string) error {
	// Nothing is committed to the session until the supervisor accepts
	// the task; a rejected submission must leave no trace.
	in := c.state.IntentFor(text)

	if in.Empty() {
		debug.Log(debug.APP, "empty query, resetting session")
		c.state.AdvanceGeneration()
		c.tasks.CancelKind(task.Lookup)
		c.state.SetQuery(text)
		c.state.Clear()
		c.emit(Event{Type: EventResultsUpdated})
		return nil
	}

	// Acceptance implies no lookup is running, so the current generation
	// identifies this lookup. Reset and cancel advance it.
	gen := c.state.Generation()

	_, err := c.tasks.Start(task.Lookup, func(ctx context.Context) error {
		started := time.Now()
		lines, err := c.deps.Lookup.Invoke(ctx, in)
		if err != nil {
			return err
		}
		set := result.Set{Term: in.PrimaryTerm, Entries: result.ClassifyAll(lines)}
		if !c.state.SetResults(gen, set) {
			debug.Log(debug.APP, "dropping stale lookup gen=%d", gen)
			return nil
		}
		debug.Log(debug.APP, "lookup %q: %d entries in %v", in.PrimaryTerm, len(set.Entries), time.Since(started))
		return nil
	}, func(h *task.Handle) {
		switch h.State() {
		case task.Failed:
			// A failed lookup leaves no usable results behind, but a
			// superseded one must not wipe what replaced it.
			if !c.state.ClearIfCurrent(gen) {
				return
			}
			c.emit(Event{Type: EventLookupFailed, Err: h.Err()})
		case task.Completed:
			if gen != c.state.Generation() {
				return
			}
			c.emit(Event{Type: EventResultsUpdated})
		}
	})
	if err != nil {
		return err
	}

	debug.Log(debug.QUERY, "lookup intent %s", in.Describe())
	c.state.SetQuery(text)
	c.recordHistory(text)
	c.emit(Event{Type: EventLookupStarted})
	return nil
}

// RefineFilter narrows the current raw set with the refinement text.
// Purely in-memory: the lookup tool is not re-invoked.
func (c *Controller) RefineFilter(text string) {
	c.state.SetRefine(text)
	c.state.Rebuild()
	c.emit(Event{Type: EventResultsUpdated})
}

// SelectCategory switches the active category and refilters.
func (c *Controller) SelectCategory(id category.ID) {
	c.state.SetCategory(id)
	c.state.Rebuild()
	c.emit(Event{Type: EventResultsUpdated})
}

// SetCaseOverride pins the case policy, overriding automatic
// detection until the query is cleared. It refilters the current view;
// the override applies to the lookup itself on the next submission.
func (c *Controller) SetCaseOverride(mode query.CaseMode) {
	c.state.SetCaseMode(mode)
	c.state.Rebuild()
	c.emit(Event{Type: EventResultsUpdated})
}

// SetSort reorders the view and persists the preference.
func (c *Controller) SetSort(col result.Column, asc bool) {
	c.state.SetSort(col, asc)
	name := "name"
	if col == result.ByPath {
		name = "path"
	}
	c.deps.Config.SetSort(name, asc)
	c.emit(Event{Type: EventResultsUpdated})
}

// SelectEntry records the selection and requests its metadata.
// Selecting the placeholder is a no-op.
func (c *Controller) SelectEntry(e result.Entry) {
	if !c.state.Select(e) {
		return
	}
	c.meta.Fetch(e.Path, e.IsDir)
}

// StartRebuild launches the index rebuild chain: the system database
// first, then the media database when media scan roots are configured.
// Returns task.ErrAlreadyRunning while a rebuild is in flight.
func (c *Controller) StartRebuild() error {
	cfg := c.deps.Config.Get()

	steps := []func(ctx context.Context) error{
		func(ctx context.Context) error {
			return c.deps.Rebuild.Run(ctx, locate.RebuildSpec{
				Exclude: cfg.Rebuild.Exclude,
			})
		},
	}
	if len(cfg.Rebuild.MediaScan) > 0 {
		steps = append(steps, func(ctx context.Context) error {
			return c.deps.Rebuild.Run(ctx, locate.RebuildSpec{
				Output:    cfg.Lookup.MediaDatabase,
				ScanPaths: cfg.Rebuild.MediaScan,
			})
		})
	}

	h, err := c.tasks.StartChain(task.Rebuild, steps, func(h *task.Handle) {
		switch h.State() {
		case task.Completed:
			c.emit(Event{Type: EventRebuildFinished, Task: h})
		case task.Failed:
			c.emit(Event{Type: EventRebuildFailed, Task: h, Err: h.Err()})
		case task.Canceled:
			c.emit(Event{Type: EventRebuildFinished, Task: h, Err: locate.ErrCanceled})
		}
	})
	if err != nil {
		return err
	}
	c.emit(Event{Type: EventRebuildStarted, Task: h})
	return nil
}

// CancelActive cancels the running task of the given kind, if any.
func (c *Controller) CancelActive(kind task.Kind) {
	if kind == task.Lookup {
		c.state.AdvanceGeneration()
	}
	c.tasks.CancelKind(kind)
}

// ActiveTask returns the running handle for a kind, or nil.
func (c *Controller) ActiveTask(kind task.Kind) *task.Handle {
	return c.tasks.Active(kind)
}

// Close stops the controller's background consumers.
func (c *Controller) Close() {
	close(c.done)
	c.meta.Close()
}

// consumeMeta forwards metadata results for the current selection and
// drops results for entries deselected while the stat was in flight.
func (c *Controller) consumeMeta() {
	for {
		select {
		case <-c.done:
			return
		case info := <-c.meta.Results():
			sel, ok := c.state.Selected()
			if !ok || sel.Path != info.Path {
				debug.Log(debug.APP, "dropping stale metadata for %q", info.Path)
				continue
			}
			c.emit(Event{Type: EventMetadataUpdated, Meta: info})
		}
	}
}

func (c *Controller) consumeWatcher() {
	for {
		select {
		case <-c.done:
			return
		case path, ok := <-c.deps.Watcher.Notify():
			if !ok {
				return
			}
			c.emit(Event{Type: EventIndexChanged, IndexPath: path})
		}
	}
}

func (c *Controller) recordHistory(text string) {
	cfg := c.deps.Config.Get()
	if c.deps.Store == nil || !cfg.History.Enabled {
		return
	}
	select {
	case c.deps.Store.RequestChan <- store.Request{Op: store.RecordQuery, Query: text}:
	default:
	}
}

// IsBusy reports whether a task of the kind is in flight.
func (c *Controller) IsBusy(kind task.Kind) bool {
	return c.tasks.Active(kind) != nil
}

var errNoSelection = errors.New("no entry selected")
