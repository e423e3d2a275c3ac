// Package task owns the background execution model: singleton slots for the
// long-running lookup and rebuild tasks, cancellation handles, and sequenced
// rebuild chains.
package task

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"glocate/internal/debug"
)

// Kind distinguishes the two slot-limited task kinds. They are mutually
// independent: a running rebuild never blocks a lookup.
type Kind int

const (
	Lookup Kind = iota
	Rebuild
)

func (k Kind) String() string {
	if k == Rebuild {
		return "rebuild"
	}
	return "lookup"
}

// State is the lifecycle of one task.
type State int

const (
	Pending State = iota
	Running
	Completed
	Canceled
	Failed
)

// ErrAlreadyRunning is returned when a second task of an active kind is
// started. The running task is unaffected.
var ErrAlreadyRunning = errors.New("task of this kind already running")

// Handle identifies one dispatched task and carries its cancellation.
type Handle struct {
	ID   uuid.UUID
	Kind Kind

	cancel context.CancelFunc
	done   chan struct{}

	mu    sync.Mutex
	state State
	err   error
}

// State returns the task's current lifecycle state.
func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Err returns the terminal error, nil unless State is Failed.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// Done is closed when the task reaches a terminal state.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) finish(err error, canceled bool) {
	h.mu.Lock()
	switch {
	case canceled:
		h.state = Canceled
	case err != nil:
		h.state = Failed
		h.err = err
	default:
		h.state = Completed
	}
	h.mu.Unlock()
	close(h.done)
}

// Supervisor enforces the one-active-task-per-kind rule. Fire-and-forget
// work (metadata fetches) does not go through the supervisor; only the two
// slot-limited kinds do.
type Supervisor struct {
	mu     sync.Mutex
	active map[Kind]*Handle
}

// NewSupervisor returns an empty supervisor.
func NewSupervisor() *Supervisor {
	return &Supervisor{active: make(map[Kind]*Handle)}
}

// Active returns the running handle for a kind, or nil.
func (s *Supervisor) Active(kind Kind) *Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active[kind]
}

// Start dispatches run on a worker goroutine under the given kind's slot.
// A second start while the slot is held is rejected with ErrAlreadyRunning.
//
// The slot is released before notify fires, so a subscriber may start a new
// task of the same kind from inside its notification without being
// spuriously rejected. notify may be nil.
func (s *Supervisor) Start(kind Kind, run func(ctx context.Context) error, notify func(h *Handle)) (*Handle, error) {
	s.mu.Lock()
	if s.active[kind] != nil {
		s.mu.Unlock()
		debug.Log(debug.TASK, "start %s rejected: already running", kind)
		return nil, ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{
		ID:     uuid.New(),
		Kind:   kind,
		cancel: cancel,
		done:   make(chan struct{}),
		state:  Pending,
	}
	s.active[kind] = h
	s.mu.Unlock()

	debug.Log(debug.TASK, "start %s %s", kind, h.ID)

	go func() {
		defer cancel()

		h.mu.Lock()
		h.state = Running
		h.mu.Unlock()

		err := run(ctx)
		canceled := ctx.Err() != nil && err != nil

		// Free the slot first: a subscriber reacting to the completion may
		// immediately start a replacement task.
		s.mu.Lock()
		if s.active[kind] == h {
			delete(s.active, kind)
		}
		s.mu.Unlock()

		h.finish(err, canceled)
		debug.Log(debug.TASK, "%s %s finished: state=%d err=%v", kind, h.ID, h.State(), err)

		if notify != nil {
			notify(h)
		}
	}()

	return h, nil
}

// StartChain dispatches a sequence of steps under one slot. Step N+1 runs
// only if step N returned nil; cancellation or failure halts the chain
// without starting later steps.
func (s *Supervisor) StartChain(kind Kind, steps []func(ctx context.Context) error, notify func(h *Handle)) (*Handle, error) {
	return s.Start(kind, func(ctx context.Context) error {
		for i, step := range steps {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := step(ctx); err != nil {
				debug.Log(debug.TASK, "%s chain halted at step %d: %v", kind, i, err)
				return err
			}
		}
		return nil
	}, notify)
}

// Cancel requests cooperative cancellation of a task. Canceling a handle
// that already finished is a no-op.
func (s *Supervisor) Cancel(h *Handle) {
	if h == nil {
		return
	}
	debug.Log(debug.TASK, "cancel %s %s", h.Kind, h.ID)
	h.cancel()
}

// CancelKind cancels the active task of a kind, if any.
func (s *Supervisor) CancelKind(kind Kind) {
	s.Cancel(s.Active(kind))
}
