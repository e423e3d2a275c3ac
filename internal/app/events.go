package app

import (
	"glocate/internal/meta"
	"glocate/internal/task"
)

// EventType identifies a controller notification.
type EventType int

const (
	EventResultsUpdated EventType = iota
	EventLookupStarted
	EventLookupFailed
	EventRebuildStarted
	EventRebuildFinished
	EventRebuildFailed
	EventMetadataUpdated
	EventIndexChanged
)

// Event is delivered on the controller's event channel. Fields beyond
// Type are populated per event kind.
type Event struct {
	Type EventType
	Err  error

	// EventMetadataUpdated
	Meta meta.Info

	// Rebuild events
	Task *task.Handle

	// EventIndexChanged
	IndexPath string
}

// emit delivers an event. EventResultsUpdated may be dropped under
// backpressure: the next session snapshot carries the same view. Every
// other event is terminal or externally triggered and is held until
// the consumer takes it or the controller closes.
func (c *Controller) emit(ev Event) {
	if ev.Type == EventResultsUpdated {
		select {
		case c.events <- ev:
		default:
		}
		return
	}
	select {
	case c.events <- ev:
	case <-c.done:
	}
}
