package app

import (
	"glocate/internal/debug"
	"glocate/internal/task"
)

// Command is a user action dispatched through Do.
type Command int

const (
	CmdOpenEntry Command = iota
	CmdOpenContainingFolder
	CmdStartRebuild
	CmdCancelLookup
	CmdCancelRebuild
)

// Do executes a command against the current session. Commands needing
// a selection fail with errNoSelection when nothing is selected.
func (c *Controller) Do(cmd Command) error {
	debug.Log(debug.APP, "command %d", cmd)
	switch cmd {
	case CmdOpenEntry:
		sel, ok := c.state.Selected()
		if !ok {
			return errNoSelection
		}
		return c.deps.OpenPath(sel.Path)

	case CmdOpenContainingFolder:
		sel, ok := c.state.Selected()
		if !ok {
			return errNoSelection
		}
		return c.deps.OpenPath(sel.Parent)

	case CmdStartRebuild:
		return c.StartRebuild()

	case CmdCancelLookup:
		c.CancelActive(task.Lookup)
		return nil

	case CmdCancelRebuild:
		c.CancelActive(task.Rebuild)
		return nil
	}
	return nil
}
