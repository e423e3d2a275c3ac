package locate

import (
	"errors"
	"fmt"
)

// Sentinel failures for external tool invocations. "Exit 1 with empty
// output" is the lookup tool's way of saying "no matches" and is not
// represented here; it surfaces as a nil error with an empty line slice.
var (
	// ErrNotFound: the external binary is not installed or not on PATH.
	ErrNotFound = errors.New("lookup tool not found")
	// ErrTimeout: the invocation exceeded its deadline.
	ErrTimeout = errors.New("lookup timed out")
	// ErrCanceled: the caller canceled the invocation; the process was
	// terminated and no partial output is exposed.
	ErrCanceled = errors.New("lookup canceled")
)

// ExitError is a genuine tool failure: nonzero exit with diagnostics. It
// carries the offending command line so failure notifications can show what
// was actually run.
type ExitError struct {
	Cmd    string
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: exit status %d", e.Cmd, e.Code)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Cmd, e.Code, e.Stderr)
}
