// Package locate invokes the external index tools: plocate for lookups and
// updatedb (behind a privilege helper) for index rebuilds. Both run under a
// context so callers get cancellation and deadlines; neither ever returns
// partial output.
package locate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"glocate/internal/debug"
	"glocate/internal/query"
)

// DefaultTimeout is the hard deadline applied to a lookup when the caller
// does not configure one. Large indexes on slow disks can legitimately take
// a while; anything past this is treated as wedged.
const DefaultTimeout = 120 * time.Second

// Invoker runs the lookup tool for one primary term and returns its raw
// output lines.
type Invoker struct {
	Command   string        // lookup binary, e.g. "plocate"
	Databases []string      // when set, passed as one -d db1:db2 argument
	Timeout   time.Duration // per-invocation deadline; DefaultTimeout if zero
}

// NewInvoker returns an Invoker for the given binary with the default
// deadline.
func NewInvoker(command string) *Invoker {
	return &Invoker{Command: command, Timeout: DefaultTimeout}
}

// Invoke runs the lookup for the intent's primary term and returns the
// matching paths, one per line, blanks dropped.
//
// Exit status 1 with empty stdout and stderr is the tool's "no matches"
// convention and yields (nil, nil). Real failures map to ErrNotFound,
// ErrTimeout, ErrCanceled, or *ExitError. Invoke blocks; run it on a worker
// goroutine (the task supervisor does).
func (inv *Invoker) Invoke(ctx context.Context, in query.Intent) ([]string, error) {
	timeout := inv.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	args := make([]string, 0, 4)
	if in.CaseInsensitive {
		args = append(args, "-i")
	}
	args = append(args, in.PrimaryTerm)
	if len(inv.Databases) > 0 {
		args = append(args, "-d", strings.Join(inv.Databases, ":"))
	}
	cmdline := commandString(inv.Command, args)

	lctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	debug.Log(debug.LOCATE, "invoke: %s", cmdline)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(lctx, inv.Command, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		switch {
		case ctx.Err() != nil:
			debug.Log(debug.LOCATE, "invoke canceled: %s", cmdline)
			return nil, fmt.Errorf("%w: %s", ErrCanceled, cmdline)
		case errors.Is(lctx.Err(), context.DeadlineExceeded):
			debug.Log(debug.LOCATE, "invoke timed out after %s: %s", timeout, cmdline)
			return nil, fmt.Errorf("%w after %s: %s", ErrTimeout, timeout, cmdline)
		case errors.Is(err, exec.ErrNotFound):
			return nil, fmt.Errorf("%w: %s", ErrNotFound, inv.Command)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			diag := strings.TrimSpace(stderr.String())
			if exitErr.ExitCode() == 1 && stdout.Len() == 0 && diag == "" {
				// Exit 1 with no output means no matches, not a failure.
				debug.Log(debug.LOCATE, "invoke: no matches")
				return nil, nil
			}
			return nil, &ExitError{Cmd: cmdline, Code: exitErr.ExitCode(), Stderr: diag}
		}
		return nil, err
	}

	lines := splitLines(stdout.String())
	debug.Log(debug.LOCATE, "invoke: %d paths", len(lines))
	return lines, nil
}

// Available reports whether the lookup binary is on PATH.
func (inv *Invoker) Available() bool {
	_, err := exec.LookPath(inv.Command)
	return err == nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func commandString(name string, args []string) string {
	return name + " " + strings.Join(args, " ")
}
