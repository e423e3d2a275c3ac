package locate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"glocate/internal/debug"
)

// RebuildSpec describes one updatedb invocation. A zero spec rebuilds the
// system database with its default configuration; setting Output and
// ScanPaths builds a secondary database instead.
type RebuildSpec struct {
	Exclude   []string // -e: paths left out of the index
	Output    string   // -o: write the index here instead of the default
	ScanPaths []string // -U: restrict the scan to these roots
}

// Rebuilder runs the index rebuild tool through a privilege-escalation
// helper. Rebuilds write under /var/lib and need root.
type Rebuilder struct {
	Helper  string // e.g. "pkexec"
	Command string // e.g. "updatedb"
}

// NewRebuilder returns a Rebuilder using the given helper and tool.
func NewRebuilder(helper, command string) *Rebuilder {
	return &Rebuilder{Helper: helper, Command: command}
}

// Run executes one rebuild and blocks until it finishes. Cancellation sends
// SIGTERM first and falls back to SIGKILL if the process lingers; a process
// that already exited is a benign race, not an error. Diagnostics may land
// on stderr or stdout depending on the tool; both are captured.
func (r *Rebuilder) Run(ctx context.Context, spec RebuildSpec) error {
	args := []string{r.Command}
	if len(spec.Exclude) > 0 {
		args = append(args, "-e")
		args = append(args, spec.Exclude...)
	}
	if spec.Output != "" {
		args = append(args, "-o", spec.Output)
		args = append(args, "-U")
		args = append(args, spec.ScanPaths...)
	}
	cmdline := commandString(r.Helper, args)

	debug.Log(debug.LOCATE, "rebuild: %s", cmdline)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Helper, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Cancel = func() error {
		err := cmd.Process.Signal(syscall.SIGTERM)
		if errors.Is(err, os.ErrProcessDone) {
			return nil
		}
		return err
	}
	cmd.WaitDelay = 5 * time.Second

	err := cmd.Run()
	if err != nil {
		switch {
		case ctx.Err() != nil:
			debug.Log(debug.LOCATE, "rebuild canceled: %s", cmdline)
			return fmt.Errorf("%w: %s", ErrCanceled, cmdline)
		case errors.Is(err, exec.ErrNotFound):
			return fmt.Errorf("%w: %s", ErrNotFound, r.Helper)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			diag := strings.TrimSpace(stderr.String())
			if diag == "" {
				diag = strings.TrimSpace(stdout.String())
			}
			return &ExitError{Cmd: cmdline, Code: exitErr.ExitCode(), Stderr: diag}
		}
		return err
	}

	debug.Log(debug.LOCATE, "rebuild finished: %s", cmdline)
	return nil
}
