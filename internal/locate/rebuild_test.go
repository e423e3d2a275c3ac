package locate

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRebuild_Success(t *testing.T) {
	helper := fakeTool(t, `exit 0`)
	r := NewRebuilder(helper, "updatedb")

	if err := r.Run(context.Background(), RebuildSpec{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestRebuild_Arguments(t *testing.T) {
	// The fake writes its arguments to stdout; a failure exit carries them
	// back through the ExitError diagnostics.
	helper := fakeTool(t, `printf '%s ' "$@"; exit 3`)
	r := NewRebuilder(helper, "updatedb")

	err := r.Run(context.Background(), RebuildSpec{
		Exclude:   []string{"/mnt/backup", "/tmp"},
		Output:    "/var/lib/plocate/media.db",
		ScanPaths: []string{"/run/media"},
	})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	expected := "updatedb -e /mnt/backup /tmp -o /var/lib/plocate/media.db -U /run/media"
	if strings.TrimSpace(exitErr.Stderr) != expected {
		t.Errorf("expected args %q, got %q", expected, exitErr.Stderr)
	}
}

func TestRebuild_Failure(t *testing.T) {
	helper := fakeTool(t, `echo "permission denied" >&2; exit 126`)
	r := NewRebuilder(helper, "updatedb")

	err := r.Run(context.Background(), RebuildSpec{})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if exitErr.Code != 126 {
		t.Errorf("expected exit code 126, got %d", exitErr.Code)
	}
	if !strings.Contains(exitErr.Stderr, "permission denied") {
		t.Errorf("diagnostics not carried: %q", exitErr.Stderr)
	}
}

func TestRebuild_DiagnosticsFallBackToStdout(t *testing.T) {
	helper := fakeTool(t, `echo "wrote to stdout"; exit 1`)
	r := NewRebuilder(helper, "updatedb")

	err := r.Run(context.Background(), RebuildSpec{})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *ExitError, got %v", err)
	}
	if !strings.Contains(exitErr.Stderr, "wrote to stdout") {
		t.Errorf("stdout diagnostics not carried: %q", exitErr.Stderr)
	}
}

func TestRebuild_HelperNotFound(t *testing.T) {
	r := NewRebuilder("glocate-no-such-helper-xyz", "updatedb")

	err := r.Run(context.Background(), RebuildSpec{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRebuild_CanceledTerminatesGracefully(t *testing.T) {
	// The fake exits cleanly on SIGTERM; the run must still report
	// cancellation, not success.
	helper := fakeTool(t, `trap 'exit 0' TERM; sleep 5 & wait`)
	r := NewRebuilder(helper, "updatedb")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	err := r.Run(ctx, RebuildSpec{})
	if !errors.Is(err, ErrCanceled) {
		t.Fatalf("expected ErrCanceled, got %v", err)
	}
	if time.Since(start) > 3*time.Second {
		t.Error("cancellation did not terminate the rebuild promptly")
	}
}
