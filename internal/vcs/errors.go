package vcs

import (
	"fmt"
	"os/exec"
	"strings"

	"emperror.dev/errors"
)

// ErrVcsUnavailable is returned when the git executable cannot be located
// or invoked at all (as opposed to exiting non-zero).
var ErrVcsUnavailable = errors.Sentinel("git executable not available")

// ErrUnknownRef is returned by Resolve when the given ref does not name a
// commit in the repository.
var ErrUnknownRef = errors.Sentinel("unknown ref")

// ErrNoUpstream names the "branch has no configured upstream" case.
// UpstreamOf does not return it; it reports that case as ok=false.
var ErrNoUpstream = errors.Sentinel("branch has no upstream")

// ErrVersionTooOld is the PreconditionFailed error raised when the detected
// git version lacks the "rebase --update-refs" primitive the engine
// depends on; the engine refuses to proceed when this fires.
var ErrVersionTooOld = errors.Sentinel("git version does not support rebase --update-refs (requires >= 2.38)")

// VcsError wraps a non-zero exit from the git executable, carrying enough
// detail for callers to decide whether the failure is a conflict (handled
// per-stack) or a hard error (fatal).
type VcsError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *VcsError) Error() string {
	stderr := strings.TrimSpace(e.Stderr)
	if stderr == "" {
		stderr = "<no output>"
	}
	return fmt.Sprintf("git %s: exit %d: %s", strings.Join(e.Args, " "), e.ExitCode, stderr)
}

// asVcsError converts an *exec.ExitError into our typed VcsError, or
// returns the original error wrapped with ErrVcsUnavailable if the
// executable itself could not be started.
func asVcsError(args []string, stderr []byte, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &VcsError{Args: args, ExitCode: exitErr.ExitCode(), Stderr: string(stderr)}
	}
	return errors.Wrapf(ErrVcsUnavailable, "git %s: %v", strings.Join(args, " "), err)
}

// errorsAs is a thin re-export so other files in this package don't each
// need to import emperror.dev/errors just for the *VcsError type switch.
func errorsAs(err error, target **VcsError) bool {
	return errors.As(err, target)
}

// errorWithRef annotates a sentinel error with the ref that triggered it.
func errorWithRef(sentinel error, ref string) error {
	return errors.Wrapf(sentinel, "%q", ref)
}
