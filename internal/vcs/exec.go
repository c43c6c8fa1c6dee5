package vcs

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/utils/executils"
	"github.com/sirupsen/logrus"
)

// Repo is the exec-backed implementation of Gateway: it shells out to the
// `git` executable found on PATH and never opens repository files
// directly, per the engine's "does not open repository files directly"
// design constraint.
type Repo struct {
	dir string
	log logrus.FieldLogger
}

var _ Gateway = (*Repo)(nil)

// Open returns a Repo rooted at dir. It does not itself validate that dir
// is a git working tree; the first VCS call will fail with a *VcsError if
// it isn't.
func Open(dir string, log logrus.FieldLogger) *Repo {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Repo{dir: dir, log: log.WithField("component", "vcs")}
}

func (r *Repo) Dir() string { return r.dir }

// Log returns the repo-scoped logger, for components built on top of
// *Repo (e.g. rebaseengine.Engine) that want the same field scoping.
func (r *Repo) Log() logrus.FieldLogger { return r.log }

type runOpts struct {
	stdin       []byte
	interactive bool
	// allowExit is a set of additional exit codes (beyond 0) that are not
	// treated as errors, so callers can inspect Output.ExitCode
	// themselves (e.g. merge-base --is-ancestor's use of exit 1).
	allowExit []int
}

type output struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}

func (o *output) Text() string {
	return strings.TrimSpace(string(o.Stdout))
}

func (o *output) Lines() []string {
	s := o.Text()
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// run executes `git <args...>` in the repository directory.
func (r *Repo) run(ctx context.Context, args []string, opts *runOpts) (*output, error) {
	if opts == nil {
		opts = &runOpts{}
	}
	start := time.Now()
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir
	cmd.Env = append(os.Environ(), "GIT_EDITOR=true", "GIT_SEQUENCE_EDITOR=true")

	var stdout, stderr bytes.Buffer
	if opts.interactive {
		cmd.Stdin = os.Stdin
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
		if opts.stdin != nil {
			cmd.Stdin = bytes.NewReader(opts.stdin)
		}
	}

	runErr := cmd.Run()
	dur := time.Since(start)

	exitCode := 0
	if cmd.ProcessState != nil {
		exitCode = cmd.ProcessState.ExitCode()
	}
	r.log.WithFields(logrus.Fields{
		"duration":  dur,
		"exit_code": exitCode,
	}).Debugf("git %s", executils.FormatCommandLine(args))

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			for _, ok := range opts.allowExit {
				if exitErr.ExitCode() == ok {
					return &output{ExitCode: exitErr.ExitCode(), Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
				}
			}
			return nil, asVcsError(args, stderr.Bytes(), runErr)
		}
		return nil, asVcsError(args, stderr.Bytes(), runErr)
	}
	return &output{ExitCode: exitCode, Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}, nil
}

// git is a convenience wrapper for the common case of "run and return
// trimmed stdout, treat any non-zero exit as an error".
func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	out, err := r.run(ctx, args, nil)
	if err != nil {
		return "", err
	}
	return out.Text(), nil
}
