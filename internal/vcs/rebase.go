package vcs

import (
	"context"
	"strings"
)

// RebaseUpdateRefs replays the commits in (upstream, branch] onto onto
// (or onto upstream itself if onto is empty), using `--update-refs` so
// that any other local branch ref currently pointing into the replayed
// range is fast-forwarded along with it. This is the primitive that keeps
// intra-stack branch positions correct without the engine needing to
// track them itself.
func (r *Repo) RebaseUpdateRefs(ctx context.Context, branch BranchName, opts RebaseOpts) (*RebaseResult, error) {
	args := []string{"rebase", "--update-refs"}
	if opts.Onto != "" {
		args = append(args, "--onto", opts.Onto)
	}
	args = append(args, opts.Upstream, string(branch))

	out, err := r.run(ctx, args, &runOpts{allowExit: []int{1}})
	if err != nil {
		return nil, err
	}
	if out.ExitCode != 0 {
		// A rebase conflict leaves the repository mid-rebase; the caller
		// is responsible for calling RebaseAbort to restore a clean
		// state.
		return &RebaseResult{
			Status:         RebaseConflict,
			ConflictOutput: string(out.Stderr) + string(out.Stdout),
		}, nil
	}

	newHead, err := r.Resolve(ctx, string(branch))
	if err != nil {
		return nil, err
	}
	return &RebaseResult{Status: RebaseOk, NewHead: newHead}, nil
}

func (r *Repo) RebaseAbort(ctx context.Context) error {
	out, err := r.run(ctx, []string{"rebase", "--abort"}, &runOpts{allowExit: []int{128}})
	if err != nil {
		return err
	}
	if out.ExitCode != 0 && !strings.Contains(string(out.Stderr), "No rebase in progress") {
		return &VcsError{Args: []string{"rebase", "--abort"}, ExitCode: out.ExitCode, Stderr: string(out.Stderr)}
	}
	return nil
}
