package vcs

import (
	"context"
	"time"

	"emperror.dev/errors"
)

func (r *Repo) IsAncestor(ctx context.Context, a, b CommitID) (bool, error) {
	out, err := r.run(ctx, []string{"merge-base", "--is-ancestor", string(a), string(b)}, &runOpts{allowExit: []int{1}})
	if err != nil {
		return false, err
	}
	return out.ExitCode == 0, nil
}

func (r *Repo) TreeOf(ctx context.Context, commit CommitID) (TreeID, error) {
	out, err := r.git(ctx, "rev-parse", "--verify", "--quiet", string(commit)+"^{tree}")
	if err != nil {
		return "", err
	}
	return TreeID(out), nil
}

func (r *Repo) CommitTime(ctx context.Context, commit CommitID) (time.Time, error) {
	out, err := r.git(ctx, "show", "-s", "--format=%cI", string(commit))
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, out)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "unexpected commit timestamp format: %q", out)
	}
	return t, nil
}
