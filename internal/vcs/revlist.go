package vcs

import (
	"context"
	"strconv"

	"emperror.dev/errors"
)

// RevList lists commits reachable from included but not excluded, newest
// first. If excluded is empty, no lower bound is applied (lists all
// ancestors of included).
func (r *Repo) RevList(ctx context.Context, excluded, included CommitID, max int) ([]CommitID, error) {
	args := []string{"rev-list"}
	if max > 0 {
		args = append(args, "--max-count="+strconv.Itoa(max))
	}
	args = append(args, revListRange(excluded, included)...)
	out, err := r.git(ctx, args...)
	if err != nil {
		return nil, err
	}
	lines := splitNonEmpty(out)
	ids := make([]CommitID, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, CommitID(l))
	}
	return ids, nil
}

func (r *Repo) RevListCount(ctx context.Context, excluded, included CommitID) (int, error) {
	args := append([]string{"rev-list", "--count"}, revListRange(excluded, included)...)
	out, err := r.git(ctx, args...)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(out)
	if convErr != nil {
		return 0, errors.Wrapf(convErr, "unexpected `git rev-list --count` output: %q", out)
	}
	return n, nil
}

func revListRange(excluded, included CommitID) []string {
	if excluded == "" {
		return []string{string(included)}
	}
	return []string{string(included), "^" + string(excluded)}
}
