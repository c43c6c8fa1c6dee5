package vcs

import (
	"context"
	"strings"

	"emperror.dev/errors"
)

// Cherry compares the patch-id of every commit reachable from head but not
// upstream against upstream's history, the classical rebase/merge
// equivalence test.
func (r *Repo) Cherry(ctx context.Context, upstream, head string) ([]CherryEntry, error) {
	out, err := r.git(ctx, "cherry", upstream, head)
	if err != nil {
		return nil, err
	}
	lines := splitNonEmpty(out)
	entries := make([]CherryEntry, 0, len(lines))
	for _, line := range lines {
		if len(line) < 3 {
			return nil, errors.Errorf("unrecognized `git cherry` line: %q", line)
		}
		marker := CherryMarker(line[0])
		commit := strings.TrimSpace(line[2:])
		entries = append(entries, CherryEntry{Marker: marker, Commit: CommitID(commit)})
	}
	return entries, nil
}
