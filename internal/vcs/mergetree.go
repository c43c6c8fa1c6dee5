package vcs

import (
	"context"
	"strings"
)

// MergeTree computes the tree that would result from merging head into
// base using the VCS's server-side (conflict-free to compute) merge-tree
// primitive, without touching the index or working tree. Used by
// ObsolescenceOracle strategy 2 (squash-merge detection): if the resulting
// tree equals base's own tree, head introduced nothing new.
func (r *Repo) MergeTree(ctx context.Context, base, head CommitID) (TreeID, bool, error) {
	out, err := r.run(ctx, []string{
		"merge-tree", "--write-tree", "--no-messages", string(base), string(head),
	}, &runOpts{allowExit: []int{1}})
	if err != nil {
		return "", false, err
	}
	if out.ExitCode != 0 {
		// Conflicts. merge-tree still prints a tree oid on its first
		// line (containing conflict markers), but callers must treat
		// this as "not equal to anything".
		return "", false, nil
	}
	firstLine, _, _ := strings.Cut(out.Text(), "\n")
	return TreeID(strings.TrimSpace(firstLine)), true, nil
}
