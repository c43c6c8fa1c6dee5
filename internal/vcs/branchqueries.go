package vcs

import "context"

// BranchesMergedInto lists local branches that are ancestors of tip,
// optionally restricted to those matching prefix. Used to compute a
// stack's membership around a tip.
func (r *Repo) BranchesMergedInto(ctx context.Context, tip BranchName, prefix string) ([]BranchName, error) {
	pattern := "refs/heads/" + prefix + "*"
	out, err := r.git(ctx, "for-each-ref", "--format=%(refname:short)", "--merged", string(tip), pattern)
	if err != nil {
		return nil, err
	}
	lines := splitNonEmpty(out)
	refs := make([]BranchName, 0, len(lines))
	for _, l := range lines {
		refs = append(refs, BranchName(l))
	}
	return refs, nil
}

// BranchesContaining lists local branches whose history contains commit,
// used by the `evolve` command to find orphaned descendants of an amended
// commit.
func (r *Repo) BranchesContaining(ctx context.Context, commit CommitID) ([]BranchName, error) {
	out, err := r.git(ctx, "for-each-ref", "--format=%(refname:short)", "--contains", string(commit), "refs/heads/")
	if err != nil {
		return nil, err
	}
	lines := splitNonEmpty(out)
	refs := make([]BranchName, 0, len(lines))
	for _, l := range lines {
		refs = append(refs, BranchName(l))
	}
	return refs, nil
}
