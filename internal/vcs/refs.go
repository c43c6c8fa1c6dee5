package vcs

import (
	"context"
	"strings"
)

func (r *Repo) CurrentBranch(ctx context.Context) (BranchName, bool, error) {
	out, err := r.git(ctx, "symbolic-ref", "--quiet", "--short", "HEAD")
	if err != nil {
		var vcsErr *VcsError
		if asStructured(err, &vcsErr) && vcsErr.ExitCode == 1 {
			// Exit 1 from `symbolic-ref --quiet` means detached HEAD.
			return "", false, nil
		}
		return "", false, err
	}
	return BranchName(out), true, nil
}

func (r *Repo) Resolve(ctx context.Context, ref string) (CommitID, error) {
	out, err := r.run(ctx, []string{"rev-parse", "--verify", "--quiet", ref + "^{commit}"}, &runOpts{allowExit: []int{1}})
	if err != nil {
		return "", err
	}
	if out.ExitCode != 0 || out.Text() == "" {
		return "", errorWithRef(ErrUnknownRef, ref)
	}
	return CommitID(out.Text()), nil
}

func (r *Repo) Checkout(ctx context.Context, branch BranchName) error {
	_, err := r.git(ctx, "checkout", string(branch))
	return err
}

func (r *Repo) ListRefs(ctx context.Context, prefix string, scope RefScope) ([]BranchName, error) {
	var full string
	switch scope {
	case ScopeRemote:
		full = "refs/remotes/" + prefix
	default:
		full = "refs/heads/" + prefix
	}
	out, err := r.git(ctx, "for-each-ref", "--format=%(refname:short)", full+"*")
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

func (r *Repo) UpstreamOf(ctx context.Context, branch BranchName) (BranchName, bool, error) {
	out, err := r.run(ctx, []string{"rev-parse", "--abbrev-ref", string(branch) + "@{upstream}"}, &runOpts{allowExit: []int{128}})
	if err != nil {
		return "", false, err
	}
	if out.ExitCode != 0 || out.Text() == "" {
		return "", false, nil
	}
	return BranchName(out.Text()), true, nil
}

func (r *Repo) GoneBranches(ctx context.Context) ([]BranchName, error) {
	out, err := r.git(ctx, "for-each-ref", "--format=%(refname:short)\t%(upstream:track)", "refs/heads/")
	if err != nil {
		return nil, err
	}
	var gone []BranchName
	for _, line := range splitNonEmpty(out) {
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) == 2 && strings.Contains(parts[1], "[gone]") {
			gone = append(gone, BranchName(parts[0]))
		}
	}
	return gone, nil
}

func splitNonEmpty(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// asStructured is a small helper around errors.As that avoids importing
// emperror.dev/errors into every call site in this file.
func asStructured(err error, target **VcsError) bool {
	return errorsAs(err, target)
}
