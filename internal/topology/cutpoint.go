package topology

import (
	"context"

	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// Obsolescence is the subset of obsolescence.Oracle's contract this
// package depends on; declared here (rather than importing the
// obsolescence package directly) to keep the dependency direction
// leaf-ward and to make FindCutPoint trivially testable against a stub.
type Obsolescence interface {
	IsObsolete(ctx context.Context, commit vcs.CommitID, target vcs.BranchName) (bool, error)
}

// FindCutPoint walks rev-list(target, tip, max=window) newest-to-oldest
// and returns the first commit that is obsolete in target: the boundary
// past which earlier work has already been absorbed upstream. Returns
// ok=false if no such commit is found within the window.
func FindCutPoint(ctx context.Context, gw vcs.Gateway, oracle Obsolescence, tip vcs.BranchName, target vcs.BranchName, window int) (vcs.CommitID, bool, error) {
	tipHead, err := gw.Resolve(ctx, string(tip))
	if err != nil {
		return "", false, err
	}
	targetHead, err := gw.Resolve(ctx, string(target))
	if err != nil {
		return "", false, err
	}

	commits, err := gw.RevList(ctx, targetHead, tipHead, window)
	if err != nil {
		return "", false, err
	}
	for _, c := range commits {
		ok, err := oracle.IsObsolete(ctx, c, target)
		if err != nil {
			return "", false, err
		}
		if ok {
			return c, true, nil
		}
	}
	return "", false, nil
}
