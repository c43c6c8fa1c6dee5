package topology

import (
	"context"

	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// SyncPoint is the result of a successful FindSyncPoint: tip should be
// rebased with upstream=OldHash, onto=NewHash, reusing the already-moved
// position of SyncBranch instead of replaying against the bare target.
type SyncPoint struct {
	SyncBranch vcs.BranchName
	OldHash    vcs.CommitID
	NewHash    vcs.CommitID
}

// FindSyncPoint locates the best already-rebased ancestor branch of tip
// within the current batch, so that the shared prefix between tip and that
// branch is not replayed twice. Both ancestry and distance are evaluated
// against the initial snapshot: the live graph reflects partial progress
// and is not a reliable source for the original dependency shape.
func FindSyncPoint(ctx context.Context, gw vcs.Gateway, tip vcs.BranchName, allBranches []vcs.BranchName, initial vcs.RefSnapshot) (*SyncPoint, error) {
	tipInitial, ok := initial[tip]
	if !ok {
		var err error
		tipInitial, err = gw.Resolve(ctx, string(tip))
		if err != nil {
			return nil, err
		}
	}

	var (
		best   = -1
		result *SyncPoint
	)
	for _, c := range allBranches {
		if c == tip {
			continue
		}
		old, ok := initial[c]
		if !ok {
			continue
		}
		isAncestor, err := gw.IsAncestor(ctx, old, tipInitial)
		if err != nil {
			return nil, err
		}
		if !isAncestor {
			continue
		}

		curr, err := gw.Resolve(ctx, string(c))
		if err != nil {
			return nil, err
		}
		if curr == old {
			// C has not moved yet in this batch; not a sync ancestor.
			continue
		}

		dist, err := gw.RevListCount(ctx, old, tipInitial)
		if err != nil {
			return nil, err
		}
		if best == -1 || dist < best {
			best = dist
			result = &SyncPoint{SyncBranch: c, OldHash: old, NewHash: curr}
		} else if dist == best && result != nil && c < result.SyncBranch {
			// Tie-break lexicographically for determinism.
			result = &SyncPoint{SyncBranch: c, OldHash: old, NewHash: curr}
		}
	}
	return result, nil
}
