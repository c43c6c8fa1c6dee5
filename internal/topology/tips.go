// Package topology implements TopologyAnalyzer (FindTips, FindCutPoint)
// and SyncPointFinder (FindSyncPoint): reducing a set of branches to the
// minimal dominating set of tips, finding the graft boundary for a tip
// against a target, and finding an already-rebased ancestor branch to
// re-anchor onto instead of the bare target.
package topology

import (
	"context"
	"sort"

	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// FindTips reduces branches to the subset T such that no member of T is
// an ancestor of any other member of T, and every member of branches is
// an ancestor of some member of T. Implemented as an O(k^2) ancestry
// probe, acceptable for human-scale stacks.
func FindTips(ctx context.Context, q *graph.Queries, branches []vcs.BranchName) ([]vcs.BranchName, error) {
	heads := make(map[vcs.BranchName]vcs.CommitID, len(branches))
	for _, b := range branches {
		c, err := q.Resolve(ctx, string(b))
		if err != nil {
			return nil, err
		}
		heads[b] = c
	}

	var tips []vcs.BranchName
	for _, b := range branches {
		isTip := true
		for _, other := range branches {
			if other == b {
				continue
			}
			// b is not a tip if it is a strict ancestor of some other
			// branch with a different head.
			if heads[b] == heads[other] {
				continue
			}
			ok, err := q.IsAncestor(ctx, heads[b], heads[other])
			if err != nil {
				return nil, err
			}
			if ok {
				isTip = false
				break
			}
		}
		if isTip {
			tips = append(tips, b)
		}
	}

	// Dedup repeated names in the input and sort lexicographically for
	// reproducible output. Distinct branches that share a head are all
	// kept as tips.
	seen := map[vcs.BranchName]bool{}
	dedup := tips[:0]
	for _, t := range tips {
		if seen[t] {
			continue
		}
		seen[t] = true
		dedup = append(dedup, t)
	}
	sort.Slice(dedup, func(i, j int) bool { return dedup[i] < dedup[j] })
	return dedup, nil
}
