// Package collab implements the auxiliary collaborator commands —
// push_prefix, prune_local, prune_remote_prefix — as thin wrappers over
// vcs.Gateway and obsolescence.Oracle, outside the core rebase engine.
package collab

import (
	"context"
	"sort"

	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// PushResult reports which branches were pushed and which were skipped
// because their local ref already equals the cached remote-tracking ref.
type PushResult struct {
	Pushed  []vcs.BranchName
	Skipped []vcs.BranchName
}

// PushPrefix pushes every local branch under prefix whose tip differs
// from its cached remote-tracking ref, skipping any already up to date.
func PushPrefix(ctx context.Context, gw vcs.Gateway, q *graph.Queries, prefix string, opts vcs.PushOpts) (*PushResult, error) {
	branches, err := gw.ListRefs(ctx, prefix, vcs.ScopeLocal)
	if err != nil {
		return nil, err
	}
	sort.Slice(branches, func(i, j int) bool { return branches[i] < branches[j] })

	result := &PushResult{}
	var toPush []vcs.BranchName
	for _, b := range branches {
		upstream, ok, err := q.UpstreamOf(ctx, b)
		if err != nil {
			return nil, err
		}
		if ok {
			local, err := q.Resolve(ctx, string(b))
			if err != nil {
				return nil, err
			}
			remote, err := q.Resolve(ctx, string(upstream))
			if err == nil && local == remote {
				result.Skipped = append(result.Skipped, b)
				continue
			}
		}
		toPush = append(toPush, b)
	}

	if len(toPush) > 0 {
		if err := gw.Push(ctx, toPush, opts); err != nil {
			return nil, err
		}
	}
	result.Pushed = toPush
	return result, nil
}
