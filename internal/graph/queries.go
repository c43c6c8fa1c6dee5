// Package graph provides Queries: thin, per-invocation-cached
// derivations over vcs.Gateway (ancestry, tree ids, ref listings). It
// does not attempt to observe mid-rebase transient states; it assumes a
// consistent read across the lifetime of one Queries value and caches
// accordingly.
package graph

import (
	"context"
	"sort"
	"sync"

	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// Queries wraps a vcs.Gateway with simple result caching for the
// lifetime of a single command invocation. It holds no state beyond that
// cache and is safe to discard at the end of a batch.
type Queries struct {
	gw vcs.Gateway

	mu        sync.Mutex
	resolved  map[string]vcs.CommitID
	trees     map[vcs.CommitID]vcs.TreeID
	ancestors map[[2]vcs.CommitID]bool
}

func New(gw vcs.Gateway) *Queries {
	return &Queries{
		gw:        gw,
		resolved:  map[string]vcs.CommitID{},
		trees:     map[vcs.CommitID]vcs.TreeID{},
		ancestors: map[[2]vcs.CommitID]bool{},
	}
}

func (q *Queries) Gateway() vcs.Gateway { return q.gw }

func (q *Queries) Resolve(ctx context.Context, ref string) (vcs.CommitID, error) {
	q.mu.Lock()
	if c, ok := q.resolved[ref]; ok {
		q.mu.Unlock()
		return c, nil
	}
	q.mu.Unlock()

	c, err := q.gw.Resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	q.mu.Lock()
	q.resolved[ref] = c
	q.mu.Unlock()
	return c, nil
}

func (q *Queries) TreeOf(ctx context.Context, commit vcs.CommitID) (vcs.TreeID, error) {
	q.mu.Lock()
	if t, ok := q.trees[commit]; ok {
		q.mu.Unlock()
		return t, nil
	}
	q.mu.Unlock()

	t, err := q.gw.TreeOf(ctx, commit)
	if err != nil {
		return "", err
	}
	q.mu.Lock()
	q.trees[commit] = t
	q.mu.Unlock()
	return t, nil
}

func (q *Queries) IsAncestor(ctx context.Context, a, b vcs.CommitID) (bool, error) {
	key := [2]vcs.CommitID{a, b}
	q.mu.Lock()
	if v, ok := q.ancestors[key]; ok {
		q.mu.Unlock()
		return v, nil
	}
	q.mu.Unlock()

	v, err := q.gw.IsAncestor(ctx, a, b)
	if err != nil {
		return false, err
	}
	q.mu.Lock()
	q.ancestors[key] = v
	q.mu.Unlock()
	return v, nil
}

func (q *Queries) CurrentBranch(ctx context.Context) (vcs.BranchName, bool, error) {
	return q.gw.CurrentBranch(ctx)
}

func (q *Queries) UpstreamOf(ctx context.Context, branch vcs.BranchName) (vcs.BranchName, bool, error) {
	return q.gw.UpstreamOf(ctx, branch)
}

// RefsByPrefix lists local branches under prefix, excluding target, sorted
// lexicographically so tip processing order is deterministic.
func (q *Queries) RefsByPrefix(ctx context.Context, prefix string, exclude vcs.BranchName) ([]vcs.BranchName, error) {
	refs, err := q.gw.ListRefs(ctx, prefix, vcs.ScopeLocal)
	if err != nil {
		return nil, err
	}
	out := make([]vcs.BranchName, 0, len(refs))
	for _, r := range refs {
		if r == exclude {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
