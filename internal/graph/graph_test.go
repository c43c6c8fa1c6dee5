package graph_test

import (
	"context"
	"testing"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/stretchr/testify/require"
)

// countingGateway wraps a tiny fixed fixture and counts how many times each
// method is invoked, so tests can assert Queries actually caches rather than
// just returning correct values.
type countingGateway struct {
	resolveCalls  int
	treeCalls     int
	ancestorCalls int

	refs map[string]vcs.CommitID
	tree vcs.TreeID
}

func (g *countingGateway) Version(ctx context.Context) (*semver.Version, error) { return nil, nil }
func (g *countingGateway) CurrentBranch(ctx context.Context) (vcs.BranchName, bool, error) {
	return "main", true, nil
}

func (g *countingGateway) Resolve(ctx context.Context, ref string) (vcs.CommitID, error) {
	g.resolveCalls++
	c, ok := g.refs[ref]
	if !ok {
		return "", vcs.ErrUnknownRef
	}
	return c, nil
}

func (g *countingGateway) TreeOf(ctx context.Context, commit vcs.CommitID) (vcs.TreeID, error) {
	g.treeCalls++
	return g.tree, nil
}

func (g *countingGateway) CommitTime(ctx context.Context, commit vcs.CommitID) (time.Time, error) {
	return time.Time{}, nil
}

func (g *countingGateway) IsAncestor(ctx context.Context, a, b vcs.CommitID) (bool, error) {
	g.ancestorCalls++
	return a == b, nil
}

func (g *countingGateway) RevList(ctx context.Context, excluded, included vcs.CommitID, max int) ([]vcs.CommitID, error) {
	return nil, nil
}
func (g *countingGateway) RevListCount(ctx context.Context, excluded, included vcs.CommitID) (int, error) {
	return 0, nil
}

func (g *countingGateway) ListRefs(ctx context.Context, prefix string, scope vcs.RefScope) ([]vcs.BranchName, error) {
	return []vcs.BranchName{"feature/b", "feature/a", "feature/c"}, nil
}

func (g *countingGateway) BranchesMergedInto(ctx context.Context, tip vcs.BranchName, prefix string) ([]vcs.BranchName, error) {
	return nil, nil
}
func (g *countingGateway) BranchesContaining(ctx context.Context, commit vcs.CommitID) ([]vcs.BranchName, error) {
	return nil, nil
}
func (g *countingGateway) UpstreamOf(ctx context.Context, branch vcs.BranchName) (vcs.BranchName, bool, error) {
	return "", false, nil
}
func (g *countingGateway) GoneBranches(ctx context.Context) ([]vcs.BranchName, error) { return nil, nil }
func (g *countingGateway) Cherry(ctx context.Context, upstream, head string) ([]vcs.CherryEntry, error) {
	return nil, nil
}
func (g *countingGateway) MergeTree(ctx context.Context, base, head vcs.CommitID) (vcs.TreeID, bool, error) {
	return "", false, nil
}
func (g *countingGateway) RebaseUpdateRefs(ctx context.Context, branch vcs.BranchName, opts vcs.RebaseOpts) (*vcs.RebaseResult, error) {
	return nil, nil
}
func (g *countingGateway) RebaseAbort(ctx context.Context) error          { return nil }
func (g *countingGateway) Checkout(ctx context.Context, branch vcs.BranchName) error { return nil }
func (g *countingGateway) PullRebase(ctx context.Context) error          { return nil }
func (g *countingGateway) Push(ctx context.Context, refs []vcs.BranchName, opts vcs.PushOpts) error {
	return nil
}
func (g *countingGateway) DeleteLocal(ctx context.Context, refs []vcs.BranchName, force bool) error {
	return nil
}
func (g *countingGateway) DeleteRemote(ctx context.Context, remote string, refs []vcs.BranchName) error {
	return nil
}
func (g *countingGateway) Fetch(ctx context.Context, remote string, prune bool) error { return nil }

func TestQueries_ResolveCaches(t *testing.T) {
	ctx := context.Background()
	gw := &countingGateway{refs: map[string]vcs.CommitID{"main": "abc123"}}
	q := graph.New(gw)

	c1, err := q.Resolve(ctx, "main")
	require.NoError(t, err)
	c2, err := q.Resolve(ctx, "main")
	require.NoError(t, err)

	require.Equal(t, c1, c2)
	require.Equal(t, 1, gw.resolveCalls, "second Resolve of the same ref should hit the cache")
}

func TestQueries_TreeOfCaches(t *testing.T) {
	ctx := context.Background()
	gw := &countingGateway{tree: "tree1"}
	q := graph.New(gw)

	_, err := q.TreeOf(ctx, "commit1")
	require.NoError(t, err)
	_, err = q.TreeOf(ctx, "commit1")
	require.NoError(t, err)

	require.Equal(t, 1, gw.treeCalls)
}

func TestQueries_IsAncestorCachesPerPair(t *testing.T) {
	ctx := context.Background()
	gw := &countingGateway{}
	q := graph.New(gw)

	_, err := q.IsAncestor(ctx, "a", "b")
	require.NoError(t, err)
	_, err = q.IsAncestor(ctx, "a", "b")
	require.NoError(t, err)
	_, err = q.IsAncestor(ctx, "b", "a")
	require.NoError(t, err)

	require.Equal(t, 2, gw.ancestorCalls, "the reversed pair is a distinct cache key")
}

func TestQueries_RefsByPrefixSortsAndExcludes(t *testing.T) {
	ctx := context.Background()
	gw := &countingGateway{}
	q := graph.New(gw)

	refs, err := q.RefsByPrefix(ctx, "feature/", "feature/b")
	require.NoError(t, err)
	require.Equal(t, []vcs.BranchName{"feature/a", "feature/c"}, refs)
}
