package obsolescence_test

import (
	"context"
	"testing"

	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/obsolescence"
	"github.com/gitstack-dev/gitstack/internal/vcs/vcstest"
	"github.com/stretchr/testify/require"
)

func TestIsObsolete_RebasedOntoTarget(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature")
	repo.Commit("a.txt", "a\n", "add a")
	repo.Checkout("main")
	repo.Commit("unrelated.txt", "x\n", "unrelated main work")
	repo.Checkout("feature")
	featureHead := repo.Head("feature")

	q := graph.New(repo.Gateway)
	oracle := obsolescence.New(repo.Gateway, q, 0)

	// feature hasn't landed anywhere yet.
	obsolete, err := oracle.IsObsolete(ctx, featureHead, "main")
	require.NoError(t, err)
	require.False(t, obsolete)

	// Cherry-pick feature's commit onto main (same patch-id as a real rebase would produce).
	repo.Checkout("main")
	repo.CherryPick(featureHead)

	// Queries caches ref resolution for one invocation, so a fresh oracle
	// is needed to see main's new head.
	oracle = obsolescence.New(repo.Gateway, graph.New(repo.Gateway), 0)

	obsolete, err = oracle.IsObsolete(ctx, featureHead, "main")
	require.NoError(t, err)
	require.True(t, obsolete, "patch-id equivalent commit should be obsolete")
}

func TestIsObsolete_SquashMerged(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature")
	repo.Commit("a.txt", "a\n", "add a")
	repo.Commit("b.txt", "b\n", "add b")
	featureHead := repo.Head("feature")

	repo.Checkout("main")
	repo.SquashMerge("feature", "squash feature")

	q := graph.New(repo.Gateway)
	oracle := obsolescence.New(repo.Gateway, q, 0)

	obsolete, err := oracle.IsObsolete(ctx, featureHead, "main")
	require.NoError(t, err)
	require.True(t, obsolete, "squash-merged content should be caught by the merge-tree strategy")
}

func TestIsObsolete_StillLive(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature")
	repo.Commit("a.txt", "a\n", "add a")
	featureHead := repo.Head("feature")

	q := graph.New(repo.Gateway)
	oracle := obsolescence.New(repo.Gateway, q, 0)

	obsolete, err := oracle.IsObsolete(ctx, featureHead, "main")
	require.NoError(t, err)
	require.False(t, obsolete)
}

func TestIsObsolete_HistoricalTreeMatch(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature")
	commit := repo.Commit("a.txt", "a\n", "add a")

	// Pass main through the exact same tree via different patches, then
	// move on: no main patch matches feature's (so patch-id misses), main's
	// head conflicts with feature on a.txt (so merge-tree misses), but one
	// historical main tree equals feature's.
	repo.Checkout("main")
	repo.Commit("a.txt", "x\n", "add a with other content")
	repo.Commit("a.txt", "a\n", "reintroduce a via different history")
	repo.Commit("a.txt", "y\n", "change a again")

	q := graph.New(repo.Gateway)
	oracle := obsolescence.New(repo.Gateway, q, 50)

	obsolete, err := oracle.IsObsolete(ctx, commit, "main")
	require.NoError(t, err)
	require.True(t, obsolete, "identical tree content within the history window should be caught")
}
