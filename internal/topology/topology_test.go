package topology_test

import (
	"context"
	"testing"

	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/obsolescence"
	"github.com/gitstack-dev/gitstack/internal/topology"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/gitstack-dev/gitstack/internal/vcs/vcstest"
	"github.com/stretchr/testify/require"
)

func TestFindTips(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("stack-a")
	repo.Commit("a1.txt", "1\n", "a1")
	repo.Branch("stack-b")
	repo.Commit("b1.txt", "1\n", "b1")

	q := graph.New(repo.Gateway)
	tips, err := topology.FindTips(ctx, q, []vcs.BranchName{"stack-a", "stack-b"})
	require.NoError(t, err)
	require.Equal(t, []vcs.BranchName{"stack-b"}, tips, "stack-a is an ancestor of stack-b, so only stack-b is a tip")
}

func TestFindTips_Divergent(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("stack-a")
	repo.Commit("a1.txt", "1\n", "a1")
	repo.Checkout("main")
	repo.Branch("stack-b")
	repo.Commit("b1.txt", "1\n", "b1")

	q := graph.New(repo.Gateway)
	tips, err := topology.FindTips(ctx, q, []vcs.BranchName{"stack-a", "stack-b"})
	require.NoError(t, err)
	require.ElementsMatch(t, []vcs.BranchName{"stack-a", "stack-b"}, tips, "neither is an ancestor of the other")
}

func TestFindCutPoint(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature")
	first := repo.Commit("a.txt", "a\n", "add a")
	repo.Commit("b.txt", "b\n", "add b")

	// Land the first commit's content on main via cherry-pick so it becomes
	// obsolete, while the second commit's content does not.
	repo.Checkout("main")
	repo.CherryPick(first)

	q := graph.New(repo.Gateway)
	oracle := obsolescence.New(repo.Gateway, q, 0)

	cut, ok, err := topology.FindCutPoint(ctx, repo.Gateway, oracle, "feature", "main", 50)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, first, cut)
}

func TestFindCutPoint_NoneObsolete(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature")
	repo.Commit("a.txt", "a\n", "add a")

	q := graph.New(repo.Gateway)
	oracle := obsolescence.New(repo.Gateway, q, 0)

	_, ok, err := topology.FindCutPoint(ctx, repo.Gateway, oracle, "feature", "main", 50)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestFindSyncPoint(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("base")
	repo.Commit("base1.txt", "1\n", "base1")
	baseOld := repo.Head("base")

	repo.Branch("top")
	repo.Commit("top1.txt", "1\n", "top1")

	snapshot := vcs.RefSnapshot{
		"base": baseOld,
		"top":  repo.Head("top"),
	}

	// Simulate base having already been rebased/updated onto a new commit.
	repo.Checkout("base")
	repo.Commit("base2.txt", "2\n", "base2 (rewritten)")
	baseNew := repo.Head("base")

	repo.Checkout("top")

	sync, err := topology.FindSyncPoint(ctx, repo.Gateway, "top", []vcs.BranchName{"base", "top"}, snapshot)
	require.NoError(t, err)
	require.NotNil(t, sync)
	require.Equal(t, vcs.BranchName("base"), sync.SyncBranch)
	require.Equal(t, baseOld, sync.OldHash)
	require.Equal(t, baseNew, sync.NewHash)
}

func TestFindSyncPoint_NoAncestorCandidate(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("top")
	topHead := repo.Commit("top1.txt", "1\n", "top1")

	repo.Checkout("main")
	repo.Branch("unrelated")
	repo.Commit("u1.txt", "1\n", "u1")

	snapshot := vcs.RefSnapshot{
		"top":       topHead,
		"unrelated": repo.Head("unrelated"),
	}

	sync, err := topology.FindSyncPoint(ctx, repo.Gateway, "top", []vcs.BranchName{"top", "unrelated"}, snapshot)
	require.NoError(t, err)
	require.Nil(t, sync)
}
