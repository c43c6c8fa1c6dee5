package collab_test

import (
	"context"
	"testing"

	"github.com/gitstack-dev/gitstack/internal/collab"
	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/gitstack-dev/gitstack/internal/vcs/vcstest"
	"github.com/stretchr/testify/require"
)

func TestPushPrefix_SkipsUpToDateBranches(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature/a")
	repo.Commit("a.txt", "1\n", "a work")
	repo.Push("feature/a")

	repo.Branch("feature/b")
	repo.Commit("b.txt", "1\n", "b work")
	// feature/b is never pushed, so it's new and must be included.

	q := graph.New(repo.Gateway)
	result, err := collab.PushPrefix(ctx, repo.Gateway, q, "feature/", vcs.PushOpts{})
	require.NoError(t, err)

	require.Equal(t, []vcs.BranchName{"feature/a"}, result.Skipped, "feature/a's local ref already equals its pushed remote ref")
	require.Equal(t, []vcs.BranchName{"feature/b"}, result.Pushed)

	head, err := repo.Gateway.Resolve(ctx, "origin/feature/b")
	require.NoError(t, err)
	require.Equal(t, repo.Head("feature/b"), head)
}

func TestPushPrefix_PushesAdvancedBranch(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature/a")
	repo.Commit("a.txt", "1\n", "a work")
	repo.Push("feature/a")
	repo.Commit("a2.txt", "2\n", "more a work")

	q := graph.New(repo.Gateway)
	result, err := collab.PushPrefix(ctx, repo.Gateway, q, "feature/", vcs.PushOpts{})
	require.NoError(t, err)
	require.Empty(t, result.Skipped)
	require.Equal(t, []vcs.BranchName{"feature/a"}, result.Pushed)
}
