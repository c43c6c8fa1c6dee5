package vcs_test

import (
	"context"
	"testing"
	"time"

	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/gitstack-dev/gitstack/internal/vcs/vcstest"
	"github.com/stretchr/testify/require"
)

func TestDeleteLocal(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature/a")
	repo.Checkout("main")

	require.NoError(t, repo.Gateway.DeleteLocal(ctx, []vcs.BranchName{"feature/a"}, true))

	_, err := repo.Gateway.Resolve(ctx, "feature/a")
	require.Error(t, err)
}

func TestDeleteLocal_UnmergedRefusedWithoutForce(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature/a")
	repo.Commit("a.txt", "1\n", "unmerged work")
	repo.Checkout("main")

	err := repo.Gateway.DeleteLocal(ctx, []vcs.BranchName{"feature/a"}, false)
	require.Error(t, err, "git branch -d should refuse to delete an unmerged branch")
}

func TestGoneBranches(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature/a")
	repo.Commit("a.txt", "1\n", "a work")
	repo.Push("feature/a")

	repo.Checkout("main")
	repo.DeleteRemote("feature/a")
	// Local branch.<name>.merge/.remote still point at origin/feature/a
	// until a fetch --prune updates the tracking state.
	require.NoError(t, repo.Gateway.Fetch(ctx, "origin", true))

	gone, err := repo.Gateway.GoneBranches(ctx)
	require.NoError(t, err)
	require.Contains(t, gone, vcs.BranchName("feature/a"))
}

func TestCommitTime(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	before := time.Now().Add(-time.Minute)
	commit := repo.Commit("a.txt", "1\n", "add a")

	ts, err := repo.Gateway.CommitTime(ctx, commit)
	require.NoError(t, err)
	require.True(t, ts.After(before), "commit time should be recent")
}

func TestCheckMinVersion(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	// The installed git is assumed to meet vcs.MinVersion in this
	// environment (required for --update-refs support regardless).
	require.NoError(t, vcs.CheckMinVersion(ctx, repo.Gateway))
}
