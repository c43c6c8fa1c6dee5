package present_test

import (
	"context"
	"testing"

	"github.com/gitstack-dev/gitstack/internal/present"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/gitstack-dev/gitstack/internal/vcs/vcstest"
	"github.com/stretchr/testify/require"
)

func TestOrderChildren_Empty(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("tip")
	repo.Commit("1.txt", "1\n", "one")

	ordered, err := present.OrderChildren(ctx, repo.Gateway, "tip", nil)
	require.NoError(t, err)
	require.Empty(t, ordered)
}

func TestOrderChildren_OrdersByDistanceThenName(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("base")
	repo.Commit("base.txt", "1\n", "base")

	// "far" branches off base and gets left behind.
	repo.Branch("far")
	repo.Commit("far1.txt", "1\n", "far work 1")

	repo.Checkout("base")
	// "near" branches off base, then tip continues directly from it, so
	// near ends up much closer to tip than far does.
	repo.Branch("near")
	repo.Commit("near1.txt", "1\n", "near work")
	repo.Branch("tip")
	repo.Commit("tip1.txt", "1\n", "tip work")

	ordered, err := present.OrderChildren(ctx, repo.Gateway, "tip", []vcs.BranchName{"far", "near"})
	require.NoError(t, err)
	require.Equal(t, []vcs.BranchName{"near", "far"}, ordered)
}

func TestRenderStackTree_NoChildren(t *testing.T) {
	out := present.RenderStackTree("main", nil)
	require.Equal(t, "main", out)
}

func TestRenderStackTree_WithChildren(t *testing.T) {
	out := present.RenderStackTree("tip", []vcs.BranchName{"a", "b"})
	require.Equal(t, "tip\n    ├─ a\n    └─ b", out)
}
