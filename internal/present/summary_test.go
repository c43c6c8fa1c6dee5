package present_test

import (
	"context"
	"testing"

	"github.com/gitstack-dev/gitstack/internal/present"
	"github.com/gitstack-dev/gitstack/internal/rebaseengine"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/gitstack-dev/gitstack/internal/vcs/vcstest"
	"github.com/stretchr/testify/require"
)

func TestRenderBatchSummary_OnlyNonEmptySectionsAppear(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("feature/a-sub")
	repo.Commit("sub.txt", "1\n", "sub work")
	repo.Branch("feature/a")
	repo.Commit("tip.txt", "1\n", "tip work")

	log := &rebaseengine.ResultLog{
		Updated: []rebaseengine.StackResult{
			{Tip: "feature/a", Members: []vcs.BranchName{"feature/a-sub"}, Status: rebaseengine.Updated, Strategy: rebaseengine.StrategyPlain},
		},
	}

	out := present.RenderBatchSummary(ctx, repo.Gateway, log)
	require.Contains(t, out, "Updated:")
	require.Contains(t, out, "feature/a")
	require.Contains(t, out, "feature/a-sub")
	require.NotContains(t, out, "Skipped")
	require.NotContains(t, out, "Failed")
}

func TestRenderBatchSummary_OrdersChildrenClosestFirst(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	repo.Branch("base")
	repo.Commit("base.txt", "1\n", "base")

	// "far" branches off base and gets left behind.
	repo.Branch("far")
	repo.Commit("far1.txt", "1\n", "far work 1")

	repo.Checkout("base")
	repo.Branch("near")
	repo.Commit("near1.txt", "1\n", "near work")
	repo.Branch("tip")
	repo.Commit("tip1.txt", "1\n", "tip work")

	log := &rebaseengine.ResultLog{
		Updated: []rebaseengine.StackResult{
			{Tip: "tip", Members: []vcs.BranchName{"far", "near"}, Status: rebaseengine.Updated, Strategy: rebaseengine.StrategyPlain},
		},
	}

	out := present.RenderBatchSummary(ctx, repo.Gateway, log)
	nearIdx := indexOf(out, "near")
	farIdx := indexOf(out, "far")
	require.True(t, nearIdx < farIdx, "near is closer to tip than far, so it should render first")
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}

func TestRenderBatchSummary_FailedIncludesConflictOutput(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	log := &rebaseengine.ResultLog{
		Failed: []rebaseengine.StackResult{
			{Tip: "feature/b", Status: rebaseengine.Failed, Strategy: rebaseengine.StrategyCut, ConflictOutput: "CONFLICT (content): Merge conflict in a.txt"},
		},
	}

	out := present.RenderBatchSummary(ctx, repo.Gateway, log)
	require.Contains(t, out, "manual intervention required")
	require.Contains(t, out, "feature/b")
	require.Contains(t, out, "CONFLICT (content): Merge conflict in a.txt")
}

func TestRenderBatchSummary_Empty(t *testing.T) {
	ctx := context.Background()
	repo := vcstest.New(t)

	out := present.RenderBatchSummary(ctx, repo.Gateway, &rebaseengine.ResultLog{})
	require.Empty(t, out)
}
