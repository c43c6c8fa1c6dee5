package collab

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// RenderPushResult renders a PushResult, annotating each branch with how
// long ago its head commit was committed (relative time).
func RenderPushResult(ctx context.Context, gw vcs.Gateway, res *PushResult) string {
	var sb strings.Builder
	if len(res.Pushed) > 0 {
		sb.WriteString("Pushed:\n")
		for _, b := range res.Pushed {
			sb.WriteString("  " + string(b) + describeCommitAge(ctx, gw, b) + "\n")
		}
	}
	if len(res.Skipped) > 0 {
		sb.WriteString("Already up to date:\n")
		for _, b := range res.Skipped {
			sb.WriteString("  " + string(b) + describeCommitAge(ctx, gw, b) + "\n")
		}
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// RenderPrunePlan renders a plan of branches a prune command would
// delete, annotated with how long ago each was last committed to. remote
// is prepended to each name when resolving (empty for local branches).
func RenderPrunePlan(ctx context.Context, gw vcs.Gateway, remote string, branches []vcs.BranchName) string {
	var sb strings.Builder
	for _, b := range branches {
		age := ""
		ref := string(b)
		if remote != "" {
			ref = remote + "/" + ref
		}
		if c, err := gw.Resolve(ctx, ref); err == nil {
			if t, err := gw.CommitTime(ctx, c); err == nil {
				age = fmt.Sprintf(" (last committed %s)", humanize.Time(t))
			}
		}
		sb.WriteString("  " + string(b) + age + "\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

func describeCommitAge(ctx context.Context, gw vcs.Gateway, b vcs.BranchName) string {
	head, err := gw.Resolve(ctx, string(b))
	if err != nil {
		return ""
	}
	t, err := gw.CommitTime(ctx, head)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(" (%s)", humanize.Time(t))
}
