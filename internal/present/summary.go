package present

import (
	"context"
	"fmt"
	"strings"

	"github.com/gitstack-dev/gitstack/internal/present/colors"
	"github.com/gitstack-dev/gitstack/internal/rebaseengine"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/kr/text"
)

// RenderBatchSummary renders a ResultLog as three headed sections, one
// per outcome, in the order Updated, Skipped, Failed. Failed stacks are
// rendered under a "manual intervention required" heading with their
// captured conflict output indented beneath the tree. Each tree's
// children are ordered closest-to-tip first via OrderChildren.
func RenderBatchSummary(ctx context.Context, gw vcs.Gateway, log *rebaseengine.ResultLog) string {
	var sb strings.Builder
	renderSection(ctx, gw, &sb, "Updated", colors.Updated, log.Updated, false)
	renderSection(ctx, gw, &sb, "Skipped (fully merged)", colors.Skipped, log.Skipped, false)
	renderSection(ctx, gw, &sb, "Failed — manual intervention required", colors.Failed, log.Failed, true)
	return strings.TrimSuffix(sb.String(), "\n")
}

func renderSection(ctx context.Context, gw vcs.Gateway, sb *strings.Builder, heading string, paint func(...interface{}) string, results []rebaseengine.StackResult, showConflict bool) {
	if len(results) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s:\n", paint(heading))
	for _, r := range results {
		children, err := OrderChildren(ctx, gw, r.Tip, r.Members)
		if err != nil {
			// Tip may no longer resolve (e.g. deleted during this same
			// batch); fall back to whatever order BranchesMergedInto gave.
			children = r.Members
		}
		tree := RenderStackTree(r.Tip, children)
		sb.WriteString(text.Indent(tree, "  "))
		sb.WriteString("\n")
		if showConflict && r.ConflictOutput != "" {
			sb.WriteString(text.Indent(colors.Faint(r.ConflictOutput), "      "))
			sb.WriteString("\n")
		}
	}
	sb.WriteString("\n")
}
