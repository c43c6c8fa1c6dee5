// Package present renders stack trees and batch summaries, and drives
// the y/N confirmation prompt ahead of destructive steps.
package present

import (
	"context"
	"sort"
	"strings"

	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// OrderChildren sorts a stack's non-tip members by ascending commit
// distance to tip — closest first.
func OrderChildren(ctx context.Context, gw vcs.Gateway, tip vcs.BranchName, children []vcs.BranchName) ([]vcs.BranchName, error) {
	ordered := append([]vcs.BranchName(nil), children...)
	tipHead, err := gw.Resolve(ctx, string(tip))
	if err != nil {
		return nil, err
	}
	dist := make(map[vcs.BranchName]int, len(ordered))
	for _, c := range ordered {
		childHead, err := gw.Resolve(ctx, string(c))
		if err != nil {
			return nil, err
		}
		n, err := gw.RevListCount(ctx, childHead, tipHead)
		if err != nil {
			return nil, err
		}
		dist[c] = n
	}
	sort.Slice(ordered, func(i, j int) bool {
		if dist[ordered[i]] != dist[ordered[j]] {
			return dist[ordered[i]] < dist[ordered[j]]
		}
		return ordered[i] < ordered[j]
	})
	return ordered, nil
}

// RenderStackTree renders one stack as a flat tree:
//
//	<tip>
//	    ├─ <child-1>
//	    …
//	    └─ <child-k>
//
// children is assumed already ordered (see OrderChildren); the tip itself
// is never one of its own children.
func RenderStackTree(tip vcs.BranchName, children []vcs.BranchName) string {
	var sb strings.Builder
	sb.WriteString(string(tip))
	sb.WriteString("\n")
	for i, c := range children {
		prefix := "    ├─ "
		if i == len(children)-1 {
			prefix = "    └─ "
		}
		sb.WriteString(prefix)
		sb.WriteString(string(c))
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
