// Package obsolescence implements the ObsolescenceOracle: the
// is_obsolete(commit, target) predicate that decides whether a commit's
// content has already landed in a target branch by any of rebase, merge,
// squash-merge, or revert-then-reapply.
package obsolescence

import (
	"context"

	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// DefaultHistoryWindow bounds the cost of strategy 3 (historical tree
// match: how many of the target's most recent commits get scanned) and of
// TopologyAnalyzer.FindCutPoint (how many of the tip's commits not in the
// target get checked) when no narrower bound applies.
const DefaultHistoryWindow = 100

// Oracle evaluates is_obsolete against a target branch.
type Oracle struct {
	gw            vcs.Gateway
	q             *graph.Queries
	historyWindow int
}

// New constructs an Oracle. historyWindow <= 0 uses DefaultHistoryWindow.
func New(gw vcs.Gateway, q *graph.Queries, historyWindow int) *Oracle {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &Oracle{gw: gw, q: q, historyWindow: historyWindow}
}

// IsObsolete reports whether applying commit on top of target would
// introduce no new content not already present in target's history. The
// three strategies are tried in order; the first match wins, and if none
// matches the commit is not obsolete.
func (o *Oracle) IsObsolete(ctx context.Context, commit vcs.CommitID, target vcs.BranchName) (bool, error) {
	targetHead, err := o.q.Resolve(ctx, string(target))
	if err != nil {
		return false, err
	}

	// Strategy 1: patch-id equivalence (classical rebase/merge/cherry-pick).
	ok, err := o.patchIDEquivalent(ctx, targetHead, commit)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	// Strategy 2: merge-tree equality (squash-merge).
	ok, err = o.mergeTreeEqual(ctx, targetHead, commit)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	// Strategy 3: historical tree match (revert-robust).
	ok, err = o.historicalTreeMatch(ctx, targetHead, commit)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// patchIDEquivalent is true iff every commit reachable from commit but not
// from target has a patch-id equivalent already in target's history (i.e.
// `git cherry` reports no "+" entries).
func (o *Oracle) patchIDEquivalent(ctx context.Context, targetHead, commit vcs.CommitID) (bool, error) {
	entries, err := o.gw.Cherry(ctx, string(targetHead), string(commit))
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		if e.Marker == vcs.CherryUnique {
			return false, nil
		}
	}
	return true, nil
}

// mergeTreeEqual is true iff merging commit into target would produce a
// tree identical to target's own tree, meaning commit's changes have
// already been folded into target some other way (typically a squash).
func (o *Oracle) mergeTreeEqual(ctx context.Context, targetHead, commit vcs.CommitID) (bool, error) {
	targetTree, err := o.q.TreeOf(ctx, targetHead)
	if err != nil {
		return false, err
	}
	mergedTree, ok, err := o.gw.MergeTree(ctx, targetHead, commit)
	if err != nil {
		return false, err
	}
	if !ok {
		// A conflict outcome counts as "not equal".
		return false, nil
	}
	return mergedTree == targetTree, nil
}

// historicalTreeMatch is true iff commit's tree exactly matches the tree
// of one of the last historyWindow commits on target, catching histories
// where content was reverted and later reintroduced under a different
// patch-id.
func (o *Oracle) historicalTreeMatch(ctx context.Context, targetHead, commit vcs.CommitID) (bool, error) {
	commitTree, err := o.q.TreeOf(ctx, commit)
	if err != nil {
		return false, err
	}
	history, err := o.gw.RevList(ctx, "", targetHead, o.historyWindow)
	if err != nil {
		return false, err
	}
	for _, h := range history {
		tree, err := o.q.TreeOf(ctx, h)
		if err != nil {
			return false, err
		}
		if tree == commitTree {
			return true, nil
		}
	}
	return false, nil
}
