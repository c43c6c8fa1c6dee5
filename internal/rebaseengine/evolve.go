package rebaseengine

import (
	"context"
	"sort"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/topology"
	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// Evolve handles the evolve variant of a batch: an in-place amend of the
// current branch (old -> new) orphans any branch that was built on the
// pre-amend commit. Evolve finds those orphans, reduces them to tips,
// and rebases each tip's (old, tip] range onto new directly when no
// sync/cut strategy applies.
func (e *Engine) Evolve(ctx context.Context, old vcs.CommitID) (*ResultLog, error) {
	if err := vcs.CheckMinVersion(ctx, e.gw); err != nil {
		return nil, errors.Wrap(ErrPreconditionFailed, err.Error())
	}

	startBranch, haveStart, err := e.gw.CurrentBranch(ctx)
	if err != nil {
		return nil, errors.Wrap(ErrPreconditionFailed, err.Error())
	}
	if !haveStart {
		return nil, errors.Wrap(ErrPreconditionFailed, "evolve requires a checked-out branch, not a detached HEAD")
	}

	newHead, err := e.gw.Resolve(ctx, string(startBranch))
	if err != nil {
		return nil, errors.Wrapf(ErrPreconditionFailed, "resolving current branch %q: %v", startBranch, err)
	}

	containing, err := e.gw.BranchesContaining(ctx, old)
	if err != nil {
		e.restore(ctx, startBranch, true, startBranch)
		return nil, errors.Wrap(err, "listing branches containing the pre-amend commit")
	}

	candidates := make([]vcs.BranchName, 0, len(containing))
	for _, b := range containing {
		if b == startBranch {
			continue
		}
		bHead, err := e.gw.Resolve(ctx, string(b))
		if err != nil {
			e.restore(ctx, startBranch, true, startBranch)
			return nil, errors.Wrapf(err, "resolving %q", b)
		}
		isDescendant, err := e.gw.IsAncestor(ctx, newHead, bHead)
		if err != nil {
			e.restore(ctx, startBranch, true, startBranch)
			return nil, errors.Wrapf(err, "checking ancestry of %q", b)
		}
		if isDescendant {
			continue
		}
		candidates = append(candidates, b)
	}
	if len(candidates) == 0 {
		return &ResultLog{}, errors.Wrap(ErrDiscoveryEmpty, "nothing to evolve")
	}

	snapshot := make(vcs.RefSnapshot, len(candidates))
	for _, b := range candidates {
		c, err := e.q.Resolve(ctx, string(b))
		if err != nil {
			return nil, errors.Wrapf(err, "resolving %q", b)
		}
		snapshot[b] = c
	}

	tips, err := topology.FindTips(ctx, e.q, candidates)
	if err != nil {
		e.restore(ctx, startBranch, true, startBranch)
		return nil, errors.Wrap(err, "finding tips among orphaned branches")
	}

	ok, err := e.confirm.Confirm(ctx, evolvePromptMessage(tips))
	if err != nil || !ok {
		return &ResultLog{}, errors.Wrap(ErrUserCancelled, "evolve plan declined")
	}

	result := &ResultLog{}
	for _, tip := range tips {
		res := e.evolveOneTip(ctx, tip, startBranch, old, newHead, candidates, snapshot)
		result.add(res)
	}

	e.restore(ctx, startBranch, true, startBranch)
	return result, nil
}

// evolveOneTip applies the same strategy priority as rebaseOneTip, except
// the cut point is searched against the amended branch and both the
// cut-point and plain replays land on new; the plain fallback replays
// (old, tip] onto new rather than onto a target branch.
func (e *Engine) evolveOneTip(ctx context.Context, tip, amended vcs.BranchName, old, newHead vcs.CommitID, all []vcs.BranchName, snapshot vcs.RefSnapshot) StackResult {
	opts := vcs.RebaseOpts{Upstream: string(old), Onto: string(newHead)}
	strategy := StrategyPlain

	if sync, err := topology.FindSyncPoint(ctx, e.gw, tip, all, snapshot); err == nil && sync != nil {
		strategy = StrategySync
		opts = vcs.RebaseOpts{Upstream: string(sync.OldHash), Onto: string(sync.NewHash)}
	} else if cut, ok, cerr := topology.FindCutPoint(ctx, e.gw, e.oracle, tip, amended, e.historyWindow); cerr == nil && ok {
		strategy = StrategyCut
		opts = vcs.RebaseOpts{Upstream: string(cut), Onto: string(newHead)}
	}

	res, err := e.gw.RebaseUpdateRefs(ctx, tip, opts)
	if err != nil {
		return StackResult{Tip: tip, Status: Failed, Strategy: strategy, ConflictOutput: err.Error()}
	}
	if res.Status == vcs.RebaseConflict {
		_ = e.gw.RebaseAbort(ctx)
		return StackResult{Tip: tip, Status: Failed, Strategy: strategy, ConflictOutput: res.ConflictOutput}
	}
	return StackResult{Tip: tip, Status: Updated, Strategy: strategy}
}

func evolvePromptMessage(tips []vcs.BranchName) string {
	sorted := append([]vcs.BranchName(nil), tips...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	msg := "Rebase the following orphaned stack tip"
	if len(sorted) != 1 {
		msg += "s"
	}
	msg += " onto the amended branch:"
	for _, t := range sorted {
		msg += " " + string(t)
	}
	msg += "?"
	return msg
}
