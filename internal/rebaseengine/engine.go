package rebaseengine

import (
	"context"
	"sort"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/obsolescence"
	"github.com/gitstack-dev/gitstack/internal/topology"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/sirupsen/logrus"
)

// Engine wires the leaf components (Gateway, Queries, Oracle) into the
// top-level batch procedures RebasePrefix and Evolve. It holds no state
// beyond what is passed to its constructor; a fresh Engine is cheap to
// build per invocation and discard afterward.
type Engine struct {
	gw            vcs.Gateway
	q             *graph.Queries
	oracle        *obsolescence.Oracle
	confirm       Confirmer
	log           logrus.FieldLogger
	historyWindow int
}

func New(gw vcs.Gateway, q *graph.Queries, oracle *obsolescence.Oracle, confirm Confirmer, log logrus.FieldLogger, historyWindow int) *Engine {
	if historyWindow <= 0 {
		historyWindow = obsolescence.DefaultHistoryWindow
	}
	if confirm == nil {
		confirm = AutoDecline{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{gw: gw, q: q, oracle: oracle, confirm: confirm, log: log, historyWindow: historyWindow}
}

// RebasePrefix implements the rebase_prefix batch procedure: discover
// tips under prefix, reduce each to its best rebase strategy, apply, and
// clean up fully-merged branches left behind.
func (e *Engine) RebasePrefix(ctx context.Context, prefix string, target vcs.BranchName) (*ResultLog, error) {
	if err := vcs.CheckMinVersion(ctx, e.gw); err != nil {
		return nil, errors.Wrap(ErrPreconditionFailed, err.Error())
	}

	startBranch, haveStart, err := e.gw.CurrentBranch(ctx)
	if err != nil {
		return nil, errors.Wrap(ErrPreconditionFailed, err.Error())
	}

	if _, err := e.gw.Resolve(ctx, string(target)); err != nil {
		return nil, errors.Wrapf(ErrPreconditionFailed, "target branch %q does not exist locally: %v", target, err)
	}
	if err := e.gw.Checkout(ctx, target); err != nil {
		e.restore(ctx, startBranch, haveStart, target)
		return nil, errors.Wrapf(ErrPreconditionFailed, "could not check out target %q: %v", target, err)
	}
	if err := e.gw.PullRebase(ctx); err != nil {
		e.restore(ctx, startBranch, haveStart, target)
		return nil, errors.Wrapf(ErrPreconditionFailed, "could not update target %q: %v", target, err)
	}

	all, err := e.q.RefsByPrefix(ctx, prefix, target)
	if err != nil {
		e.restore(ctx, startBranch, haveStart, target)
		return nil, errors.Wrap(err, "listing branches")
	}
	if len(all) == 0 {
		e.restore(ctx, startBranch, haveStart, target)
		return &ResultLog{}, errors.Wrapf(ErrDiscoveryEmpty, "no local branches under prefix %q", prefix)
	}

	snapshot := make(vcs.RefSnapshot, len(all))
	for _, b := range all {
		c, err := e.q.Resolve(ctx, string(b))
		if err != nil {
			e.restore(ctx, startBranch, haveStart, target)
			return nil, errors.Wrapf(ErrPreconditionFailed, "resolving %q: %v", b, err)
		}
		snapshot[b] = c
	}

	tips, err := topology.FindTips(ctx, e.q, all)
	if err != nil {
		e.restore(ctx, startBranch, haveStart, target)
		return nil, errors.Wrap(err, "finding tips")
	}

	result := &ResultLog{}
	candidateDelete := map[vcs.BranchName]bool{}
	keptOrFailed := map[vcs.BranchName]bool{}

	for _, tip := range tips {
		members, err := e.gw.BranchesMergedInto(ctx, tip, prefix)
		if err != nil {
			e.restore(ctx, startBranch, haveStart, target)
			return nil, errors.Wrapf(err, "listing members of stack %q", tip)
		}
		members = excludeBranch(members, tip)

		obsolete, err := e.oracle.IsObsolete(ctx, snapshot[tip], target)
		if err != nil {
			e.restore(ctx, startBranch, haveStart, target)
			return nil, errors.Wrapf(err, "checking obsolescence of %q", tip)
		}
		if obsolete {
			candidateDelete[tip] = true
			for _, m := range members {
				candidateDelete[m] = true
			}
			result.add(StackResult{Tip: tip, Members: members, Status: Skipped})
			continue
		}
		for _, m := range members {
			keptOrFailed[m] = true
		}

		res := e.rebaseOneTip(ctx, tip, target, all, snapshot)
		res.Members = members
		if res.Status == Failed {
			for _, m := range members {
				keptOrFailed[m] = true
			}
		}
		result.add(res)
	}

	toDelete := make([]vcs.BranchName, 0, len(candidateDelete))
	for b := range candidateDelete {
		if !keptOrFailed[b] {
			toDelete = append(toDelete, b)
		}
	}
	sort.Slice(toDelete, func(i, j int) bool { return toDelete[i] < toDelete[j] })
	if len(toDelete) > 0 {
		e.promptAndDelete(ctx, toDelete)
	}

	e.restore(ctx, startBranch, haveStart, target)
	return result, nil
}

// rebaseOneTip applies the strategy-selection priority (sync-point >
// cut-point > plain) to a single tip and classifies the outcome.
func (e *Engine) rebaseOneTip(ctx context.Context, tip, target vcs.BranchName, all []vcs.BranchName, snapshot vcs.RefSnapshot) StackResult {
	var opts vcs.RebaseOpts
	strategy := StrategyPlain
	opts.Upstream = string(target)

	sync, err := topology.FindSyncPoint(ctx, e.gw, tip, all, snapshot)
	if err == nil && sync != nil {
		strategy = StrategySync
		opts.Upstream = string(sync.OldHash)
		opts.Onto = string(sync.NewHash)
	} else if cut, ok, cerr := topology.FindCutPoint(ctx, e.gw, e.oracle, tip, target, e.historyWindow); cerr == nil && ok {
		strategy = StrategyCut
		opts.Upstream = string(cut)
		opts.Onto = string(target)
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

// promptAndDelete confirms, then force-deletes, the fully-merged branches
// left in the candidate-delete set after kept/failed members are
// excluded.
func (e *Engine) promptAndDelete(ctx context.Context, branches []vcs.BranchName) {
	ok, err := e.confirm.Confirm(ctx, deletePromptMessage(branches))
	if err != nil || !ok {
		return
	}
	if err := e.gw.DeleteLocal(ctx, branches, true); err != nil {
		e.log.WithError(err).Warn("failed to delete fully-merged branches")
	}
}

// restore checks out the starting branch at the end of a batch, per
// invariant 6 / P5. If start_branch is no longer resolvable (e.g. it was
// itself force-deleted during cleanup), fall back to target and warn
// rather than leave the repository on an arbitrary checkout.
func (e *Engine) restore(ctx context.Context, start vcs.BranchName, haveStart bool, target vcs.BranchName) {
	branch := target
	if haveStart {
		if _, err := e.gw.Resolve(ctx, string(start)); err == nil {
			branch = start
		} else {
			e.log.Warnf("starting branch %q no longer resolvable, restoring %q instead", start, target)
		}
	}
	if err := e.gw.Checkout(ctx, branch); err != nil {
		e.log.WithError(err).Warn("failed to restore starting branch")
	}
}

// excludeBranch drops tip from members: `git for-each-ref --merged <tip>`
// reports <tip> itself as merged into <tip>, but a stack's rendered tree
// never lists the tip as one of its own children.
func excludeBranch(members []vcs.BranchName, tip vcs.BranchName) []vcs.BranchName {
	out := members[:0]
	for _, m := range members {
		if m != tip {
			out = append(out, m)
		}
	}
	return out
}

func deletePromptMessage(branches []vcs.BranchName) string {
	msg := "Delete fully-merged branch"
	if len(branches) != 1 {
		msg += "es"
	}
	msg += ":"
	for _, b := range branches {
		msg += " " + string(b)
	}
	msg += "?"
	return msg
}
