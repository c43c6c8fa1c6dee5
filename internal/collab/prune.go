package collab

import (
	"context"
	"sort"
	"strings"

	"github.com/gitstack-dev/gitstack/internal/obsolescence"
	"github.com/gitstack-dev/gitstack/internal/vcs"
)

// PruneLocalPlan is the computed set of local branches prune_local would
// delete. Apply performs the deletion; a caller honoring --dry-run simply
// renders the plan and never calls Apply.
type PruneLocalPlan struct {
	Branches []vcs.BranchName
}

// PlanPruneLocal lists local branches whose upstream the VCS reports as
// gone.
func PlanPruneLocal(ctx context.Context, gw vcs.Gateway) (*PruneLocalPlan, error) {
	gone, err := gw.GoneBranches(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(gone, func(i, j int) bool { return gone[i] < gone[j] })
	return &PruneLocalPlan{Branches: gone}, nil
}

// Apply force-deletes every branch in the plan.
func (p *PruneLocalPlan) Apply(ctx context.Context, gw vcs.Gateway) error {
	if len(p.Branches) == 0 {
		return nil
	}
	return gw.DeleteLocal(ctx, p.Branches, true)
}

// PruneRemotePlan is the computed set of remote branches under a prefix
// that prune_remote_prefix would delete, because they are obsolete in
// origin/target.
type PruneRemotePlan struct {
	Remote   string
	Branches []vcs.BranchName
}

// PlanPruneRemotePrefix lists remote branches under prefix that are
// obsolete relative to origin/target.
func PlanPruneRemotePrefix(ctx context.Context, gw vcs.Gateway, oracle *obsolescence.Oracle, remote, prefix string, target vcs.BranchName) (*PruneRemotePlan, error) {
	remoteTarget := vcs.BranchName(remote + "/" + string(target))
	if _, err := gw.Resolve(ctx, string(remoteTarget)); err != nil {
		return nil, err
	}

	refs, err := gw.ListRefs(ctx, remote+"/"+prefix, vcs.ScopeRemote)
	if err != nil {
		return nil, err
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i] < refs[j] })

	plan := &PruneRemotePlan{Remote: remote}
	for _, b := range refs {
		head, err := gw.Resolve(ctx, string(b))
		if err != nil {
			continue
		}
		obsolete, err := oracle.IsObsolete(ctx, head, remoteTarget)
		if err != nil {
			return nil, err
		}
		if obsolete {
			plan.Branches = append(plan.Branches, stripRemotePrefix(b, remote))
		}
	}
	return plan, nil
}

// Apply deletes every planned branch on the remote.
func (p *PruneRemotePlan) Apply(ctx context.Context, gw vcs.Gateway) error {
	if len(p.Branches) == 0 {
		return nil
	}
	return gw.DeleteRemote(ctx, p.Remote, p.Branches)
}

// stripRemotePrefix turns "origin/feature/x" into "feature/x" so Apply
// can pass bare branch names to DeleteRemote.
func stripRemotePrefix(b vcs.BranchName, remote string) vcs.BranchName {
	return vcs.BranchName(strings.TrimPrefix(string(b), remote+"/"))
}
