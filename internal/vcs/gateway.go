package vcs

import (
	"context"
	"time"

	"github.com/Masterminds/semver/v3"
)

// Gateway is the full set of operations the rest of gitstack is allowed to
// use to read graph structure from, or mutate, the host repository. It
// exists as an interface (rather than a concrete *Repo everywhere) so
// ObsolescenceOracle, TopologyAnalyzer, and the rebase executor can be
// tested against an in-memory fake instead of a real git checkout.
//
// Every operation may fail with ErrVcsUnavailable or a *VcsError.
type Gateway interface {
	// Version reports the git executable's version.
	Version(ctx context.Context) (*semver.Version, error)

	// CurrentBranch returns the checked-out branch, or ok=false if the
	// repository is in a detached-HEAD state.
	CurrentBranch(ctx context.Context) (branch BranchName, ok bool, err error)

	// Resolve returns the commit a ref currently points to. Fails with
	// ErrUnknownRef if the ref does not exist.
	Resolve(ctx context.Context, ref string) (CommitID, error)

	// TreeOf returns the root tree of a commit.
	TreeOf(ctx context.Context, commit CommitID) (TreeID, error)

	// CommitTime returns the committer timestamp of a commit, used only
	// for relative-time rendering in batch summaries.
	CommitTime(ctx context.Context, commit CommitID) (time.Time, error)

	// IsAncestor reports whether a is an ancestor of (or equal to) b.
	IsAncestor(ctx context.Context, a, b CommitID) (bool, error)

	// RevList lists commits reachable from included but not excluded,
	// newest first, bounded to max entries (0 means unbounded).
	RevList(ctx context.Context, excluded, included CommitID, max int) ([]CommitID, error)

	// RevListCount is the count-only form of RevList, used for distance
	// comparisons where the full list is not needed.
	RevListCount(ctx context.Context, excluded, included CommitID) (int, error)

	// ListRefs lists branch names matching prefix in the given scope.
	ListRefs(ctx context.Context, prefix string, scope RefScope) ([]BranchName, error)

	// BranchesMergedInto lists local branches (optionally restricted to
	// prefix) that are ancestors of tip.
	BranchesMergedInto(ctx context.Context, tip BranchName, prefix string) ([]BranchName, error)

	// BranchesContaining lists local branches that contain commit.
	BranchesContaining(ctx context.Context, commit CommitID) ([]BranchName, error)

	// UpstreamOf returns the configured upstream of branch, or
	// ok=false if none is configured.
	UpstreamOf(ctx context.Context, branch BranchName) (upstream BranchName, ok bool, err error)

	// GoneBranches lists local branches whose configured upstream the VCS
	// itself reports as vanished (the "[gone]" marker `git branch -vv`
	// shows after a fetch --prune). Used by prune_local.
	GoneBranches(ctx context.Context) ([]BranchName, error)

	// Cherry compares patch-ids of commits reachable from head but not
	// upstream against upstream's history.
	Cherry(ctx context.Context, upstream, head string) ([]CherryEntry, error)

	// MergeTree computes the tree that would result from merging head
	// into base, without touching the working tree or index. ok=false
	// means the merge would conflict.
	MergeTree(ctx context.Context, base, head CommitID) (tree TreeID, ok bool, err error)

	// RebaseUpdateRefs replays the range (upstream, branch] onto onto
	// (or directly onto upstream if onto is empty), using the VCS's
	// ref-updating rebase primitive so that any other branch ref
	// pointing into the replayed range moves along with it.
	RebaseUpdateRefs(ctx context.Context, branch BranchName, opts RebaseOpts) (*RebaseResult, error)

	// RebaseAbort aborts any in-progress rebase. It is a no-op (not an
	// error) if no rebase is in progress.
	RebaseAbort(ctx context.Context) error

	Checkout(ctx context.Context, branch BranchName) error
	PullRebase(ctx context.Context) error
	Push(ctx context.Context, refs []BranchName, opts PushOpts) error

	// DeleteLocal deletes local branch refs. If force is false, the VCS
	// itself enforces the "safely merged" check and fails refs that
	// are not: callers that have already decided via IsObsolete pass
	// force=true.
	DeleteLocal(ctx context.Context, refs []BranchName, force bool) error
	DeleteRemote(ctx context.Context, remote string, refs []BranchName) error
	Fetch(ctx context.Context, remote string, prune bool) error
}
