// Package vcs implements the VcsGateway: the only component in gitstack
// that is allowed to talk to the host source-control executable. Every
// other package reasons about CommitID, TreeID, and BranchName values
// returned from here; none of them open repository files directly.
package vcs

import (
	"fmt"

	"github.com/gitstack-dev/gitstack/internal/utils/maputils"
)

// CommitID is an opaque, content-addressed identifier of a commit.
// Comparable for equality; ordering is only meaningful through ancestry
// queries (IsAncestor, RevList), never through lexicographic comparison
// of the string itself.
type CommitID string

func (c CommitID) String() string { return string(c) }

// IsZero reports whether c is the empty identifier, used as the "no such
// commit" sentinel returned by queries that may legitimately find nothing.
func (c CommitID) IsZero() bool { return c == "" }

// Short returns an abbreviated form suitable for log lines and result
// summaries. It never round-trips back into a valid ref.
func (c CommitID) Short() string {
	if len(c) > 10 {
		return string(c[:10])
	}
	return string(c)
}

// TreeID is an opaque identifier of a directory snapshot. Tree equality
// implies identical content regardless of how the tree was produced
// (rebase, merge, squash, cherry-pick).
type TreeID string

func (t TreeID) String() string { return string(t) }

// BranchName is a qualified local reference name, e.g. "feature/login-ui".
// Unique within the repository.
type BranchName string

func (b BranchName) String() string { return string(b) }

// RefSnapshot is an immutable mapping from BranchName to CommitID captured
// once at the start of a batch operation. SyncPointFinder and the rebase
// executor reason about the pre-batch graph through this type, never by
// re-resolving branch names live.
type RefSnapshot map[BranchName]CommitID

// Clone returns an independent copy so callers cannot accidentally mutate
// a snapshot that is supposed to be frozen for the lifetime of a batch.
func (s RefSnapshot) Clone() RefSnapshot {
	return maputils.Copy(s)
}

// RefScope selects which namespace ListRefs searches.
type RefScope int

const (
	ScopeLocal RefScope = iota
	ScopeRemote
)

func (s RefScope) String() string {
	switch s {
	case ScopeLocal:
		return "local"
	case ScopeRemote:
		return "remote"
	default:
		return fmt.Sprintf("RefScope(%d)", int(s))
	}
}

// CherryMarker is the per-commit patch-id comparison result of `git cherry`.
type CherryMarker byte

const (
	// CherryEquivalent means the commit's patch-id already has an
	// equivalent in the upstream history ("-" in `git cherry` output).
	CherryEquivalent CherryMarker = '-'
	// CherryUnique means no equivalent patch-id was found upstream
	// ("+" in `git cherry` output).
	CherryUnique CherryMarker = '+'
)

// CherryEntry is one line of `git cherry` output.
type CherryEntry struct {
	Marker CherryMarker
	Commit CommitID
}

// RebaseOpts parameterizes RebaseUpdateRefs. Upstream and Onto accept
// either a CommitID or a BranchName; both are passed through to the VCS
// executable as plain revision strings.
type RebaseOpts struct {
	// Upstream is the lower bound of the range being replayed: commits
	// reachable from Branch but not from Upstream are what gets replayed.
	Upstream string
	// Onto is the new base the replayed range is grafted onto. If empty,
	// the replay happens directly onto Upstream (a plain rebase).
	Onto string
}

// RebaseStatus is the outcome of a RebaseUpdateRefs call.
type RebaseStatus int

const (
	RebaseOk RebaseStatus = iota
	RebaseConflict
)

// RebaseResult carries enough detail for the executor to classify and
// report a per-stack outcome without re-querying the VCS.
type RebaseResult struct {
	Status         RebaseStatus
	NewHead        CommitID
	ConflictOutput string
}

// PushOpts parameterizes Push, passed through to the underlying `git push`
// invocation largely unexamined: the engine delegates network policy to
// the VCS executable rather than modeling it itself.
type PushOpts struct {
	Remote string
	// ExtraArgs are additional flags/arguments forwarded verbatim, e.g.
	// ["--force-with-lease"].
	ExtraArgs []string
}
