// Package rebaseengine implements RebasePlanner/Executor: the top-level
// batch procedures rebase_prefix and evolve, built on top of
// vcs.Gateway, graph.Queries, obsolescence.Oracle, and topology.
package rebaseengine

import "emperror.dev/errors"

// Error kinds the engine raises. These are sentinels, not type names:
// callers use errors.Is/errors.As against them to classify a failure.
var (
	// ErrPreconditionFailed covers a missing VCS, a too-old VCS version, an
	// unresolvable target branch, or a missing required argument. Fatal;
	// raised before any mutation is attempted.
	ErrPreconditionFailed = errors.Sentinel("precondition failed")

	// ErrDiscoveryEmpty means no branches matched the requested prefix.
	// Non-fatal; callers should treat this as a clean exit.
	ErrDiscoveryEmpty = errors.Sentinel("no matching branches")

	// ErrAuxiliaryFailure names the kind for checkout/pull/push failures in
	// the auxiliary commands (push_prefix, prune_local,
	// prune_remote_prefix). Those commands return the underlying error
	// wrapped with context; none of them attaches this sentinel.
	ErrAuxiliaryFailure = errors.Sentinel("auxiliary operation failed")

	// ErrUserCancelled is raised when an interactive prompt is declined.
	ErrUserCancelled = errors.Sentinel("user cancelled")
)
