package rebaseengine

import "github.com/gitstack-dev/gitstack/internal/vcs"

// Status is the terminal state of one tip in a batch: Planned advances to
// either Skipped or AttemptingRebase, which in turn resolves to Updated or
// Failed.
type Status int

const (
	Updated Status = iota
	Skipped
	Failed
)

func (s Status) String() string {
	switch s {
	case Updated:
		return "Updated"
	case Skipped:
		return "Skipped"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Strategy records which of {sync-point, cut-point, plain} was applied,
// for rendering and for the P7 "sync beats cut beats plain" test property.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategySync
	StrategyCut
	StrategyPlain
)

func (s Strategy) String() string {
	switch s {
	case StrategySync:
		return "sync-point"
	case StrategyCut:
		return "cut-point"
	case StrategyPlain:
		return "plain"
	default:
		return "none"
	}
}

// StackResult is the per-tip outcome the executor accumulates into a
// ResultLog: enough detail for the Presenter to render a tree under the
// right heading without re-querying the VCS.
type StackResult struct {
	Tip      vcs.BranchName
	Members  []vcs.BranchName
	Status   Status
	Strategy Strategy
	// ConflictOutput carries the captured VCS output when Status == Failed.
	ConflictOutput string
}

// ResultLog is the three disjoint outcome lists a batch accumulates:
// Updated, Skipped, Failed. Exit status is non-zero iff Failed is
// non-empty.
type ResultLog struct {
	Updated []StackResult
	Skipped []StackResult
	Failed  []StackResult
}

func (r *ResultLog) add(res StackResult) {
	switch res.Status {
	case Updated:
		r.Updated = append(r.Updated, res)
	case Skipped:
		r.Skipped = append(r.Skipped, res)
	case Failed:
		r.Failed = append(r.Failed, res)
	}
}

// HasFailures reports whether the batch should exit non-zero.
func (r *ResultLog) HasFailures() bool {
	return len(r.Failed) > 0
}
