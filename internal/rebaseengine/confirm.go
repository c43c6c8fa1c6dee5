package rebaseengine

import "context"

// Confirmer asks the user a yes/no question before a destructive step.
// Declared here, on the consumer side, so internal/present can satisfy
// it structurally without rebaseengine importing present (which itself
// renders rebaseengine's ResultLog).
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// AutoDecline never confirms; useful for --dry-run and for tests that
// must not delete anything.
type AutoDecline struct{}

func (AutoDecline) Confirm(context.Context, string) (bool, error) { return false, nil }

// AutoConfirm always confirms without prompting; cmd/gitstack uses it when
// --yes is passed, for non-interactive callers that have already decided
// to proceed.
type AutoConfirm struct{}

func (AutoConfirm) Confirm(context.Context, string) (bool, error) { return true, nil }
