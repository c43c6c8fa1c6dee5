package present

import (
	"context"

	"github.com/AlecAivazis/survey/v2"
	"github.com/gitstack-dev/gitstack/internal/rebaseengine"
)

// Confirmer is an interactive y/N prompt for destructive steps,
// satisfying rebaseengine.Confirmer structurally. Declining or closing
// stdin both answer N.
type Confirmer struct{}

var _ rebaseengine.Confirmer = Confirmer{}

func (Confirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	answer := false
	q := &survey.Confirm{Message: prompt, Default: false}
	if err := survey.AskOne(q, &answer); err != nil {
		// A closed/non-interactive stdin, an interrupt, or any other
		// AskOne failure is treated as a declined prompt.
		return false, nil
	}
	return answer, nil
}
