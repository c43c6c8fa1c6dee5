package main

import (
	"context"
	"fmt"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/present"
	"github.com/gitstack-dev/gitstack/internal/rebaseengine"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/spf13/cobra"
)

var evolveCmd = &cobra.Command{
	Use:   "evolve [old-hash]",
	Short: "Rescue stacks orphaned by an in-place amend of the current branch",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := getRepo(ctx)
		if err != nil {
			return err
		}

		old, err := resolveOldHash(ctx, repo, args)
		if err != nil {
			return err
		}

		engine := buildEngine(repo, interactiveConfirmer())
		result, err := engine.Evolve(ctx, old)
		if errors.Is(err, rebaseengine.ErrDiscoveryEmpty) || errors.Is(err, rebaseengine.ErrUserCancelled) {
			return err
		}
		if err != nil {
			return err
		}

		fmt.Println(present.RenderBatchSummary(ctx, repo, result))
		if result.HasFailures() {
			return errors.New("one or more stacks failed to evolve")
		}
		return nil
	},
}

// resolveOldHash returns the explicit old-hash argument, or falls back to
// the previous head position recorded in the reflog.
func resolveOldHash(ctx context.Context, repo *vcs.Repo, args []string) (vcs.CommitID, error) {
	if len(args) == 1 {
		return repo.Resolve(ctx, args[0])
	}
	return repo.Resolve(ctx, "@{1}")
}
