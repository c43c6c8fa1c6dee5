package main

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/collab"
	"github.com/spf13/cobra"
)

var pruneLocalFlags struct {
	DryRun bool
}

var pruneLocalCmd = &cobra.Command{
	Use:   "prune-local",
	Short: "Delete local branches whose upstream has vanished",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := getRepo(ctx)
		if err != nil {
			return err
		}

		plan, err := collab.PlanPruneLocal(ctx, repo)
		if err != nil {
			return errors.Wrap(err, "prune_local failed")
		}
		if len(plan.Branches) == 0 {
			fmt.Println("No local branches to prune.")
			return nil
		}

		fmt.Println(collab.RenderPrunePlan(ctx, repo, "", plan.Branches))
		if pruneLocalFlags.DryRun {
			return nil
		}
		return plan.Apply(ctx, repo)
	},
}

func init() {
	pruneLocalCmd.Flags().BoolVar(&pruneLocalFlags.DryRun, "dry-run", false, "print the branches that would be deleted without deleting them")
}
