package main

import (
	"fmt"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/collab"
	"github.com/gitstack-dev/gitstack/internal/config"
	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/obsolescence"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/spf13/cobra"
)

var pruneRemotePrefixFlags struct {
	DryRun bool
}

var pruneRemotePrefixCmd = &cobra.Command{
	Use:   "prune-remote-prefix <prefix> [target]",
	Short: "Delete remote branches under a prefix that are obsolete in the target branch",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := getRepo(ctx)
		if err != nil {
			return err
		}

		target := defaultTarget("")
		if len(args) == 2 {
			target = vcs.BranchName(args[1])
		}

		q := graph.New(repo)
		oracle := obsolescence.New(repo, q, config.Gitstack.Obsolescence.HistoryWindow)
		remote := config.Gitstack.Push.Remote

		plan, err := collab.PlanPruneRemotePrefix(ctx, repo, oracle, remote, args[0], target)
		if err != nil {
			return errors.Wrap(err, "prune_remote_prefix failed")
		}
		if len(plan.Branches) == 0 {
			fmt.Println("No remote branches to prune.")
			return nil
		}

		fmt.Println(collab.RenderPrunePlan(ctx, repo, remote, plan.Branches))
		if pruneRemotePrefixFlags.DryRun {
			return nil
		}
		if err := plan.Apply(ctx, repo); err != nil {
			return errors.Wrap(err, "failed to delete remote branches")
		}
		return nil
	},
}

func init() {
	pruneRemotePrefixCmd.Flags().BoolVar(&pruneRemotePrefixFlags.DryRun, "dry-run", false, "print the branches that would be deleted without deleting them")
}
