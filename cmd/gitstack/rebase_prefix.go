package main

import (
	"encoding/json"
	"fmt"
	"os"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/present"
	"github.com/gitstack-dev/gitstack/internal/rebaseengine"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/spf13/cobra"
)

var rebasePrefixFlags struct {
	JSON bool
}

var rebasePrefixCmd = &cobra.Command{
	Use:   "rebase-prefix <prefix> [target]",
	Short: "Rebase every stack under a branch name prefix onto target",
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

		engine := buildEngine(repo, interactiveConfirmer())
		result, err := engine.RebasePrefix(ctx, args[0], target)
		if errors.Is(err, rebaseengine.ErrDiscoveryEmpty) {
			return err
		}
		if err != nil {
			return err
		}

		if rebasePrefixFlags.JSON {
			if err := json.NewEncoder(os.Stdout).Encode(result); err != nil {
				return err
			}
		} else {
			fmt.Println(present.RenderBatchSummary(ctx, repo, result))
		}
		if result.HasFailures() {
			return errors.New("one or more stacks failed to rebase")
		}
		return nil
	},
}

func init() {
	rebasePrefixCmd.Flags().BoolVar(&rebasePrefixFlags.JSON, "json", false, "emit the result log as JSON instead of a rendered summary")
}
