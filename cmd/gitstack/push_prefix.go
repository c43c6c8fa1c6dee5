package main

import (
	"fmt"
	"strings"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/collab"
	"github.com/gitstack-dev/gitstack/internal/config"
	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

var pushPrefixCmd = &cobra.Command{
	Use:   "push-prefix <prefix> [push-opts...]",
	Short: "Push every local branch under a prefix that differs from its remote-tracking ref",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		repo, err := getRepo(ctx)
		if err != nil {
			return err
		}

		extraArgs, err := splitPushOpts(args[1:])
		if err != nil {
			return errors.Wrap(err, "failed to parse push-opts")
		}

		q := graph.New(repo)
		opts := vcs.PushOpts{Remote: config.Gitstack.Push.Remote, ExtraArgs: append(config.Gitstack.Push.ExtraArgs, extraArgs...)}
		result, err := collab.PushPrefix(ctx, repo, q, args[0], opts)
		if err != nil {
			return errors.Wrap(err, "push_prefix failed")
		}

		fmt.Println(collab.RenderPushResult(ctx, repo, result))
		return nil
	},
}

// splitPushOpts joins any trailing args back into one string and
// tokenizes it shell-style, so callers can pass `gitstack push-prefix
// feature/ "--force-with-lease --no-verify"` as a single quoted flag
// value.
func splitPushOpts(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, nil
	}
	return shlex.Split(strings.Join(args, " "))
}
