package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/config"
	"github.com/gitstack-dev/gitstack/internal/glog"
	"github.com/gitstack-dev/gitstack/internal/present/colors"
	"github.com/gitstack-dev/gitstack/internal/rebaseengine"
	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/kr/text"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	Debug     bool
	Directory string
	Yes       bool
}

var rootCmd = &cobra.Command{
	Use: "gitstack",

	// Don't automatically print errors or usage information (we handle
	// that ourselves in main()). Cobra still prints usage if a command
	// returns cmd.Usage() from RunE.
	SilenceErrors: true,
	SilenceUsage:  true,

	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		glog.Init(rootFlags.Debug)
		colors.SetupBackgroundColorTypeFromEnv()
		if rootFlags.Debug {
			logrus.WithField("gitstack_version", config.Version).Debug("enabled debug logging")
		}

		repoConfigDir := ""
		var repo *vcs.Repo
		if r, err := getRepo(cmd.Context()); err != nil {
			logrus.WithError(err).Debug("unable to load git repo (probably not inside a repo)")
		} else if dir, err := gitCommonDir(cmd.Context(), r); err != nil {
			logrus.WithError(err).Warning("failed to determine $GIT_COMMON_DIR")
		} else {
			repo = r
			repoConfigDir = config.RepoConfigPath(dir)
		}

		if _, err := config.Load([]string{repoConfigDir}); err != nil {
			return errors.Wrap(err, "failed to load configuration")
		}

		if err := config.LoadUserState(); err != nil {
			logrus.WithError(err).Debug("failed to load user state")
		}
		warnOnceOldGitVersion(cmd.Context(), repo)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&rootFlags.Debug, "debug", false, "enable verbose debug logging")
	rootCmd.PersistentFlags().StringVarP(&rootFlags.Directory, "repo", "C", "", "directory to use for the git repository")
	rootCmd.PersistentFlags().BoolVarP(&rootFlags.Yes, "yes", "y", false, "answer yes to all confirmation prompts")
	rootCmd.AddCommand(
		rebasePrefixCmd,
		evolveCmd,
		pushPrefixCmd,
		pruneLocalCmd,
		pruneRemotePrefixCmd,
		versionCmd,
	)
}

func main() {
	startTime := time.Now()
	err := rootCmd.Execute()
	logrus.WithField("duration", time.Since(startTime)).Debug("command exited")

	if err == nil {
		return
	}
	if errors.Is(err, rebaseengine.ErrDiscoveryEmpty) || errors.Is(err, rebaseengine.ErrUserCancelled) {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(0)
	}

	if rootFlags.Debug {
		fmt.Fprintf(os.Stderr, "error: %s\n%s\n", err, text.Indent(fmt.Sprintf("%+v", err), "\t"))
	} else {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
	}
	os.Exit(1)
}

// warnOnceOldGitVersion prints a one-time hint when the detected git
// predates vcs.MinVersion, then persists that it's been shown so it
// doesn't repeat on every invocation.
func warnOnceOldGitVersion(ctx context.Context, repo *vcs.Repo) {
	if repo == nil || config.UserState.NotifiedMinGitVersion {
		return
	}
	v, err := repo.Version(ctx)
	if err != nil || !v.LessThan(vcs.MinVersion) {
		return
	}
	fmt.Fprintf(os.Stderr, "warning: git %s is older than the minimum supported %s; rebase_prefix and evolve will refuse to run until you upgrade\n", v, vcs.MinVersion)
	config.UserState.NotifiedMinGitVersion = true
	if err := config.SaveUserState(); err != nil {
		logrus.WithError(err).Debug("failed to save user state")
	}
}
