package config

import (
	"os"

	"emperror.dev/errors"
	"github.com/spf13/viper"
)

type Obsolescence struct {
	// HistoryWindow bounds strategy 3 (historical tree match: how many of
	// the target's most recent commits are scanned) and
	// TopologyAnalyzer.FindCutPoint (how many of the tip's commits not in
	// the target are checked). Left tunable rather than hardcoded at 100.
	HistoryWindow int
}

type Push struct {
	Remote string
	// ExtraArgs are appended verbatim to `git push` invocations, e.g.
	// ["--force-with-lease"].
	ExtraArgs []string
}

var Gitstack = struct {
	// TargetBranch is the default target for rebase_prefix/prune_remote_prefix
	// when the caller does not name one explicitly.
	TargetBranch string
	// TrunkBranches lists additional long-lived branches (e.g. release
	// branches). It is loaded from config, but no command reads it: only
	// TargetBranch or an explicit target argument is used as a target.
	TrunkBranches []string
	Obsolescence  Obsolescence
	Push          Push
}{
	TargetBranch: "main",
	Obsolescence: Obsolescence{
		HistoryWindow: 100,
	},
	Push: Push{
		Remote: "origin",
	},
}

// Load initializes the configuration values from the first config file
// found across the standard cascade, plus any additional repo-local paths
// the caller supplies (typically $GIT_COMMON_DIR/gitstack).
// Returns whether a config file was loaded and an error if one occurred.
func Load(paths []string) (bool, error) {
	return loadFromFile(paths)
}

func loadFromFile(paths []string) (bool, error) {
	v := viper.New()
	v.SetConfigName("config")

	v.AddConfigPath("$XDG_CONFIG_HOME/gitstack")
	v.AddConfigPath("$HOME/.config/gitstack")
	v.AddConfigPath("$HOME/.gitstack")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, nil
		}
		return false, err
	}

	if err := v.Unmarshal(&Gitstack); err != nil {
		return true, errors.Wrap(err, "failed to read gitstack config")
	}
	return true, nil
}

// RepoConfigPath returns the repo-local config search path under the given
// git common dir (the value `git rev-parse --git-common-dir` reports),
// honored after the user-level cascade so a repo can override history
// window size or push defaults for itself.
func RepoConfigPath(gitCommonDir string) string {
	if gitCommonDir == "" {
		return ""
	}
	return gitCommonDir + string(os.PathSeparator) + "gitstack"
}
