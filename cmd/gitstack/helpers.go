package main

import (
	"context"
	"os/exec"
	"strings"

	"emperror.dev/errors"
	"github.com/gitstack-dev/gitstack/internal/config"
	"github.com/gitstack-dev/gitstack/internal/glog"
	"github.com/gitstack-dev/gitstack/internal/graph"
	"github.com/gitstack-dev/gitstack/internal/obsolescence"
	"github.com/gitstack-dev/gitstack/internal/present"
	"github.com/gitstack-dev/gitstack/internal/rebaseengine"
	"github.com/gitstack-dev/gitstack/internal/vcs"
)

var cachedRepo *vcs.Repo

// getRepo resolves and caches the *vcs.Repo for the current invocation,
// honoring the --repo/-C flag.
func getRepo(ctx context.Context) (*vcs.Repo, error) {
	if cachedRepo != nil {
		return cachedRepo, nil
	}
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	if rootFlags.Directory != "" {
		cmd.Dir = rootFlags.Directory
	}
	out, err := cmd.Output()
	if err != nil {
		return nil, errors.Wrap(err, "failed to find git directory (are you running inside a Git repo?)")
	}
	dir := strings.TrimSpace(string(out))
	cachedRepo = vcs.Open(dir, glog.ForRepo(dir))
	return cachedRepo, nil
}

// gitCommonDir returns the absolute $GIT_COMMON_DIR for the repo, used to
// locate the repo-local config path. Errors are non-fatal: a missing
// common dir just means no repo-local config override is applied.
func gitCommonDir(ctx context.Context, repo *vcs.Repo) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "-C", repo.Dir(), "rev-parse", "--path-format=absolute", "--git-common-dir")
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// buildEngine wires a fresh Queries/Oracle/Engine stack over repo: a
// command snapshots refs, finds tips, then drives the rebase engine
// from there.
func buildEngine(repo *vcs.Repo, confirm rebaseengine.Confirmer) *rebaseengine.Engine {
	q := graph.New(repo)
	oracle := obsolescence.New(repo, q, config.Gitstack.Obsolescence.HistoryWindow)
	return rebaseengine.New(repo, q, oracle, confirm, repo.Log(), config.Gitstack.Obsolescence.HistoryWindow)
}

// interactiveConfirmer returns the survey-backed confirmer unless --yes
// was passed, in which case destructive prompts are auto-accepted.
func interactiveConfirmer() rebaseengine.Confirmer {
	if rootFlags.Yes {
		return rebaseengine.AutoConfirm{}
	}
	return present.Confirmer{}
}

func defaultTarget(explicit string) vcs.BranchName {
	if explicit != "" {
		return vcs.BranchName(explicit)
	}
	return vcs.BranchName(config.Gitstack.TargetBranch)
}
