// Package vcstest spins up real, throwaway git repositories for exercising
// internal/vcs.Repo against an actual git executable, favoring a real
// temp repo over mocking the VCS in this layer's own tests.
package vcstest

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/gitstack-dev/gitstack/internal/vcs"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// Repo is a temporary local+remote git repository pair for tests.
type Repo struct {
	t         *testing.T
	Dir       string
	RemoteDir string
	Gateway   *vcs.Repo
}

// New initializes a fresh repository with an initial commit on "main" and
// a bare remote named "origin".
func New(t *testing.T) *Repo {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "local")
	remoteDir := filepath.Join(t.TempDir(), "remote")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.MkdirAll(remoteDir, 0o755))

	r := &Repo{t: t, Dir: dir, RemoteDir: remoteDir}
	r.runRemote("init", "--bare")
	r.run("init", "--initial-branch=main")
	r.run("config", "user.name", "gitstack-test")
	r.run("config", "user.email", "gitstack-test@nonexistent")
	r.run("remote", "add", "origin", remoteDir)

	r.WriteFile("README.md", "# hello\n")
	r.run("add", "README.md")
	r.run("commit", "-m", "initial commit")
	r.run("push", "-u", "origin", "main")

	r.Gateway = vcs.Open(dir, logrus.StandardLogger())
	return r
}

func (r *Repo) run(args ...string) string {
	r.t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = r.Dir
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	require.NoError(r.t, cmd.Run(), "git %v failed: %s", args, errb.String())
	return out.String()
}

func (r *Repo) runRemote(args ...string) string {
	r.t.Helper()
	cmd := exec.CommandContext(context.Background(), "git", args...)
	cmd.Dir = r.RemoteDir
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	require.NoError(r.t, cmd.Run(), "git %v failed: %s", args, errb.String())
	return out.String()
}

// WriteFile writes (or overwrites) a file in the working tree.
func (r *Repo) WriteFile(name, body string) {
	r.t.Helper()
	require.NoError(r.t, os.WriteFile(filepath.Join(r.Dir, name), []byte(body), 0o644))
}

// Commit writes a file and commits it, returning the new commit id.
func (r *Repo) Commit(file, body, message string) vcs.CommitID {
	r.t.Helper()
	r.WriteFile(file, body)
	r.run("add", file)
	r.run("commit", "-m", message)
	return vcs.CommitID(r.run("rev-parse", "HEAD")[:40])
}

// Branch creates (and checks out) a new branch at the current HEAD.
func (r *Repo) Branch(name string) {
	r.t.Helper()
	r.run("checkout", "-b", name)
}

// Checkout switches to an existing branch.
func (r *Repo) Checkout(name string) {
	r.t.Helper()
	r.run("checkout", name)
}

// Head returns the commit the given branch currently points to.
func (r *Repo) Head(branch string) vcs.CommitID {
	r.t.Helper()
	return vcs.CommitID(r.run("rev-parse", branch)[:40])
}

// Merge performs a real merge commit of branch into the current HEAD.
func (r *Repo) Merge(branch, message string) {
	r.t.Helper()
	r.run("merge", "--no-ff", "-m", message, branch)
}

// SquashMerge squashes branch's changes into the current HEAD as one new
// commit, without recording branch as a merge parent.
func (r *Repo) SquashMerge(branch, message string) {
	r.t.Helper()
	r.run("merge", "--squash", branch)
	r.run("commit", "-m", message)
}

// CherryPick cherry-picks a single commit onto the current HEAD.
func (r *Repo) CherryPick(commit vcs.CommitID) {
	r.t.Helper()
	r.run("cherry-pick", string(commit))
}

// Push pushes a branch to the origin remote and sets it as the upstream.
func (r *Repo) Push(branch string) {
	r.t.Helper()
	r.run("push", "-u", "origin", branch)
}

// DeleteRemote deletes a branch on the origin remote.
func (r *Repo) DeleteRemote(branch string) {
	r.t.Helper()
	r.run("push", "origin", "--delete", branch)
}
