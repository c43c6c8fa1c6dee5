package vcs

import "context"

func (r *Repo) PullRebase(ctx context.Context) error {
	_, err := r.run(ctx, []string{"pull", "--rebase"}, nil)
	return err
}

func (r *Repo) Push(ctx context.Context, refs []BranchName, opts PushOpts) error {
	remote := opts.Remote
	if remote == "" {
		remote = "origin"
	}
	args := []string{"push", remote}
	args = append(args, opts.ExtraArgs...)
	for _, ref := range refs {
		args = append(args, string(ref)+":"+string(ref))
	}
	_, err := r.run(ctx, args, &runOpts{interactive: true})
	return err
}

func (r *Repo) DeleteLocal(ctx context.Context, refs []BranchName, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	args := []string{"branch", flag}
	for _, ref := range refs {
		args = append(args, string(ref))
	}
	_, err := r.run(ctx, args, nil)
	return err
}

func (r *Repo) DeleteRemote(ctx context.Context, remote string, refs []BranchName) error {
	if remote == "" {
		remote = "origin"
	}
	args := []string{"push", remote, "--delete"}
	for _, ref := range refs {
		args = append(args, string(ref))
	}
	_, err := r.run(ctx, args, &runOpts{interactive: true})
	return err
}

func (r *Repo) Fetch(ctx context.Context, remote string, prune bool) error {
	if remote == "" {
		remote = "origin"
	}
	args := []string{"fetch", remote}
	if prune {
		args = append(args, "--prune")
	}
	_, err := r.run(ctx, args, nil)
	return err
}
