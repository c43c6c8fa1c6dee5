package vcs

import (
	"context"
	"strings"

	"emperror.dev/errors"
	"github.com/Masterminds/semver/v3"
)

// MinVersion is the oldest git version known to support
// `rebase --update-refs`, the primitive the rebase executor depends on
// to keep intra-stack branch positions aligned during a replay.
var MinVersion = semver.MustParse("2.38.0")

func (r *Repo) Version(ctx context.Context) (*semver.Version, error) {
	out, err := r.git(ctx, "version")
	if err != nil {
		return nil, err
	}
	// "git version 2.43.0" or "git version 2.43.0.windows.1"
	fields := strings.Fields(out)
	if len(fields) < 3 {
		return nil, errors.Errorf("unrecognized `git version` output: %q", out)
	}
	// Keep only major.minor.patch; vendor suffixes like ".windows.1" are
	// not valid semver.
	parts := strings.SplitN(fields[2], ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return nil, errors.Wrapf(err, "unrecognized `git version` output: %q", out)
	}
	return v, nil
}

// CheckMinVersion fails with ErrVersionTooOld if the detected version is
// older than MinVersion. Called once during preflight before any
// mutation is attempted.
func CheckMinVersion(ctx context.Context, gw Gateway) error {
	v, err := gw.Version(ctx)
	if err != nil {
		return err
	}
	if v.LessThan(MinVersion) {
		return errors.Wrapf(ErrVersionTooOld, "found %s, need >= %s", v, MinVersion)
	}
	return nil
}
