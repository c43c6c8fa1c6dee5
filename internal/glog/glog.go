// Package glog centralizes the logrus setup shared across cmd/gitstack:
// level gating behind the root --debug flag and a per-repo field scope.
package glog

import "github.com/sirupsen/logrus"

// Init raises the process-wide logrus level to Debug when debug is true.
// Called once from the root command's PersistentPreRunE.
func Init(debug bool) {
	if debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// ForRepo returns a logger scoped to a repository directory, the same
// pattern internal/vcs.Repo carries as its own log field.
func ForRepo(dir string) logrus.FieldLogger {
	return logrus.WithField("repo", dir)
}
