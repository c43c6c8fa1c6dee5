package config

// VersionDev is the default Version for non-release builds.
const VersionDev = "<dev>"

// Version is the gitstack binary version, set via -ldflags at release
// build time (e.g. -X github.com/gitstack-dev/gitstack/internal/config.Version=v1.2.3).
var Version = VersionDev
