// Package version holds build metadata injected at link time via -ldflags.
package version

import "runtime"

var (
	// GitRelease is the release tag, or "dev" for untagged builds.
	GitRelease = "dev"
	// GitCommit is the short commit hash of the build.
	GitCommit = "unknown"
	// GitCommitDate is the commit date of the build.
	GitCommitDate = "unknown"
	// GoInfo is the Go toolchain the binary was built with.
	GoInfo = runtime.Version()
)
