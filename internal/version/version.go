// Package version provides build-time version information.
//
// Variables are set at build time via ldflags:
//
//	go build -ldflags "-X github.com/devin-hart/coinmage/internal/version.Version=0.3.0 \
//	                   -X github.com/devin-hart/coinmage/internal/version.Commit=$(git rev-parse --short HEAD) \
//	                   -X github.com/devin-hart/coinmage/internal/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables (set via ldflags)
var (
	// Version is the semantic version (e.g., "0.3.0")
	Version = "dev"

	// Commit is the git commit hash (short form)
	Commit = "unknown"

	// BuildTime is the UTC build timestamp (ISO 8601)
	BuildTime = "unknown"
)

// String returns the one-line version printed by `coinmage version`.
func String() string {
	return fmt.Sprintf("coinmage %s (%s) built %s %s/%s",
		Version, Commit, BuildTime, runtime.GOOS, runtime.GOARCH)
}

// Short returns the version shown in the startup banner.
func Short() string {
	if Version == "dev" {
		return "dev-" + Commit
	}
	return "v" + Version
}
