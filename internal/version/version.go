// Package version contains build version information.
package version

// Version, GitCommit and BuildDate are overridden at build time via
// -ldflags "-X github.com/bissquit/user-registry/internal/version.Version=...".
var (
	Version   = "0.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)
