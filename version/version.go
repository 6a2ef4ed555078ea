package version

import (
	"fmt"
	"os"
)

// Set through -ldflags at release build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

// Get returns the build info. VBAGX_VERSION overrides the version, which
// lets the updater be exercised from a development build.
func Get() BuildInfo {
	v := Version
	if override := os.Getenv("VBAGX_VERSION"); override != "" {
		v = override
	}
	return BuildInfo{
		Version:   v,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
	}
}

// Short is the version as shown on the logo button.
func (b BuildInfo) Short() string {
	if b.Version == "dev" {
		return "dev"
	}
	return "v" + b.Version
}

// String is the version with its commit and date, for the credits and logs.
func (b BuildInfo) String() string {
	if b.GitCommit == "unknown" {
		return b.Short()
	}
	commit := b.GitCommit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", b.Short(), commit, b.BuildDate)
}
