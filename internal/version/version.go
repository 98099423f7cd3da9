// Package version holds build metadata injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/HerbHall/wifisurvey/internal/version.Version=v0.3.0"
package version

import (
	"fmt"
	"runtime"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Short returns the version string alone.
func Short() string {
	return Version
}

// Info returns a one-line summary for `wifisurvey version`.
func Info() string {
	return fmt.Sprintf("wifisurvey %s (commit %s, built %s, %s/%s)",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

// Map returns the build metadata as key/value pairs.
func Map() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
	}
}
