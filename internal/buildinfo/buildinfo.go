// Package buildinfo carries version data stamped at link time:
//
//	go build -ldflags "-X github.com/aalvaropc/ghrepo/internal/buildinfo.Version=v0.1.0 ..."
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

func String() string {
	return fmt.Sprintf("ghrepo %s (commit=%s, date=%s)", version(), Commit, Date)
}

// UserAgent identifies ghrepo to the hosting service.
func UserAgent() string {
	return "ghrepo/" + version() + " (+https://github.com/aalvaropc/ghrepo)"
}

// version falls back to the module version for `go install` builds.
func version() string {
	if Version != "dev" {
		return Version
	}
	if bi, ok := readBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return Version
}
