package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	orig := readBuildInfo
	defer func() { readBuildInfo = orig }()

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}}, true
	}

	if got := String(); !strings.HasPrefix(got, "ghrepo v1.2.3 ") {
		t.Fatalf("expected module version, got %q", got)
	}

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	}
	if got := String(); !strings.HasPrefix(got, "ghrepo dev ") {
		t.Fatalf("expected dev, got %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	orig := readBuildInfo
	defer func() { readBuildInfo = orig }()

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}}, true
	}
	if got := UserAgent(); !strings.HasPrefix(got, "ghrepo/v1.2.3 (") {
		t.Fatalf("unexpected user agent %q", got)
	}
}
