package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{domain.Fail(domain.StageRemoteConflict, `remote "github" already exists`, nil), `remote named "github"`},
		{domain.Fail(domain.StageRemoteConflict, "cannot list git remotes", errors.New("not a git repository")), "Cannot inspect"},
		{domain.Fail(domain.StageMetadataMissing, "", nil), "--name/--desc"},
		{domain.Fail(domain.StageDebugAbort, "", nil), "debug"},
		{fmt.Errorf("wrapped: %w", domain.Fail(domain.StageLoginFailed, "", nil)), "Login failed"},
		{&domain.OpError{Op: "config.load", Kind: domain.KindInvalidConfig, Path: "/home/ada/.ghrepo.ini"}, ".ghrepo.ini"},
		{errors.New("boom"), "Unexpected error"},
	}

	for _, c := range cases {
		got := userMessage(c.err)
		if c.want == "" {
			if got != "" {
				t.Fatalf("expected empty message, got %q", got)
			}
			continue
		}
		if !strings.Contains(got, c.want) {
			t.Fatalf("userMessage(%v) = %q, want it to contain %q", c.err, got, c.want)
		}
	}
}

func TestClampString(t *testing.T) {
	if got := clampString("abcdef", 3); got != "abc…" {
		t.Fatalf("unexpected %q", got)
	}
	if got := clampString("abc", 3); got != "abc" {
		t.Fatalf("unexpected %q", got)
	}
	if got := clampString("abc", 0); got != "" {
		t.Fatalf("unexpected %q", got)
	}
}
