package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

type step struct {
	state domain.State
	label string
}

// steps lists what the operator sees, in run order. The first entry covers the
// local checks done before the first transition.
var steps = []step{
	{domain.StateStart, "Check remotes and metadata"},
	{domain.StateLoginPageLoaded, "Open login page"},
	{domain.StateLoggedIn, "Log in"},
	{domain.StateCreationFormLoaded, "Open new repository form"},
	{domain.StateRepoCreated, "Create repository"},
	{domain.StateRemoteExtracted, "Read clone URL"},
	{domain.StatePushed, "Add remote and push"},
}

// stepIndex returns the position of s in steps, or -1.
func stepIndex(s domain.State) int {
	for i, st := range steps {
		if st.state == s {
			return i
		}
	}
	return -1
}

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}
