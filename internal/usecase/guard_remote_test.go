package usecase

import (
	"context"
	"testing"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

func TestCheckRemotes(t *testing.T) {
	cases := []struct {
		remotes []string
		stage   domain.Stage
	}{
		{nil, ""},
		{[]string{"origin"}, ""},
		{[]string{"github-mirror", "GitHub"}, ""},
		{[]string{"origin", "github"}, domain.StageRemoteConflict},
	}

	for _, c := range cases {
		err := CheckRemotes(c.remotes)
		if domain.StageOf(err) != c.stage {
			t.Fatalf("remotes %v: expected stage %q, got %v", c.remotes, c.stage, err)
		}
	}
}

func TestGuardRemote_Execute(t *testing.T) {
	if err := NewGuardRemote(&fakeVCS{remotes: []string{"origin"}}).Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := NewGuardRemote(&fakeVCS{remotes: []string{"github"}}).Execute(context.Background())
	if !domain.IsStage(err, domain.StageRemoteConflict) {
		t.Fatalf("expected RemoteConflict, got %v", err)
	}
}
