package usecase

import (
	"context"
	"fmt"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

// GuardRemote refuses to run against a repository that already has a
// domain.GuardedRemote remote.
type GuardRemote struct {
	vcs ports.VCS
}

func NewGuardRemote(vcs ports.VCS) *GuardRemote {
	return &GuardRemote{vcs: vcs}
}

func (uc *GuardRemote) Execute(ctx context.Context) error {
	remotes, err := uc.vcs.Remotes(ctx)
	if err != nil {
		return domain.Fail(domain.StageRemoteConflict, "cannot list git remotes", err)
	}
	return CheckRemotes(remotes)
}

// CheckRemotes fails with RemoteConflict when the guarded alias is present.
func CheckRemotes(remotes []string) error {
	for _, r := range remotes {
		if r == domain.GuardedRemote {
			return domain.Fail(domain.StageRemoteConflict,
				fmt.Sprintf("remote %q already exists", domain.GuardedRemote), nil)
		}
	}
	return nil
}
