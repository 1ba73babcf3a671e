package ports

import "context"

// VCS is the local repository the new remote is wired into.
type VCS interface {
	Remotes(ctx context.Context) ([]string, error)
	AddRemote(ctx context.Context, alias, url string) error
	Push(ctx context.Context, alias, branch string) error
}
