package gitcli

import (
	"context"
	"fmt"
	"strings"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

// Repo drives the git CLI for one working tree.
type Repo struct {
	dir    string
	runner ports.ProcessRunner
}

func New(dir string, runner ports.ProcessRunner) *Repo {
	return &Repo{dir: dir, runner: runner}
}

var _ ports.VCS = (*Repo)(nil)

// Remotes lists configured remote names (`git remote`).
func (r *Repo) Remotes(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "git.remotes", "remote")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

func (r *Repo) AddRemote(ctx context.Context, alias, url string) error {
	if err := validateArg("alias", alias); err != nil {
		return err
	}
	if err := validateArg("url", url); err != nil {
		return err
	}
	_, err := r.git(ctx, "git.add_remote", "remote", "add", alias, url)
	return err
}

func (r *Repo) Push(ctx context.Context, alias, branch string) error {
	if err := validateArg("branch", branch); err != nil {
		return err
	}
	_, err := r.git(ctx, "git.push", "push", alias, branch)
	return err
}

func (r *Repo) git(ctx context.Context, op string, args ...string) (string, error) {
	cmd := domain.Command{
		Dir:  r.dir,
		Name: "git",
		Args: args,
		Env:  []string{"GIT_TERMINAL_PROMPT=0"},
	}

	res, err := r.runner.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	if !res.OK() {
		return "", &domain.OpError{
			Op:   op,
			Kind: domain.KindExecution,
			Path: r.dir,
			Err:  fmt.Errorf("%w: %s exited %d: %s", domain.ErrExecution, cmd, res.ExitCode, strings.TrimSpace(string(res.Output))),
		}
	}
	return string(res.Output), nil
}

func validateArg(name, s string) error {
	if s == "" || strings.HasPrefix(s, "-") || strings.ContainsAny(s, "\x00\r\n") {
		return &domain.OpError{
			Op:   "git.validate",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("%w: %s %q", domain.ErrInvalidConfig, name, s),
		}
	}
	return nil
}
