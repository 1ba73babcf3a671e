package process

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

// Runner executes commands with os/exec and captures combined output.
type Runner struct {
	env []string
	log *slog.Logger
}

type Option func(*Runner)

// WithEnv appends entries to the inherited environment.
func WithEnv(kv ...string) Option {
	return func(r *Runner) { r.env = append(r.env, kv...) }
}

func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.log = l }
}

func New(opts ...Option) *Runner {
	r := &Runner{
		log: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.ProcessRunner = (*Runner)(nil)

func (r *Runner) Run(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error) {
	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	c.Env = append(append(os.Environ(), r.env...), cmd.Env...)

	start := time.Now()
	out, err := c.CombinedOutput()
	res := domain.ProcessResult{ExitCode: 0, Output: out}

	if err != nil {
		var ee *exec.ExitError
		if !errors.As(err, &ee) {
			r.log.Error("process.start_failed", "cmd", cmd.String(), "dir", cmd.Dir, "err", err)
			return res, &domain.OpError{
				Op:   "process.run",
				Kind: domain.KindExecution,
				Path: cmd.Dir,
				Err:  err,
			}
		}
		res.ExitCode = ee.ExitCode()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, &domain.OpError{Op: "process.run", Kind: domain.KindExecution, Path: cmd.Dir, Err: ctxErr}
		}
	}

	r.log.Info("process.run",
		"cmd", cmd.String(),
		"dir", cmd.Dir,
		"exit", res.ExitCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
