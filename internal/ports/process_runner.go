package ports

import (
	"context"

	"github.com/aalvaropc/ghrepo/internal/domain"
)

// ProcessRunner runs an external command to completion.
// A non-zero exit is reported in the result, not as an error; err is reserved for
// commands that could not be started at all.
type ProcessRunner interface {
	Run(ctx context.Context, cmd domain.Command) (domain.ProcessResult, error)
}
