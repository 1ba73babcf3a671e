package tui

import (
	"context"
	"log/slog"

	"github.com/aalvaropc/ghrepo/internal/domain"
	"github.com/aalvaropc/ghrepo/internal/ports"
)

// RunFunc runs the repository creation and reports each transition to obs.
type RunFunc func(ctx context.Context, obs ports.StageObserver) (domain.RemoteReference, error)

type Deps struct {
	// Project is shown in the header; it may be empty before metadata is resolved.
	Project string
	Account string
	Run     RunFunc

	Logger  *slog.Logger
	Debug   bool
	// LogPath is shown next to a failure; empty when logging is off.
	LogPath string
}
